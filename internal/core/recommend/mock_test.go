package recommend

import (
	"context"
	"strings"

	"github.com/smartserve/backend/internal/core/model"
)

// mockEmbedder produces deterministic three-dimensional vectors from
// keyword presence, so cosine ranking is predictable in tests.
type mockEmbedder struct {
	embedErr      error
	embedBatchErr error
	embedCalls    int
}

func (m *mockEmbedder) vector(text string) []float32 {
	text = strings.ToLower(text)
	v := []float32{0.1, 0.1, 0.1}
	if strings.Contains(text, "burger") {
		v[0] = 1
	}
	if strings.Contains(text, "drink") || strings.Contains(text, "cola") {
		v[1] = 1
	}
	if strings.Contains(text, "veg") || strings.Contains(text, "salad") {
		v[2] = 1
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedBatchErr != nil {
		return nil, m.embedBatchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func testMenu() []model.MenuItem {
	return []model.MenuItem{
		{ID: "classic_burger", Name: "Classic Burger", Tags: []string{"burger", "beef"}},
		{ID: "cola_small", Name: "Cola (Small)", Tags: []string{"drink"}},
		{ID: "greek_salad", Name: "Greek Salad", Tags: []string{"veg", "healthy"}},
		{ID: "fries_small", Name: "Small Fries", Tags: []string{"side"}},
	}
}
