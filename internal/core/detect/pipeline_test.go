package detect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartserve/backend/internal/config"
	"github.com/smartserve/backend/internal/core/capability"
)

func newMockOnlyPipeline() *Pipeline {
	// No model paths configured: both learned tiers probe unusable and
	// every request lands on the mock tier.
	return NewPipeline(config.DetectionConfig{Confidence: 0.5}, "", capability.NewRegistry(), time.Second)
}

func TestDetect_MockHintExcludesItem(t *testing.T) {
	p := newMockOnlyPipeline()

	res := p.Detect(context.Background(), "cv/sample.jpg", HintFriesMissing)
	assert.False(t, res.Contains("fries"))
	assert.True(t, res.Contains("burger"))
	assert.Equal(t, TierMock, p.ServedBy())
}

func TestDetect_MockOnlyDrink(t *testing.T) {
	p := newMockOnlyPipeline()

	res := p.Detect(context.Background(), "cv/sample.jpg", HintOnlyDrink)
	assert.Equal(t, []string{"cola"}, res.Labels())
}

func TestDetect_MockDeterministicWithoutHint(t *testing.T) {
	p := newMockOnlyPipeline()

	first := p.Detect(context.Background(), "cv/sample.jpg", "")
	second := p.Detect(context.Background(), "cv/sample.jpg", "")
	assert.Equal(t, first.Labels(), second.Labels())
	assert.Equal(t, []string{"burger", "fries"}, first.Labels())
}

func TestDetect_LabelsLowercaseAndDeduplicated(t *testing.T) {
	registry := capability.NewRegistry()
	tiers := []capability.Tier[Request, []string]{
		{
			Name: "noisy",
			Run: func(ctx context.Context, req Request) ([]string, error) {
				return []string{"Burger", "BURGER", " fries ", "Cola", "cola", ""}, nil
			},
		},
	}
	p := &Pipeline{executor: capability.NewExecutor("detection", registry, time.Second, tiers...)}

	res := p.Detect(context.Background(), "x.jpg", "")
	assert.Equal(t, []string{"burger", "cola", "fries"}, res.Labels())
	assert.Equal(t, 3, res.Len())
}

func TestGenericRemap(t *testing.T) {
	d := &GenericDetector{confidence: 0.5}

	// Rows: [imageID, classID, confidence, x1, y1, x2, y2]
	// class 5 = bottle (kept, -> cola), 15 = person (dropped),
	// 9 = chair (dropped), bottle again but under threshold.
	data := []float32{
		0, 5, 0.9, 0, 0, 1, 1,
		0, 15, 0.9, 0, 0, 1, 1,
		0, 9, 0.8, 0, 0, 1, 1,
		0, 5, 0.3, 0, 0, 1, 1,
	}
	labels, err := d.remap(data)
	assert.NoError(t, err)
	assert.Equal(t, []string{"cola"}, labels)
}

func TestGenericRemap_MalformedOutput(t *testing.T) {
	d := &GenericDetector{confidence: 0.5}
	_, err := d.remap([]float32{0, 5, 0.9})
	assert.Error(t, err)
}

func TestMockDetect_CopiesBaseline(t *testing.T) {
	got := MockDetect("")
	got[0] = "mutated"
	assert.Equal(t, []string{"burger", "fries"}, MockDetect(""))
}
