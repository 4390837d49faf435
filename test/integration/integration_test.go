//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartserve/backend/internal/config"
	"github.com/smartserve/backend/internal/core/capability"
	"github.com/smartserve/backend/internal/core/recommend"
	"github.com/smartserve/backend/internal/embed"
	"github.com/smartserve/backend/internal/menu"
	"github.com/smartserve/backend/internal/server"
)

func post(t *testing.T, r *gin.Engine, path string, body any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "POST %s: %s", path, w.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// TestFullFlow walks the whole demo loop against a server built from
// defaults: register, order, recommend against the order context,
// fail verification on a staged sample, pass it on a clean one.
func TestFullFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "smartserve.db")
	r := server.NewServerWithConfig(cfg).SetupRouter()

	// Register and log back in.
	resp := post(t, r, "/auth/register", gin.H{"phone": "555-0199", "name": "Sam"})
	assert.Equal(t, "created", resp["status"])
	resp = post(t, r, "/auth/login", gin.H{"phone": "555-0199"})
	assert.Equal(t, true, resp["exists"])

	// Place an order.
	resp = post(t, r, "/order", gin.H{
		"profile": "returning",
		"items":   []string{"burger", "fries"},
	})
	id := int64(resp["id"].(float64))
	assert.Equal(t, "in_kitchen", resp["status"])

	// Recommendations in the context of the open ticket.
	resp = post(t, r, "/recommend", gin.H{
		"user":     "555-0199",
		"ticketId": id,
		"time":     "2024-06-01T12:30:00Z",
	})
	recs := resp["recommendations"].([]any)
	require.NotEmpty(t, recs)

	// Staged mismatch, then a clean pass.
	resp = post(t, r, fmt.Sprintf("/verify/%d?sample_hint=fries_missing", id), nil)
	assert.Equal(t, "mismatch", resp["status"])
	assert.Equal(t, []any{"fries"}, resp["missing"].([]any))

	resp = post(t, r, fmt.Sprintf("/verify/%d?sample_hint=everything_ok", id), nil)
	assert.Equal(t, "verified", resp["status"])

	// KDS reflects the last verification.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/kds/%d", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var kds map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kds))
	assert.Equal(t, "verified", kds["status"])
}

// TestLiveEmbedding exercises the dense recommendation tiers against a
// real embedding backend. Requires EMBEDDING_PROVIDER (and credentials
// or a reachable base URL) in the environment.
func TestLiveEmbedding(t *testing.T) {
	_ = godotenv.Load("../../.env")

	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		t.Skip("Skipping live embedding test: EMBEDDING_PROVIDER not set")
	}

	embCfg := config.EmbeddingConfig{
		Provider: provider,
		Model:    os.Getenv("EMBEDDING_MODEL"),
		APIKey:   os.Getenv("EMBEDDING_API_KEY"),
		BaseURL:  os.Getenv("EMBEDDING_BASE_URL"),
	}

	ctx := context.Background()
	embedder, err := embed.NewEmbedder(ctx, embCfg)
	require.NoError(t, err)
	require.NotNil(t, embedder)

	vec, err := embedder.Embed(ctx, "grilled chicken salad")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)

	loader, err := menu.NewLoader("")
	require.NoError(t, err)

	cfg := config.Default()
	app := recommend.NewVectorStrategy(loader.Items, embedder, capability.NewRegistry(), cfg.TierTimeout(), cfg.Recommend.TopK)

	recs, err := app.Recommend(ctx, recommend.Request{
		Profile:      "veg",
		ContextItems: []string{"burger"},
		Timestamp:    "2024-06-01T12:30:00Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	assert.Contains(t, app.ServedBy(), "dense")
}
