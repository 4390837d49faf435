package embed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartserve/backend/internal/config"
)

// NewEmbedder constructs the configured embedding backend. "none" (or
// empty) returns nil with no error: the recommendation pipeline then
// probes straight down to its lexical tier.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	provider := strings.ToLower(cfg.Provider)

	var (
		inner Embedder
		err   error
	)
	switch provider {
	case "", "none":
		return nil, nil

	case "openai":
		inner = NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "ollama":
		// Ollama exposes an OpenAI-compatible embeddings endpoint.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // dummy key, ignored by Ollama
		}
		inner = NewOpenAIEmbedder(apiKey, cfg.Model, baseURL)

	case "gemini":
		inner, err = NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model)

	case "local":
		inner, err = NewLocalEmbedder(cfg.ModelPath, cfg.TokenizerPath, cfg.OrtLibrary)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	return NewCachedEmbedder(inner, 5*time.Minute), nil
}
