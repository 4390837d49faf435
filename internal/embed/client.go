package embed

import (
	"context"
)

// Embedder encodes text into a fixed-dimension vector space. All
// corpus and query encoding for the recommendation pipeline goes
// through this interface.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
