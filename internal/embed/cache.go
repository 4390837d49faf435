package embed

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedEmbedder memoizes query embeddings with a TTL so repeated
// recommendation requests don't re-encode identical query text.
type CachedEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return v.([]float32), nil
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, vec, gocache.DefaultExpiration)
	return vec, nil
}

// EmbedBatch bypasses the cache: corpus encoding happens once per
// index build and caching it would only hold memory.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}
