package embedding

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes embeddings by input text. Safe because Embed is
// deterministic for a fixed provider configuration; repeated queries
// for the same question skip the network round trip.
type Cached struct {
	backend Provider
	cache   *gocache.Cache
}

func NewCached(backend Provider) *Cached {
	return &Cached{
		backend: backend,
		cache:   gocache.New(1*time.Hour, 10*time.Minute),
	}
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, found := c.cache.Get(text); found {
		return v.([]float32), nil
	}

	vec, err := c.backend.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Set(text, vec, gocache.DefaultExpiration)
	return vec, nil
}
