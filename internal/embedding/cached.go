package embedding

import (
	"context"
	"crypto/sha256"
	"slices"
	"sync"

	"github.com/spigell/talent-matcher/internal/matching"
)

// Cached memoises vectors of the wrapped embedder by text. It relies on the
// embedder being deterministic. Errors are not cached.
type Cached struct {
	next matching.Embedder

	mu      sync.RWMutex
	entries map[[sha256.Size]byte]matching.Vector
}

func NewCached(next matching.Embedder) *Cached {
	return &Cached{
		next:    next,
		entries: make(map[[sha256.Size]byte]matching.Vector),
	}
}

func (c *Cached) Embed(ctx context.Context, text string) (matching.Vector, error) {
	key := sha256.Sum256([]byte(text))

	c.mu.RLock()
	vec, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return slices.Clone(vec), nil
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = slices.Clone(vec)
	c.mu.Unlock()

	return vec, nil
}

// Len returns the number of memoised texts.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
