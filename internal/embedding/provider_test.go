package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talent-matcher/internal/matching"
)

func TestNewDefaultsToHashing(t *testing.T) {
	t.Parallel()

	p, err := New(Config{Dimension: 32}, Deps{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, ProviderHashing, p.Name)
	assert.Equal(t, "xxhash-32", p.Model)

	vec, err := p.Embed(context.Background(), "go kubernetes")
	require.NoError(t, err)
	assert.Len(t, vec, 32)
}

func TestNewWithCache(t *testing.T) {
	t.Parallel()

	p, err := New(Config{Provider: " Hashing ", Cache: true}, Deps{})
	require.NoError(t, err)

	_, isCached := p.Embedder.(*Cached)
	assert.True(t, isCached)
}

func TestNewRejectsMisconfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unknown provider", cfg: Config{Provider: "word2vec"}},
		{name: "gemini without client", cfg: Config{Provider: ProviderGemini}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.cfg, Deps{})
			var cfgErr *matching.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}

func TestFastEmbedDimension(t *testing.T) {
	t.Parallel()

	dim, ok := FastEmbedDimension("")
	assert.True(t, ok)
	assert.Equal(t, 384, dim)

	dim, ok = FastEmbedDimension("BAAI/bge-base-en-v1.5")
	assert.True(t, ok)
	assert.Equal(t, 768, dim)

	_, ok = FastEmbedDimension("unknown")
	assert.False(t, ok)
}

func TestProviderCloseOnNil(t *testing.T) {
	t.Parallel()

	var p *Provider
	assert.NoError(t, p.Close())
}
