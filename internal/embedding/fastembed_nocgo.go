//go:build !cgo

package embedding

import (
	"context"
	"errors"

	"github.com/spigell/talent-matcher/internal/matching"
)

// ErrFastEmbedNotAvailable is returned when the binary was built without cgo.
var ErrFastEmbedNotAvailable = errors.New("fastembed: not available (binary built without cgo support, use the hashing or gemini provider instead)")

type FastEmbedConfig struct {
	Model     string `mapstructure:"model"`
	CacheDir  string `mapstructure:"cache-dir"`
	MaxLength int    `mapstructure:"max-length"`
}

// FastEmbed is a stub for non-cgo builds.
type FastEmbed struct{}

func NewFastEmbed(FastEmbedConfig) (*FastEmbed, error) {
	return nil, ErrFastEmbedNotAvailable
}

func (p *FastEmbed) Embed(context.Context, string) (matching.Vector, error) {
	return nil, ErrFastEmbedNotAvailable
}

func (p *FastEmbed) Model() string { return "" }

func (p *FastEmbed) Dimension() int { return 0 }

func (p *FastEmbed) Close() error { return nil }
