//go:build cgo

package embedding

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	fastembed "github.com/anush008/fastembed-go"

	"github.com/spigell/talent-matcher/internal/matching"
)

// FastEmbedConfig configures the local ONNX embedder.
type FastEmbedConfig struct {
	// Model is a friendly model name such as BAAI/bge-small-en-v1.5 (default).
	Model string `mapstructure:"model"`
	// CacheDir is where model files are downloaded. Defaults to ./local_cache.
	CacheDir string `mapstructure:"cache-dir"`
	// MaxLength is the maximum input sequence length. Defaults to 512.
	MaxLength int `mapstructure:"max-length"`
}

var fastEmbedModels = map[string]fastembed.EmbeddingModel{
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-small-en":                      fastembed.BGESmallEN,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
	"BAAI/bge-base-en":                       fastembed.BGEBaseEN,
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
}

// FastEmbed embeds text with a local model through fastembed-go.
type FastEmbed struct {
	mu        sync.Mutex
	model     *fastembed.FlagEmbedding
	modelName string
	dimension int
}

// NewFastEmbed loads the configured model, downloading it on first use.
func NewFastEmbed(cfg FastEmbedConfig) (*FastEmbed, error) {
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = DefaultFastEmbedModel
	}

	model, ok := fastEmbedModels[name]
	if !ok {
		return nil, &matching.ConfigurationError{
			Field:   "embedding.fastembed.model",
			Message: fmt.Sprintf("unsupported model %q", name),
		}
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(".", "local_cache")
	}

	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = 512
	}

	showProgress := false
	flagEmbed, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                model,
		CacheDir:             cacheDir,
		MaxLength:            maxLength,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, &matching.EmbeddingError{Message: "initializing fastembed", Cause: err}
	}

	return &FastEmbed{
		model:     flagEmbed,
		modelName: name,
		dimension: fastEmbedDimensions[name],
	}, nil
}

// Embed embeds text as a passage. Resumes and job descriptions are compared
// symmetrically so both sides use the same prefix. Blank text maps to the zero
// vector.
func (p *FastEmbed) Embed(ctx context.Context, text string) (matching.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return make(matching.Vector, p.dimension), nil
	}

	// FlagEmbedding shares one ONNX session.
	p.mu.Lock()
	defer p.mu.Unlock()

	embeddings, err := p.model.PassageEmbed([]string{text}, 1)
	if err != nil {
		return nil, &matching.EmbeddingError{Message: "fastembed", Cause: err}
	}
	if len(embeddings) == 0 {
		return nil, &matching.EmbeddingError{Message: "fastembed returned no embedding"}
	}

	return matching.Vector(embeddings[0]), nil
}

func (p *FastEmbed) Model() string { return p.modelName }

func (p *FastEmbed) Dimension() int { return p.dimension }

// Close releases the ONNX session.
func (p *FastEmbed) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.model == nil {
		return nil
	}
	err := p.model.Destroy()
	p.model = nil
	return err
}
