package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/ai/gemini"
	"github.com/spigell/talent-matcher/internal/embedding"
	"github.com/spigell/talent-matcher/internal/extraction"
	"github.com/spigell/talent-matcher/internal/matching"
	"github.com/spigell/talent-matcher/internal/secrets"
)

// engine wires the configured collaborators into the matching core.
type engine struct {
	builder  *matching.Builder
	scorer   *matching.Scorer
	ranker   *matching.Ranker
	provider *embedding.Provider
}

func newEngine(ctx context.Context, cfg *Config, logger *zap.Logger) (*engine, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	var (
		client    *gemini.Client
		generator *gemini.Generator
	)
	if usesGemini(cfg) {
		var err error
		client, err = newGeminiClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		generator = gemini.NewGenerator(client, cfg.Extraction.Model, cfg.Extraction.MaxLogLength)
	}

	provider, err := embedding.New(cfg.Embedding, embedding.Deps{Gemini: client, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("building embedding provider: %w", err)
	}

	extractor, err := extraction.New(cfg.Extraction, generator, logger)
	if err != nil {
		_ = provider.Close()
		return nil, fmt.Errorf("building requirement extractor: %w", err)
	}

	scorer := matching.NewScorer(provider, logger)

	return &engine{
		builder:  matching.NewBuilder(provider, extractor, logger),
		scorer:   scorer,
		ranker:   matching.NewRanker(scorer, logger),
		provider: provider,
	}, nil
}

func (e *engine) Close() error {
	return e.provider.Close()
}

func usesGemini(cfg *Config) bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Embedding.Provider), embedding.ProviderGemini) ||
		strings.EqualFold(strings.TrimSpace(cfg.Extraction.Provider), extraction.ProviderGemini)
}

func newGeminiClient(ctx context.Context, cfg *Config, logger *zap.Logger) (*gemini.Client, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Embedding.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	return gemini.NewClient(ctx, apiKey, cfg.Embedding.Gemini.MaxRetries, logger)
}
