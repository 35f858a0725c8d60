package embedding

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/ai/gemini"
	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
)

const (
	ProviderHashing   = "hashing"
	ProviderFastEmbed = "fastembed"
	ProviderGemini    = "gemini"
)

// Config selects and configures the embedding provider.
type Config struct {
	Provider  string          `mapstructure:"provider"`
	Dimension int             `mapstructure:"dimension"`
	Cache     bool            `mapstructure:"cache"`
	FastEmbed FastEmbedConfig `mapstructure:"fastembed"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
}

// GeminiConfig configures the Gemini embedder. The API key itself is resolved
// by the caller when building the gemini.Client.
type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	Dimension  int    `mapstructure:"dimension"`
	MaxRetries int    `mapstructure:"max-retries"`
}

// Deps holds collaborators needed by some providers.
type Deps struct {
	Gemini *gemini.Client
	Meter  metric.MeterProvider
	Logger *zap.Logger
}

// Provider is a ready to use embedder together with a description of what backs it.
type Provider struct {
	matching.Embedder

	Name  string
	Model string

	close func() error
}

// Close releases resources held by the underlying model.
func (p *Provider) Close() error {
	if p == nil || p.close == nil {
		return nil
	}
	return p.close()
}

// New builds the configured embedder wrapped with metrics and, optionally, a cache.
func New(cfg Config, deps Deps) (*Provider, error) {
	log := logger.OrNop(deps.Logger)

	p := &Provider{Name: strings.ToLower(strings.TrimSpace(cfg.Provider))}
	if p.Name == "" {
		p.Name = ProviderHashing
	}

	var base matching.Embedder
	switch p.Name {
	case ProviderHashing:
		h := NewHashing(cfg.Dimension)
		p.Model = fmt.Sprintf("xxhash-%d", h.Dimension())
		base = h
	case ProviderFastEmbed:
		fe, err := NewFastEmbed(cfg.FastEmbed)
		if err != nil {
			return nil, err
		}
		p.Model = fe.Model()
		p.close = fe.Close
		base = fe
	case ProviderGemini:
		if deps.Gemini == nil {
			return nil, &matching.ConfigurationError{
				Field:   "embedding.gemini",
				Message: "gemini client is required for the gemini embedding provider",
			}
		}
		ge := gemini.NewEmbedder(deps.Gemini, cfg.Gemini.Model, cfg.Gemini.Dimension)
		p.Model = ge.Model()
		base = ge
	default:
		return nil, &matching.ConfigurationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unknown provider %q (supported: %s, %s, %s)", cfg.Provider, ProviderHashing, ProviderFastEmbed, ProviderGemini),
		}
	}

	embedder := matching.Embedder(NewInstrumented(base, p.Name, p.Model, NewMetrics(deps.Meter, log), log))
	if cfg.Cache {
		embedder = NewCached(embedder)
	}
	p.Embedder = embedder

	log.Debug("embedding provider ready",
		zap.String(logger.FieldProvider, p.Name),
		zap.String(logger.FieldModel, p.Model),
		zap.Bool("cache", cfg.Cache),
	)

	return p, nil
}
