package extraction

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/ai/gemini"
	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
)

const (
	ProviderKeywords = "keywords"
	ProviderGemini   = "gemini"
)

// Config selects and configures the requirement extractor.
type Config struct {
	Provider string   `mapstructure:"provider"`
	Keywords []string `mapstructure:"keywords"`
	// Model is the Gemini generation model used by the gemini provider.
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// New builds the configured extractor. The generator is only needed by the
// gemini provider.
func New(cfg Config, generator *gemini.Generator, log *zap.Logger) (matching.RequirementExtractor, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", ProviderKeywords:
		return NewKeywords(cfg.Keywords), nil
	case ProviderGemini:
		if generator == nil {
			return nil, &matching.ConfigurationError{
				Field:   "extraction.provider",
				Message: "gemini generator is required for the gemini extraction provider",
			}
		}
		return NewGemini(generator, logger.WithCommonFields(log, gemini.ProviderName, generator.Model()), cfg.MaxLogLength), nil
	default:
		return nil, &matching.ConfigurationError{
			Field:   "extraction.provider",
			Message: fmt.Sprintf("unknown provider %q (supported: %s, %s)", cfg.Provider, ProviderKeywords, ProviderGemini),
		}
	}
}
