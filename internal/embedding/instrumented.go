package embedding

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
)

// Instrumented records metrics and debug logs for every call of the wrapped embedder.
type Instrumented struct {
	next     matching.Embedder
	provider string
	model    string
	metrics  *Metrics
	logger   *zap.Logger
}

func NewInstrumented(next matching.Embedder, provider, model string, metrics *Metrics, log *zap.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		provider: provider,
		model:    model,
		metrics:  metrics,
		logger:   logger.WithCommonFields(log, provider, model),
	}
}

func (i *Instrumented) Embed(ctx context.Context, text string) (matching.Vector, error) {
	start := time.Now()
	vec, err := i.next.Embed(ctx, text)
	elapsed := time.Since(start)

	i.metrics.Record(ctx, i.provider, i.model, elapsed, err)

	if err != nil {
		i.logger.Debug("embedding failed",
			zap.Int("text_length", utf8.RuneCountInString(text)),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	i.logger.Debug("embedding computed",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.Int("dimension", len(vec)),
		zap.Duration("duration", elapsed),
	)
	return vec, nil
}
