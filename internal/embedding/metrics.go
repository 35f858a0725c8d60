package embedding

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
)

const instrumentationName = "github.com/spigell/talent-matcher/internal/embedding"

// Metrics holds the embedding instruments.
type Metrics struct {
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

// NewMetrics creates instruments on the given meter provider, or on the global
// one when mp is nil. Instrument creation failures are logged and leave the
// instrument unset.
func NewMetrics(mp metric.MeterProvider, log *zap.Logger) *Metrics {
	log = logger.OrNop(log)
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	m := &Metrics{}
	var err error

	m.duration, err = meter.Float64Histogram(
		"talent_matcher.embedding.duration_seconds",
		metric.WithDescription("Duration of a single embedding call, labeled by provider and model."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		log.Warn("failed to create duration histogram", zap.Error(err))
	}

	m.errors, err = meter.Int64Counter(
		"talent_matcher.embedding.errors_total",
		metric.WithDescription("Total failed embedding calls by provider and model."),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		log.Warn("failed to create errors counter", zap.Error(err))
	}

	return m
}

// Record records one embedding call.
func (m *Metrics) Record(ctx context.Context, provider, model string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("model", model),
	)

	if m.duration != nil {
		m.duration.Record(ctx, duration.Seconds(), attrs)
	}
	if err != nil && m.errors != nil {
		m.errors.Add(ctx, 1, attrs)
	}
}
