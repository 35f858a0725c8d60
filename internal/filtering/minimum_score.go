package filtering

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
)

type minimumScoreFilter struct {
	disabled  bool
	reason    string
	threshold float64
}

// NewMinimumScore creates a filter that drops entries scoring below the configured threshold.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg == nil {
		return nil
	}
	if math.IsNaN(cfg.MinimumScore) || cfg.MinimumScore < 0 || cfg.MinimumScore > 1 {
		return fmt.Errorf("minimum score must be within [0,1], got %v", cfg.MinimumScore)
	}
	f.threshold = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, entries []matching.RankedEntry) ([]matching.RankedEntry, Step, error) {
	initial := len(entries)
	if f.threshold == 0 {
		return entries, Step{Initial: initial, Left: initial}, nil
	}

	kept := make([]matching.RankedEntry, 0, initial)
	var dropped []string
	for _, e := range entries {
		if e.Result.OverallScore < f.threshold {
			dropped = append(dropped, e.CandidateID)
			continue
		}
		kept = append(kept, e)
	}

	if len(dropped) > 0 {
		logger.OrNop(deps.Logger).Info("excluding candidates below minimum score",
			zap.Float64("minimum_score", f.threshold),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.FormatFloat(f.threshold, 'f', 2, 64)},
	}
}
