package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/talent-matcher/internal/matching"
)

type topNFilter struct {
	disabled bool
	reason   string
	limit    int
}

// NewTopN creates a filter that keeps only the first N entries. Zero keeps everything.
func NewTopN() Filter {
	return &topNFilter{}
}

func (f *topNFilter) Name() string { return "top_n" }

func (f *topNFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *topNFilter) IsEnabled() bool { return !f.disabled }

func (f *topNFilter) Validate(cfg *Config) error {
	f.limit = 0
	if cfg == nil {
		return nil
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", cfg.Top)
	}
	f.limit = cfg.Top
	return nil
}

func (f *topNFilter) Apply(_ context.Context, _ Deps, entries []matching.RankedEntry) ([]matching.RankedEntry, Step, error) {
	initial := len(entries)
	if f.limit == 0 || initial <= f.limit {
		return entries, Step{Initial: initial, Left: initial}, nil
	}
	return entries[:f.limit], Step{Initial: initial, Dropped: initial - f.limit, Left: f.limit}, nil
}

func (f *topNFilter) Status() Status {
	details := map[string]string{}
	if f.limit > 0 {
		details["top"] = strconv.Itoa(f.limit)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
