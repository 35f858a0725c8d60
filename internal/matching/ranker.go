package matching

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RankOptions configures a ranking run.
type RankOptions struct {
	Weights Weights
	// BestEffort collects per-candidate failures in Ranking.Failures instead of
	// aborting the whole ranking.
	BestEffort bool
	// Workers bounds concurrent scoring. Zero or less means runtime.NumCPU().
	Workers int
}

// Ranker scores a set of candidates against one job and orders them.
type Ranker struct {
	scorer *Scorer
	logger *zap.Logger
}

func NewRanker(scorer *Scorer, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{scorer: scorer, logger: logger}
}

// Rank scores every candidate and sorts the results by overall score,
// descending. The sort is stable: candidates with equal scores keep their
// relative input order.
//
// By default the first failing candidate in input order aborts the ranking
// with a *CandidateError and no partial result. With opts.BestEffort set,
// failures are reported in Ranking.Failures and the rest are ranked.
func (r *Ranker) Rank(ctx context.Context, job JobProfile, candidates []Candidate, opts RankOptions) (*Ranking, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := validateCandidateIDs(candidates); err != nil {
		return nil, err
	}

	prepared, err := r.scorer.Prepare(ctx, job)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]MatchResult, len(candidates))
	errs := make([]error, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, candidate := range candidates {
		g.Go(func() error {
			result, err := r.scorer.ScorePrepared(gCtx, prepared, candidate.Profile, opts.Weights)
			if err != nil {
				errs[i] = err
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranking := &Ranking{Entries: make([]RankedEntry, 0, len(candidates))}
	for i, candidate := range candidates {
		if errs[i] != nil {
			candErr := CandidateError{CandidateID: candidate.ID, Err: errs[i]}
			if !opts.BestEffort {
				return nil, &candErr
			}
			r.logger.Warn("candidate scoring failed",
				zap.String("candidate_id", candidate.ID),
				zap.Error(errs[i]),
			)
			ranking.Failures = append(ranking.Failures, candErr)
			continue
		}

		ranking.Entries = append(ranking.Entries, RankedEntry{
			CandidateID: candidate.ID,
			Result:      results[i],
		})
	}

	sort.SliceStable(ranking.Entries, func(i, j int) bool {
		return ranking.Entries[i].Result.OverallScore > ranking.Entries[j].Result.OverallScore
	})

	r.logger.Info("ranking completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranking.Entries)),
		zap.Int("failed", len(ranking.Failures)),
	)

	return ranking, nil
}

func validateCandidateIDs(candidates []Candidate) error {
	seen := make(map[string]struct{}, len(candidates))
	for i, candidate := range candidates {
		id := strings.TrimSpace(candidate.ID)
		if id == "" {
			return &InputError{Field: "candidates", Message: "candidate id must not be empty", CandidateID: candidateLabel(i)}
		}
		if _, ok := seen[id]; ok {
			return &InputError{Field: "candidates", Message: "duplicate candidate id", CandidateID: candidate.ID}
		}
		seen[id] = struct{}{}
	}
	return nil
}

func candidateLabel(i int) string {
	return "#" + strconv.Itoa(i)
}
