package matching

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultSkillsMatch is used when a job lists no explicit requirements.
	DefaultSkillsMatch = 0.8
	// WeightTolerance is the allowed deviation of the weight sum from 1.
	WeightTolerance = 1e-6
)

// Weights controls how the factors are blended into the overall score.
type Weights struct {
	TextSimilarity float64 `json:"text_similarity" mapstructure:"text-similarity"`
	SkillsMatch    float64 `json:"skills_match" mapstructure:"skills-match"`
	Experience     float64 `json:"experience" mapstructure:"experience"`
}

// DefaultWeights returns 0.3 text similarity, 0.5 skills match, 0.2 experience.
func DefaultWeights() Weights {
	return Weights{TextSimilarity: 0.3, SkillsMatch: 0.5, Experience: 0.2}
}

// Validate checks that every weight is non-negative and that they sum to one.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{FactorTextSimilarity, w.TextSimilarity},
		{FactorSkillsMatch, w.SkillsMatch},
		{"experience", w.Experience},
	}

	for _, n := range named {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &ConfigurationError{Field: "weights." + n.name, Message: "must be a finite number"}
		}
		if n.value < 0 {
			return &ConfigurationError{Field: "weights." + n.name, Message: fmt.Sprintf("must not be negative, got %v", n.value)}
		}
	}

	sum := w.TextSimilarity + w.SkillsMatch + w.Experience
	if math.Abs(sum-1) > WeightTolerance {
		return &ConfigurationError{Field: "weights", Message: fmt.Sprintf("must sum to 1, got %v", sum)}
	}

	return nil
}

// PreparedJob is a job profile with its requirement embedding precomputed.
// RequirementsEmbedding is nil when the job has no requirements.
type PreparedJob struct {
	Job                   JobProfile
	RequirementsEmbedding Vector
}

// Scorer combines text similarity, skills similarity and experience into a
// weighted overall score.
type Scorer struct {
	embedder Embedder
	logger   *zap.Logger
}

// NewScorer creates a scorer. The embedder is used only to embed job
// requirements and must be the one used to build the profiles.
func NewScorer(embedder Embedder, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, logger: logger}
}

// Prepare embeds the job's requirement tokens joined with single spaces.
// Callers scoring many candidates against one job should prepare it once and
// use ScorePrepared.
func (s *Scorer) Prepare(ctx context.Context, job JobProfile) (PreparedJob, error) {
	prepared := PreparedJob{Job: job}
	if len(job.requirements) == 0 {
		return prepared, nil
	}
	if s.embedder == nil {
		return PreparedJob{}, &ConfigurationError{Field: "embedder", Message: "embedder is not configured"}
	}

	vec, err := embed(ctx, s.embedder, strings.Join(job.requirements, " "), "requirements")
	if err != nil {
		return PreparedJob{}, err
	}

	prepared.RequirementsEmbedding = vec
	return prepared, nil
}

// Score prepares the job and scores the candidate against it. The requirement
// embedding is recomputed on every call.
func (s *Scorer) Score(ctx context.Context, job JobProfile, candidate CandidateProfile, weights Weights) (MatchResult, error) {
	if err := weights.Validate(); err != nil {
		return MatchResult{}, err
	}

	prepared, err := s.Prepare(ctx, job)
	if err != nil {
		return MatchResult{}, err
	}

	return s.ScorePrepared(ctx, prepared, candidate, weights)
}

// ScorePrepared scores the candidate without calling the embedder.
//
// Cosine similarities are clamped to [0,1] before blending and the breakdown
// reports the clamped values, so the overall score is exactly the weighted sum
// of the breakdown and always lies in [0,1].
func (s *Scorer) ScorePrepared(ctx context.Context, prepared PreparedJob, candidate CandidateProfile, weights Weights) (MatchResult, error) {
	if err := weights.Validate(); err != nil {
		return MatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return MatchResult{}, err
	}

	textSim, err := CosineSimilarity(prepared.Job.embedding, candidate.textEmbedding)
	if err != nil {
		return MatchResult{}, fmt.Errorf("text similarity: %w", err)
	}

	skillsMatch := DefaultSkillsMatch
	if len(prepared.Job.requirements) > 0 {
		if len(prepared.RequirementsEmbedding) == 0 {
			return MatchResult{}, &InputError{Field: "requirements_embedding", Message: "job has requirements but was not prepared"}
		}
		sim, err := CosineSimilarity(prepared.RequirementsEmbedding, candidate.skillsEmbedding)
		if err != nil {
			return MatchResult{}, fmt.Errorf("skills match: %w", err)
		}
		skillsMatch = sim
	}

	breakdown := Breakdown{
		TextSimilarity:  ClampUnit(textSim),
		SkillsMatch:     ClampUnit(skillsMatch),
		ExperienceScore: ClampUnit(candidate.experienceScore),
	}

	overall := breakdown.TextSimilarity*weights.TextSimilarity +
		breakdown.SkillsMatch*weights.SkillsMatch +
		breakdown.ExperienceScore*weights.Experience

	result := MatchResult{
		OverallScore: ClampUnit(overall),
		Breakdown:    breakdown,
	}

	s.logger.Debug("candidate scored",
		zap.Float64("overall_score", result.OverallScore),
		zap.Float64(FactorTextSimilarity, breakdown.TextSimilarity),
		zap.Float64(FactorSkillsMatch, breakdown.SkillsMatch),
		zap.Float64(FactorExperienceScore, breakdown.ExperienceScore),
	)

	return result, nil
}
