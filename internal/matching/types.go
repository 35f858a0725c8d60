// Package matching scores how well candidate profiles fit a job and ranks
// candidates against a single job.
package matching

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Factor names used in a score breakdown.
const (
	FactorTextSimilarity  = "text_similarity"
	FactorSkillsMatch     = "skills_match"
	FactorExperienceScore = "experience_score"
)

// Vector is a fixed-dimension embedding produced by an Embedder.
type Vector []float32

// Embedder maps text to a vector of a fixed dimension. Implementations must be
// deterministic for identical input and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// RequirementExtractor maps a job description to a set of lowercase
// requirement tokens. An empty result is valid.
type RequirementExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// JobProfile is the immutable representation of a job description.
type JobProfile struct {
	embedding    Vector
	requirements []string
}

// NewJobProfile creates a profile from a precomputed embedding and a set of
// requirement tokens. Tokens are lowercased, trimmed, de-duplicated and sorted.
func NewJobProfile(embedding Vector, requirements []string) JobProfile {
	return JobProfile{
		embedding:    slices.Clone(embedding),
		requirements: normalizeRequirements(requirements),
	}
}

func (p JobProfile) Embedding() Vector { return slices.Clone(p.embedding) }

func (p JobProfile) Requirements() []string { return slices.Clone(p.requirements) }

// CandidateProfile is the immutable representation of a candidate.
type CandidateProfile struct {
	textEmbedding   Vector
	skillsEmbedding Vector
	experienceScore float64
}

// NewCandidateProfile creates a profile from precomputed embeddings and an
// already normalized experience score in [0,1].
func NewCandidateProfile(text, skills Vector, experienceScore float64) (CandidateProfile, error) {
	if math.IsNaN(experienceScore) || experienceScore < 0 || experienceScore > 1 {
		return CandidateProfile{}, &InputError{
			Field:   "experience_score",
			Message: fmt.Sprintf("must be within [0,1], got %v", experienceScore),
		}
	}

	return CandidateProfile{
		textEmbedding:   slices.Clone(text),
		skillsEmbedding: slices.Clone(skills),
		experienceScore: experienceScore,
	}, nil
}

func (p CandidateProfile) TextEmbedding() Vector { return slices.Clone(p.textEmbedding) }

func (p CandidateProfile) SkillsEmbedding() Vector { return slices.Clone(p.skillsEmbedding) }

func (p CandidateProfile) ExperienceScore() float64 { return p.experienceScore }

// Breakdown holds the unweighted per-factor scores of a match.
type Breakdown struct {
	TextSimilarity  float64 `json:"text_similarity"`
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceScore float64 `json:"experience_score"`
}

// Map returns the breakdown keyed by factor name.
func (b Breakdown) Map() map[string]float64 {
	return map[string]float64{
		FactorTextSimilarity:  b.TextSimilarity,
		FactorSkillsMatch:     b.SkillsMatch,
		FactorExperienceScore: b.ExperienceScore,
	}
}

// MatchResult is the outcome of scoring one candidate against one job.
type MatchResult struct {
	OverallScore float64   `json:"overall_score"`
	Breakdown    Breakdown `json:"breakdown"`
}

// Candidate pairs a caller-chosen identifier with a profile.
type Candidate struct {
	ID      string
	Profile CandidateProfile
}

// RankedEntry is a single position in a ranking.
type RankedEntry struct {
	CandidateID string      `json:"candidate_id"`
	Result      MatchResult `json:"result"`
}

// Ranking is the ordered output of Ranker.Rank. Failures is only populated in
// best-effort mode and follows input order.
type Ranking struct {
	Entries  []RankedEntry    `json:"entries"`
	Failures []CandidateError `json:"-"`
}

func normalizeRequirements(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	slices.Sort(out)
	return out
}
