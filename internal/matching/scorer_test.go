package matching

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unitAt returns a 2-d unit vector whose cosine with {1, 0} equals c.
func unitAt(c float64) Vector {
	return Vector{float32(c), float32(math.Sqrt(1 - c*c))}
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{name: "defaults", weights: DefaultWeights()},
		{name: "single factor", weights: Weights{Experience: 1}},
		{name: "within tolerance", weights: Weights{TextSimilarity: 0.3, SkillsMatch: 0.5, Experience: 0.2000000001}},
		{name: "sum too low", weights: Weights{TextSimilarity: 0.3, SkillsMatch: 0.3, Experience: 0.2}, wantErr: true},
		{name: "sum too high", weights: Weights{TextSimilarity: 0.5, SkillsMatch: 0.5, Experience: 0.2}, wantErr: true},
		{name: "negative", weights: Weights{TextSimilarity: -0.2, SkillsMatch: 1, Experience: 0.2}, wantErr: true},
		{name: "nan", weights: Weights{TextSimilarity: math.NaN(), SkillsMatch: 0.5, Experience: 0.5}, wantErr: true},
		{name: "zero", weights: Weights{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.weights.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected *ConfigurationError, got %v", err)
		})
	}
}

func TestScoreEndToEnd(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors["ml python"] = Vector{1, 0}

	job := NewJobProfile(Vector{1, 0}, []string{"python", "ml"})
	candidate, err := NewCandidateProfile(unitAt(0.9), unitAt(0.85), 0.6)
	require.NoError(t, err)

	scorer := NewScorer(embedder, zap.NewNop())
	result, err := scorer.Score(context.Background(), job, candidate, DefaultWeights())
	require.NoError(t, err)

	assert.InDelta(t, 0.9, result.Breakdown.TextSimilarity, 1e-6)
	assert.InDelta(t, 0.85, result.Breakdown.SkillsMatch, 1e-6)
	assert.InDelta(t, 0.6, result.Breakdown.ExperienceScore, 1e-12)
	assert.InDelta(t, 0.815, result.OverallScore, 1e-6)
	assert.Equal(t, 1, embedder.callCount("ml python"))
}

func TestScoreEmptyRequirementsUsesDefaultSkillsMatch(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	scorer := NewScorer(embedder, nil)
	job := NewJobProfile(Vector{1, 0}, nil)

	for _, skills := range []Vector{{1, 0}, {0, 1}, {0, 0}, {-1, 0}} {
		candidate, err := NewCandidateProfile(Vector{1, 0}, skills, 0.5)
		require.NoError(t, err)

		result, err := scorer.Score(context.Background(), job, candidate, DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, DefaultSkillsMatch, result.Breakdown.SkillsMatch)
	}

	assert.Empty(t, embedder.calls, "no requirements means nothing to embed")
}

func TestScoreRejectsInvalidWeightsBeforeEmbedding(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(Vector{1, 0})
	scorer := NewScorer(embedder, nil)
	job := NewJobProfile(Vector{1, 0}, []string{"go"})
	candidate, err := NewCandidateProfile(Vector{1, 0}, Vector{1, 0}, 0.5)
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), job, candidate, Weights{TextSimilarity: 0.5, SkillsMatch: 0.5, Experience: 0.5})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Empty(t, embedder.calls)
}

func TestScoreClampsNegativeSimilarity(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors["go"] = Vector{1, 0}
	scorer := NewScorer(embedder, nil)

	job := NewJobProfile(Vector{1, 0}, []string{"go"})
	candidate, err := NewCandidateProfile(Vector{-1, 0}, Vector{-1, 0}, 0)
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), job, candidate, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Breakdown.TextSimilarity)
	assert.Equal(t, 0.0, result.Breakdown.SkillsMatch)
	assert.Equal(t, 0.0, result.OverallScore)
}

func TestScoreOverallWithinUnitInterval(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors["go"] = Vector{1, 0}
	scorer := NewScorer(embedder, nil)
	job := NewJobProfile(Vector{1, 0}, []string{"go"})
	prepared, err := scorer.Prepare(context.Background(), job)
	require.NoError(t, err)

	weightSets := []Weights{
		DefaultWeights(),
		{TextSimilarity: 1},
		{SkillsMatch: 1},
		{Experience: 1},
		{TextSimilarity: 1.0 / 3, SkillsMatch: 1.0 / 3, Experience: 1.0 / 3},
	}
	cosines := []float64{-1, -0.5, 0, 0.25, 0.99, 1}
	experience := []float64{0, 0.3, 1}

	for _, w := range weightSets {
		for _, c := range cosines {
			for _, e := range experience {
				candidate, err := NewCandidateProfile(unitAt(c), unitAt(c), e)
				require.NoError(t, err)

				result, err := scorer.ScorePrepared(context.Background(), prepared, candidate, w)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, result.OverallScore, 0.0)
				assert.LessOrEqual(t, result.OverallScore, 1.0)

				want := result.Breakdown.TextSimilarity*w.TextSimilarity +
					result.Breakdown.SkillsMatch*w.SkillsMatch +
					result.Breakdown.ExperienceScore*w.Experience
				assert.InDelta(t, want, result.OverallScore, 1e-9)
			}
		}
	}
}

func TestScorePreparedRequiresRequirementsEmbedding(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(newStubEmbedder(nil), nil)
	job := NewJobProfile(Vector{1, 0}, []string{"go"})
	candidate, err := NewCandidateProfile(Vector{1, 0}, Vector{1, 0}, 0.5)
	require.NoError(t, err)

	_, err = scorer.ScorePrepared(context.Background(), PreparedJob{Job: job}, candidate, DefaultWeights())
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestScoreDimensionMismatch(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(newStubEmbedder(nil), nil)
	job := NewJobProfile(Vector{1, 0, 0}, nil)
	candidate, err := NewCandidateProfile(Vector{1, 0}, Vector{1, 0}, 0.5)
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), job, candidate, DefaultWeights())
	var dimErr *DimensionMismatchError
	assert.True(t, errors.As(err, &dimErr))
}

func TestBreakdownMap(t *testing.T) {
	t.Parallel()

	b := Breakdown{TextSimilarity: 0.9, SkillsMatch: 0.85, ExperienceScore: 0.6}
	assert.Equal(t, map[string]float64{
		"text_similarity":  0.9,
		"skills_match":     0.85,
		"experience_score": 0.6,
	}, b.Map())
}
