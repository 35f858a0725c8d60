package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildJobProfile(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(Vector{1, 0, 0})
	extractor := &stubExtractor{tokens: []string{"Python", "ml", " python ", ""}}
	builder := NewBuilder(embedder, extractor, zap.NewNop())

	profile, err := builder.BuildJobProfile(context.Background(), "Python developer with ML experience")
	require.NoError(t, err)

	assert.Equal(t, Vector{1, 0, 0}, profile.Embedding())
	assert.Equal(t, []string{"ml", "python"}, profile.Requirements())
	assert.Equal(t, 1, embedder.callCount("Python developer with ML experience"))
}

func TestBuildJobProfileEmbeddingFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("quota exhausted")
	embedder := newStubEmbedder(nil)
	embedder.errs["job"] = cause
	builder := NewBuilder(embedder, &stubExtractor{}, nil)

	_, err := builder.BuildJobProfile(context.Background(), "job")
	require.Error(t, err)

	var embErr *EmbeddingError
	require.True(t, errors.As(err, &embErr))
	assert.ErrorIs(t, err, cause)
}

func TestBuildJobProfileExtractorErrorUnchanged(t *testing.T) {
	t.Parallel()

	extractErr := &ExtractionError{Message: "model unavailable"}
	builder := NewBuilder(newStubEmbedder(Vector{1}), &stubExtractor{err: extractErr}, nil)

	_, err := builder.BuildJobProfile(context.Background(), "job")
	assert.Same(t, extractErr, err)
}

func TestBuildJobProfileEmptyVector(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors[""] = Vector{}
	builder := NewBuilder(embedder, &stubExtractor{}, nil)

	_, err := builder.BuildJobProfile(context.Background(), "")
	var embErr *EmbeddingError
	assert.True(t, errors.As(err, &embErr))
}

func TestBuildCandidateProfile(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors["resume text"] = Vector{1, 0}
	embedder.vectors["Python Machine Learning AWS"] = Vector{0, 1}
	builder := NewBuilder(embedder, &stubExtractor{}, zap.NewNop())

	profile, err := builder.BuildCandidateProfile(context.Background(), "resume text", 6, []string{"Python", "Machine Learning", "AWS"})
	require.NoError(t, err)

	assert.Equal(t, Vector{1, 0}, profile.TextEmbedding())
	assert.Equal(t, Vector{0, 1}, profile.SkillsEmbedding())
	assert.InDelta(t, 0.6, profile.ExperienceScore(), 1e-12)
}

func TestBuildCandidateProfileEmptySkills(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(Vector{0.5, 0.5})
	builder := NewBuilder(embedder, &stubExtractor{}, nil)

	_, err := builder.BuildCandidateProfile(context.Background(), "resume", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.callCount(""))
}

func TestBuildCandidateProfileRejectsNegativeExperience(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(Vector{1})
	builder := NewBuilder(embedder, &stubExtractor{}, nil)

	_, err := builder.BuildCandidateProfile(context.Background(), "resume", -1, []string{"go"})
	require.Error(t, err)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "experience_years", inputErr.Field)
	assert.Empty(t, embedder.calls, "embedder must not be called for invalid input")
}

func TestBuildCandidateProfileDimensionMismatch(t *testing.T) {
	t.Parallel()

	embedder := newStubEmbedder(nil)
	embedder.vectors["resume"] = Vector{1, 0, 0}
	embedder.vectors["go"] = Vector{1, 0}
	builder := NewBuilder(embedder, &stubExtractor{}, nil)

	_, err := builder.BuildCandidateProfile(context.Background(), "resume", 3, []string{"go"})
	var dimErr *DimensionMismatchError
	assert.True(t, errors.As(err, &dimErr))
}

func TestProfilesAreImmutable(t *testing.T) {
	t.Parallel()

	emb := Vector{1, 2}
	reqs := []string{"go"}
	job := NewJobProfile(emb, reqs)
	emb[0] = 42
	reqs[0] = "rust"

	got := job.Embedding()
	got[1] = 42

	assert.Equal(t, Vector{1, 2}, job.Embedding())
	assert.Equal(t, []string{"go"}, job.Requirements())
}

func TestNewCandidateProfileValidatesScore(t *testing.T) {
	t.Parallel()

	_, err := NewCandidateProfile(Vector{1}, Vector{1}, 1.5)
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))

	profile, err := NewCandidateProfile(Vector{1}, Vector{1}, 0.4)
	require.NoError(t, err)
	assert.Equal(t, 0.4, profile.ExperienceScore())
}
