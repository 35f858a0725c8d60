package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/utils"
)

const previewLength = 80

// Builder assembles job and candidate profiles using the injected embedding
// and requirement extraction capabilities.
type Builder struct {
	embedder  Embedder
	extractor RequirementExtractor
	logger    *zap.Logger
}

// NewBuilder creates a profile builder. A nil logger is replaced with a no-op logger.
func NewBuilder(embedder Embedder, extractor RequirementExtractor, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		embedder:  embedder,
		extractor: extractor,
		logger:    logger,
	}
}

// BuildJobProfile embeds the description and extracts its requirements.
// Extractor errors are returned unchanged.
func (b *Builder) BuildJobProfile(ctx context.Context, description string) (JobProfile, error) {
	if b.embedder == nil {
		return JobProfile{}, &ConfigurationError{Field: "embedder", Message: "embedder is not configured"}
	}
	if b.extractor == nil {
		return JobProfile{}, &ConfigurationError{Field: "extractor", Message: "requirement extractor is not configured"}
	}

	embedding, err := embed(ctx, b.embedder, description, "job description")
	if err != nil {
		return JobProfile{}, err
	}

	requirements, err := b.extractor.Extract(ctx, description)
	if err != nil {
		return JobProfile{}, err
	}

	profile := NewJobProfile(embedding, requirements)

	b.logger.Debug("job profile built",
		zap.Int("description_length", utf8.RuneCountInString(description)),
		zap.String("description_preview", utils.TruncateForLog(description, previewLength)),
		zap.Int("dimension", len(embedding)),
		zap.Strings("requirements", profile.requirements),
	)

	return profile, nil
}

// BuildCandidateProfile embeds the resume and the space-joined skills list and
// normalizes the years of experience. Negative years are rejected.
func (b *Builder) BuildCandidateProfile(ctx context.Context, resume string, experienceYears float64, skills []string) (CandidateProfile, error) {
	if math.IsNaN(experienceYears) || math.IsInf(experienceYears, 0) {
		return CandidateProfile{}, &InputError{Field: "experience_years", Message: "must be a finite number"}
	}
	if experienceYears < 0 {
		return CandidateProfile{}, &InputError{
			Field:   "experience_years",
			Message: fmt.Sprintf("must not be negative, got %v", experienceYears),
		}
	}
	if b.embedder == nil {
		return CandidateProfile{}, &ConfigurationError{Field: "embedder", Message: "embedder is not configured"}
	}

	text, err := embed(ctx, b.embedder, resume, "resume")
	if err != nil {
		return CandidateProfile{}, err
	}

	skillsText := strings.Join(skills, " ")
	if len(skills) == 0 {
		b.logger.Debug("candidate has no skills; embedding empty skills text")
	}

	skillsVec, err := embed(ctx, b.embedder, skillsText, "skills")
	if err != nil {
		return CandidateProfile{}, err
	}

	if len(text) != len(skillsVec) {
		return CandidateProfile{}, &DimensionMismatchError{Left: len(text), Right: len(skillsVec)}
	}

	experience := NormalizeExperience(experienceYears)

	b.logger.Debug("candidate profile built",
		zap.String("resume_preview", utils.TruncateForLog(resume, previewLength)),
		zap.Int("skills", len(skills)),
		zap.Float64("experience_years", experienceYears),
		zap.Float64("experience_score", experience),
	)

	return CandidateProfile{
		textEmbedding:   text,
		skillsEmbedding: skillsVec,
		experienceScore: experience,
	}, nil
}

// embed calls the embedder and guarantees that failures surface as *EmbeddingError.
func embed(ctx context.Context, embedder Embedder, text, what string) (Vector, error) {
	vec, err := embedder.Embed(ctx, text)
	if err != nil {
		var embErr *EmbeddingError
		if errors.As(err, &embErr) {
			return nil, err
		}
		return nil, &EmbeddingError{Message: fmt.Sprintf("embed %s", what), Cause: err}
	}

	if len(vec) == 0 {
		return nil, &EmbeddingError{Message: fmt.Sprintf("embed %s: provider returned an empty vector", what)}
	}

	return vec, nil
}
