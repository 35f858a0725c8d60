package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/matching"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestGeminiExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{name: "plain array", response: `["python", "aws"]`, want: []string{"python", "aws"}},
		{name: "fenced", response: "```json\n[\"Kubernetes\", \"Go\"]\n```", want: []string{"kubernetes", "go"}},
		{name: "multi word items and duplicates", response: `["machine learning", "Python", "python"]`, want: []string{"machine", "learning", "python"}},
		{name: "empty", response: `[]`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &stubGenerator{response: tt.response}
			got, err := NewGemini(gen, zap.NewNop(), 0).Extract(context.Background(), "Senior Python engineer")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, gen.prompts, 1)
			assert.Contains(t, gen.prompts[0], "Senior Python engineer")
			assert.False(t, strings.Contains(gen.prompts[0], "{{JOB_DESCRIPTION}}"))
		})
	}
}

func TestGeminiExtractErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "generator failure", gen: &stubGenerator{err: errors.New("quota exceeded")}},
		{name: "not json", gen: &stubGenerator{response: "python, aws"}},
		{name: "object instead of array", gen: &stubGenerator{response: `{"requirements": ["go"]}`}},
		{name: "non string item", gen: &stubGenerator{response: `["go", 3]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGemini(tt.gen, nil, 0).Extract(context.Background(), "job")
			var extErr *matching.ExtractionError
			assert.True(t, errors.As(err, &extErr), "got %v", err)
		})
	}
}

func TestGeminiExtractBlankDescription(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	got, err := NewGemini(gen, nil, 0).Extract(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gen.prompts)
}

func TestNew(t *testing.T) {
	t.Parallel()

	ext, err := New(Config{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Keywords{}, ext)

	_, err = New(Config{Provider: ProviderGemini}, nil, nil)
	var cfgErr *matching.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = New(Config{Provider: "regex"}, nil, nil)
	assert.True(t, errors.As(err, &cfgErr))
}
