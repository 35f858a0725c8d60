package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vocabulary []string
		text       string
		want       []string
	}{
		{
			name: "default vocabulary",
			text: "Looking for a Python developer with ML experience and AWS. Python is a must.",
			want: []string{"aws", "ml", "python"},
		},
		{
			name: "punctuation does not hide keywords",
			text: "Stack: Docker, Kubernetes; Azure/cloud.",
			want: []string{"azure", "cloud", "docker", "kubernetes"},
		},
		{
			name: "no substring matches",
			text: "JavaScript-heavy role, maintaining aiohttp services",
			want: []string{"javascript"},
		},
		{
			name: "nothing found",
			text: "We value kindness",
			want: []string{},
		},
		{
			name:       "custom vocabulary",
			vocabulary: []string{" Go ", "C++", "node.js"},
			text:       "Go and C++ required, Node.js is a plus. Python welcome.",
			want:       []string{"c++", "go", "node.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewKeywords(tt.vocabulary).Extract(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordsVocabulary(t *testing.T) {
	t.Parallel()

	assert.Len(t, NewKeywords(nil).Vocabulary(), len(DefaultVocabulary))
	assert.Equal(t, []string{"go", "rust"}, NewKeywords([]string{"Rust", "go", " "}).Vocabulary())
}

func TestKeywordsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewKeywords(nil).Extract(ctx, "python")
	assert.ErrorIs(t, err, context.Canceled)
}
