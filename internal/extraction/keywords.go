// Package extraction turns job descriptions into requirement tokens.
package extraction

import (
	"context"
	"slices"
	"strings"

	"github.com/spigell/talent-matcher/internal/utils"
)

// DefaultVocabulary is the keyword set used when none is configured.
var DefaultVocabulary = []string{
	"python", "java", "javascript", "ml", "ai", "cloud", "aws", "azure", "docker", "kubernetes",
}

// Keywords extracts requirements by matching description tokens against a
// closed vocabulary. Matching is exact per token and case insensitive.
type Keywords struct {
	vocabulary map[string]struct{}
}

// NewKeywords creates an extractor for the given vocabulary, falling back to
// DefaultVocabulary when it is empty.
func NewKeywords(vocabulary []string) *Keywords {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}

	k := &Keywords{vocabulary: make(map[string]struct{}, len(vocabulary))}
	for _, word := range vocabulary {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			k.vocabulary[word] = struct{}{}
		}
	}
	return k
}

// Extract returns the sorted set of vocabulary words found in text.
func (k *Keywords) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := make(map[string]struct{})
	for _, token := range utils.Tokenize(text) {
		if _, ok := k.vocabulary[token]; ok {
			found[token] = struct{}{}
		}
	}

	result := make([]string, 0, len(found))
	for token := range found {
		result = append(result, token)
	}
	slices.Sort(result)
	return result, nil
}

// Vocabulary returns the configured words in sorted order.
func (k *Keywords) Vocabulary() []string {
	words := make([]string, 0, len(k.vocabulary))
	for w := range k.vocabulary {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}
