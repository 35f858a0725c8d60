package utils

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase word tokens in order of appearance.
// Tech suffixes such as "c++", "c#" and "node.js" survive because + # and . are
// treated as word characters; trailing dots are dropped.
func Tokenize(text string) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
