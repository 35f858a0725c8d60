package utils

import "strings"

// TruncateForLog returns a single-line preview of s that holds at most limit
// runes, followed by an ellipsis when something was cut off. Runs of whitespace
// (resume line breaks included) collapse into one space.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	preview := strings.Join(strings.Fields(s), " ")
	runes := []rune(preview)
	if len(runes) <= limit {
		return preview
	}
	return string(runes[:limit]) + "..."
}
