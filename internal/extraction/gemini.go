package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
	"github.com/spigell/talent-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Gemini asks a generative model to list the requirements of a job description.
type Gemini struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewGemini(generator contentGenerator, log *zap.Logger, maxLogLength int) *Gemini {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Gemini{
		generator: generator,
		logger:    logger.OrNop(log),
		maxLogLen: maxLogLength,
	}
}

func (g *Gemini) Extract(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	prompt := buildPrompt(text)
	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &matching.ExtractionError{Message: "generating requirements", Cause: err}
	}

	g.logger.Debug("requirements response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	requirements, err := parseResponse(raw)
	if err != nil {
		return nil, &matching.ExtractionError{Message: "parsing requirements", Cause: err}
	}
	return requirements, nil
}

func buildPrompt(description string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", description)
}

// parseResponse accepts a JSON array of strings, optionally inside a fenced
// code block. Multi-word items are split into tokens.
func parseResponse(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	seen := make(map[string]struct{})
	var result []string
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %T item in requirements list", item)
		}
		for _, token := range utils.Tokenize(s) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			result = append(result, token)
		}
	}
	return result, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
