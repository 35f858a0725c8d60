package gemini

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/talent-matcher/internal/utils"
)

const (
	defaultGenerationModel = "gemini-2.5-flash"
	defaultMaxLogLength    = 200
)

// Generator sends prompts to a Gemini model and returns its textual response.
type Generator struct {
	client    *Client
	model     string
	maxLogLen int
}

// NewGenerator creates a generator for the given model. An empty model selects
// the default generation model.
func NewGenerator(client *Client, model string, maxLogLength int) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGenerationModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Generator{client: client, model: model, maxLogLen: maxLogLength}
}

// GenerateContent sends the prompt to Gemini and returns the concatenated text parts.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.client.logger.Debug("gemini generate content request",
		zap.String("model", g.model),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	var resp *genai.GenerateContentResponse
	err := g.client.do(ctx, "generate content", func() error {
		var callErr error
		resp, callErr = g.client.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		return callErr
	})
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	g.client.logger.Debug("gemini generate content response",
		zap.String("model", g.model),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
