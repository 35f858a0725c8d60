package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/utils"
)

const (
	ProviderName = "gemini"

	defaultMaxRetries = 3
	baseRetryDelay    = time.Second
	// maxRetryDelay caps how long a quota error may ask us to wait before we give up.
	maxRetryDelay = 30 * time.Second
)

// sleep is replaced in tests.
var sleep = utils.WaitFor

var retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

// modelsAPI is the subset of genai.Models used by this package.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Client wraps the Google GenAI client with retries on temporary failures.
type Client struct {
	models     modelsAPI
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates a client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string, maxRetries int, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, maxRetries, log), nil
}

func newClient(models modelsAPI, maxRetries int, log *zap.Logger) *Client {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Client{
		models:     models,
		maxRetries: maxRetries,
		logger:     logger.WithFields(log, zap.String(logger.FieldProvider, ProviderName)),
	}
}

// do runs call up to maxRetries times while it fails with a temporary API error.
func (c *Client) do(ctx context.Context, op string, call func() error) error {
	var err error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == c.maxRetries {
			break
		}

		c.logger.Warn("gemini request failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// retryDelay reports whether err is worth retrying and how long to wait first.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return 0, false
		}
		apiErr = *apiErrPtr
	}

	backoff := baseRetryDelay << (attempt - 1)

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if m := retryAfterRe.FindStringSubmatch(apiErr.Message); m != nil {
			seconds, parseErr := strconv.ParseFloat(m[1], 64)
			if parseErr == nil {
				requested := time.Duration(seconds * float64(time.Second))
				if requested > maxRetryDelay {
					return 0, false
				}
				return requested, true
			}
		}
		return backoff, true
	case apiErr.Code >= http.StatusInternalServerError:
		return backoff, true
	default:
		return 0, false
	}
}
