package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/talent-matcher/internal/matching"
)

const (
	defaultEmbeddingModel = "text-embedding-004"
	semanticSimilarity    = "SEMANTIC_SIMILARITY"
)

// modelDimensions lists default output sizes of known embedding models.
var modelDimensions = map[string]int{
	"text-embedding-004":   768,
	"embedding-001":        768,
	"gemini-embedding-001": 3072,
}

// Embedder produces text embeddings with the Gemini EmbedContent API. Resumes,
// job descriptions and skill lists all go through the same model.
type Embedder struct {
	client    *Client
	model     string
	dimension int32
}

// NewEmbedder creates an embedder. A positive dimension requests reduced
// output dimensionality from the model.
func NewEmbedder(client *Client, model string, dimension int) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	return &Embedder{client: client, model: model, dimension: int32(max(dimension, 0))}
}

// Embed returns the embedding of text. The API rejects blank content, so blank
// text maps to the zero vector of the output dimension without a remote call.
func (e *Embedder) Embed(ctx context.Context, text string) (matching.Vector, error) {
	if strings.TrimSpace(text) == "" {
		dim := e.Dimension()
		if dim == 0 {
			return nil, &matching.EmbeddingError{Message: fmt.Sprintf("gemini cannot embed empty text with model %q of unknown dimension", e.model)}
		}
		return make(matching.Vector, dim), nil
	}

	cfg := &genai.EmbedContentConfig{TaskType: semanticSimilarity}
	if e.dimension > 0 {
		dim := e.dimension
		cfg.OutputDimensionality = &dim
	}

	var resp *genai.EmbedContentResponse
	err := e.client.do(ctx, "embed content", func() error {
		var callErr error
		resp, callErr = e.client.models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
		return callErr
	})
	if err != nil {
		return nil, &matching.EmbeddingError{Message: "gemini", Cause: err}
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, &matching.EmbeddingError{Message: "gemini api returned no embedding"}
	}

	if e.dimension > 0 && len(resp.Embeddings[0].Values) != int(e.dimension) {
		return nil, &matching.EmbeddingError{
			Message: fmt.Sprintf("gemini api returned %d values, expected %d", len(resp.Embeddings[0].Values), e.dimension),
		}
	}

	return matching.Vector(resp.Embeddings[0].Values), nil
}

func (e *Embedder) Model() string { return e.model }

// Dimension returns the configured output dimension, or the default one of a
// known model. Zero means unknown.
func (e *Embedder) Dimension() int {
	if e.dimension > 0 {
		return int(e.dimension)
	}
	return modelDimensions[e.model]
}
