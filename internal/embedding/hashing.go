package embedding

import (
	"context"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/spigell/talent-matcher/internal/matching"
	"github.com/spigell/talent-matcher/internal/utils"
)

// DefaultHashingDimension is used when no dimension is configured.
const DefaultHashingDimension = 256

// Hashing is a deterministic bag-of-words embedder. Each token is hashed into
// one of dimension buckets with a hash-derived sign and the result is
// L2-normalised. It needs no model and no network.
type Hashing struct {
	dimension int
}

func NewHashing(dimension int) *Hashing {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &Hashing{dimension: dimension}
}

func (h *Hashing) Dimension() int { return h.dimension }

// Embed returns the hashed representation of text. Text without tokens maps to
// the zero vector, which has zero similarity with everything.
func (h *Hashing) Embed(ctx context.Context, text string) (matching.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make(matching.Vector, h.dimension)
	for _, token := range utils.Tokenize(text) {
		sum := xxhash.Sum64String(token)
		idx := int(sum % uint64(h.dimension))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}
