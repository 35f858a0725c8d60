package matching

import "math"

// CosineSimilarity computes dot(a,b) / (|a|*|b|).
//
// The result lies in [-1, 1]. Vectors of unequal length are rejected with a
// *DimensionMismatchError. When either vector has zero magnitude the result is
// 0.0 rather than NaN.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Left: len(a), Right: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim)), nil
}

// ClampUnit maps a score into [0,1]. Negative similarities mean "unrelated"
// for matching purposes and are floored at zero.
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
