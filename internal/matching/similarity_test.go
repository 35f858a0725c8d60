package matching

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "identical", a: Vector{1, 2, 3, 4}, b: Vector{1, 2, 3, 4}, want: 1},
		{name: "scaled", a: Vector{1, 2, 3}, b: Vector{2, 4, 6}, want: 1},
		{name: "orthogonal", a: Vector{1, 0, 0}, b: Vector{0, 1, 0}, want: 0},
		{name: "opposite", a: Vector{1, 2, 3}, b: Vector{-1, -2, -3}, want: -1},
		{name: "45 degrees", a: Vector{1, 0}, b: Vector{1, 1}, want: 1 / math.Sqrt2},
		{name: "zero vector", a: Vector{1, 2, 3}, b: Vector{0, 0, 0}, want: 0},
		{name: "both zero", a: Vector{0, 0}, b: Vector{0, 0}, want: 0},
		{name: "empty", a: Vector{}, b: Vector{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	t.Parallel()

	a := Vector{0.3, -1.2, 4.5, 0.01}
	b := Vector{2.2, 0.4, -0.7, 3}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	t.Parallel()

	_, err := CosineSimilarity(Vector{1, 2, 3}, Vector{1, 2})
	require.Error(t, err)

	var dimErr *DimensionMismatchError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Left)
	assert.Equal(t, 2, dimErr.Right)
}

func TestClampUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ClampUnit(-0.4))
	assert.Equal(t, 0.0, ClampUnit(math.NaN()))
	assert.Equal(t, 0.25, ClampUnit(0.25))
	assert.Equal(t, 1.0, ClampUnit(1.0000001))
}

func TestNormalizeExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		years float64
		want  float64
	}{
		{years: 0, want: 0},
		{years: 5, want: 0.5},
		{years: 6, want: 0.6},
		{years: 10, want: 1},
		{years: 20, want: 1},
		{years: -3, want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeExperience(tt.years), 1e-12, "years=%v", tt.years)
	}
}
