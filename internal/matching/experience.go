package matching

import "math"

// ExperienceSaturationYears is the amount of experience that yields the
// maximum experience score.
const ExperienceSaturationYears = 10.0

// NormalizeExperience maps years of experience onto [0,1] with a linear curve
// that saturates at ExperienceSaturationYears. Negative input is floored at 0;
// rejecting it is the job of the profile builder.
func NormalizeExperience(years float64) float64 {
	if math.IsNaN(years) || years <= 0 {
		return 0
	}
	return math.Min(years/ExperienceSaturationYears, 1.0)
}
