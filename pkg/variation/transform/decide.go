package transform

import "math/rand/v2"

// Func is the common shape of every pass.
type Func func(text string, intensity int, rng *rand.Rand) string

// Decide draws once against an intensity percentage.
// It never succeeds at 0 and always succeeds at 100.
func Decide(intensity int, rng *rand.Rand) bool {
	switch {
	case intensity <= 0:
		return false
	case intensity >= 100:
		return true
	}
	return chance(float64(intensity)/100, rng)
}

// chance reports whether a uniform draw in [0, 1) falls below p.
func chance(p float64, rng *rand.Rand) bool {
	return rng.Float64() < p
}

// clampLevel bounds an intensity to [0, 100].
func clampLevel(intensity int) int {
	return max(0, min(intensity, 100))
}
