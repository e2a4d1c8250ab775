package common

import "math"

// Epsilon is the tolerance used by Approximately.
const Epsilon = 1e-6

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns 1 for v >= 0 and -1 otherwise. Zero counts as positive.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func Approximately(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
