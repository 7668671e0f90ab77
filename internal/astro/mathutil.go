package astro

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// EaseOutCubic remaps linear progress p in [0,1] to 1-(1-p)^3.
// It starts fast and decelerates toward the target.
func EaseOutCubic(p float64) float64 {
	p = Clamp01(p)
	inv := 1 - p
	return 1 - inv*inv*inv
}

// Clamp limits x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// WrapAngle folds an accumulated angle back into (-2π, 2π) without changing
// its sine or cosine. Sign is preserved so retrograde accumulators stay
// negative.
func WrapAngle(a float64) float64 {
	if a >= TwoPi || a <= -TwoPi {
		return math.Mod(a, TwoPi)
	}
	return a
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
