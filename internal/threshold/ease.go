package threshold

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
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

// Ease applies the cubic Hermite ease 3t²-2t³ to t clamped to [0, 1].
func Ease(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Smoothstep matches the GLSL builtin: 0 below edge0, 1 above edge1 and a
// Hermite ease in between. edge0 must be less than edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	return Ease((x - edge0) / (edge1 - edge0))
}

// Lerp linearly interpolates between a and b in the GLSL mix form, which
// returns a and b exactly at t=0 and t=1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
