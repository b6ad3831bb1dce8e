package vmath

// EaseFunc maps normalized progress [0, 1] to eased progress [0, 1]
type EaseFunc func(t float64) float64

// Linear applies no easing
func Linear(t float64) float64 {
	return t
}

// EaseInOutQuad is the symmetric quadratic ease (power2.inOut)
// Accelerates over the first half, mirrors the curve over the second
func EaseInOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// EaseInOutCubic is the symmetric cubic ease (power3.inOut)
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseByName resolves a configured easing name, falling back to EaseInOutQuad
func EaseByName(name string) EaseFunc {
	switch name {
	case "linear":
		return Linear
	case "power3.inOut", "cubic":
		return EaseInOutCubic
	case "power2.inOut", "quad":
		return EaseInOutQuad
	default:
		return EaseInOutQuad
	}
}
