// Package vmath holds the scalar and vector helpers shared by the layout,
// tween and projection code.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Lerp performs linear interpolation between a and b
// t=0 returns a, t=1 returns b; t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Mod returns the euclidean remainder of x/y, always in [0, y) for y > 0
func Mod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r < 0 {
		r += y
	}
	return r
}

// LerpVec interpolates each component of a toward b
func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Uniform returns a vector with all components set to s
func Uniform(s float64) r3.Vec {
	return r3.Vec{X: s, Y: s, Z: s}
}

// Finite reports whether every component is a finite number
func Finite(v r3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
