package vmath

import "gonum.org/v1/gonum/spatial/r3"

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Euler is an XYZ-ordered rotation in radians
// Matches the matrix product Rx * Ry * Rz, so Z is applied first
type Euler struct {
	X, Y, Z float64
}

// Rotate applies the Euler rotation to p
func (e Euler) Rotate(p r3.Vec) r3.Vec {
	if e.Z != 0 {
		p = r3.NewRotation(e.Z, axisZ).Rotate(p)
	}
	if e.Y != 0 {
		p = r3.NewRotation(e.Y, axisY).Rotate(p)
	}
	if e.X != 0 {
		p = r3.NewRotation(e.X, axisX).Rotate(p)
	}
	return p
}

// IsZero reports whether the rotation is the identity
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}
