// Package camera holds the viewing pose and the orbit controls state that the
// focus transition animates.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the default up direction (positive Y)
var Up = r3.Vec{Y: 1}

// Pose is a camera position and the point it looks at
type Pose struct {
	Position r3.Vec `toml:"position"`
	LookAt   r3.Vec `toml:"look_at"`
}

// Camera is a perspective camera
// Written by the transition controller; read by the presentation surface each frame
type Camera struct {
	Pose
	UpDir  r3.Vec
	FOV    float64 // vertical field of view in degrees
	Aspect float64 // width / height
	Near   float64
}

// New creates a camera at pose looking at pose.LookAt with the Y axis up
func New(pose Pose, fov, near float64) *Camera {
	return &Camera{
		Pose:   pose,
		UpDir:  Up,
		FOV:    fov,
		Aspect: 1,
		Near:   near,
	}
}

// SetPosition moves the camera without changing the look-at point
func (c *Camera) SetPosition(p r3.Vec) {
	c.Position = p
}

// Aim points the camera at target
func (c *Camera) Aim(target r3.Vec) {
	c.Pose.LookAt = target
}

// SetPose replaces position and look-at in one step
func (c *Camera) SetPose(p Pose) {
	c.Pose = p
}

// ViewVector is the vector from the look-at point to the camera
func (c *Camera) ViewVector() r3.Vec {
	return r3.Sub(c.Position, c.Pose.LookAt)
}

// Basis returns the camera right, up and forward unit vectors
// Forward points from the camera toward the look-at point
func (c *Camera) Basis() (right, up, forward r3.Vec) {
	forward = r3.Sub(c.Pose.LookAt, c.Position)
	if r3.Norm(forward) == 0 {
		forward = r3.Vec{Z: -1}
	}
	forward = r3.Unit(forward)

	upDir := c.UpDir
	if r3.Norm(upDir) == 0 {
		upDir = Up
	}
	right = r3.Cross(forward, upDir)
	if r3.Norm(right) < 1e-9 {
		// Looking straight along the up axis: pick any perpendicular
		right = r3.Cross(forward, r3.Vec{Z: 1})
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return right, up, forward
}

// Project maps a world point to normalized device coordinates in [-1, 1]
// Returns false when the point is behind the near plane
// depth is the distance along the forward axis
func (c *Camera) Project(p r3.Vec) (x, y, depth float64, ok bool) {
	right, up, forward := c.Basis()
	rel := r3.Sub(p, c.Position)

	depth = r3.Dot(rel, forward)
	if depth <= c.Near {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FOV*math.Pi/360)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	x = r3.Dot(rel, right) * f / (depth * aspect)
	y = r3.Dot(rel, up) * f / depth
	return x, y, depth, true
}

// DirectionFrom returns the unit vector from target toward the camera
// Falls back to +Z when the camera sits on the target
func (c *Camera) DirectionFrom(target r3.Vec) r3.Vec {
	d := r3.Sub(c.Position, target)
	if r3.Norm(d) == 0 {
		return r3.Vec{Z: 1}
	}
	return r3.Unit(d)
}
