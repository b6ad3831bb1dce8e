package camera

import "gonum.org/v1/gonum/spatial/r3"

// Controls is the orbit controls state: the point the user orbits around
// and whether user input currently moves the camera
type Controls struct {
	Target  r3.Vec
	Enabled bool
}

// NewControls creates enabled controls orbiting target
func NewControls(target r3.Vec) *Controls {
	return &Controls{Target: target, Enabled: true}
}

// Orbit rotates the camera around the controls target by the given angles in
// radians (yaw around the camera up vector, pitch around its right vector),
// keeping the distance to the target. No-op while disabled.
func (ct *Controls) Orbit(c *Camera, yaw, pitch float64) {
	if !ct.Enabled {
		return
	}
	offset := r3.Sub(c.Position, ct.Target)
	if r3.Norm(offset) == 0 {
		return
	}
	right, up, _ := c.Basis()

	if yaw != 0 {
		offset = r3.NewRotation(yaw, up).Rotate(offset)
	}
	if pitch != 0 {
		offset = r3.NewRotation(pitch, right).Rotate(offset)
	}
	c.Position = r3.Add(ct.Target, offset)
	c.Pose.LookAt = ct.Target
}

// Zoom scales the camera distance to the target by factor. No-op while disabled.
func (ct *Controls) Zoom(c *Camera, factor float64) {
	if !ct.Enabled || factor <= 0 {
		return
	}
	offset := r3.Sub(c.Position, ct.Target)
	c.Position = r3.Add(ct.Target, r3.Scale(factor, offset))
	c.Pose.LookAt = ct.Target
}
