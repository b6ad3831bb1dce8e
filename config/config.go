// Package config loads the scene configuration from TOML.
//
// Missing keys keep their defaults; unknown keys are rejected. Every
// validation failure wraps layout.ErrInvalidConfiguration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/audio"
	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/event"
	"github.com/lixenwraith/chromasphere/layout"
	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/transition"
	"github.com/lixenwraith/chromasphere/vmath"
)

// Duration is a time.Duration written as a Go duration string ("1s", "750ms")
type Duration time.Duration

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the time.Duration value
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Vec3 is an [x, y, z] array
type Vec3 [3]float64

// R3 converts to a gonum vector
func (v Vec3) R3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// Render configures the terminal surface
type Render struct {
	FPS       int    `toml:"fps"`
	ColorMode string `toml:"color_mode"` // auto | truecolor | 256
}

// Telemetry configures the metrics endpoint
type Telemetry struct {
	Listen string `toml:"listen"` // empty disables /metrics
}

// Config is the complete scene configuration
type Config struct {
	Count          int       `toml:"count"`
	Radius         float64   `toml:"radius"`
	Duration       Duration  `toml:"duration"`
	FocusDelay     *Duration `toml:"focus_delay"` // nil follows duration
	CameraDistance float64   `toml:"camera_distance"`
	CameraHome     Vec3      `toml:"camera_home"`
	CameraLookAt   Vec3      `toml:"camera_look_at"`
	MeshRotation   Vec3      `toml:"mesh_rotation"`
	Ease           string    `toml:"ease"`

	Palette   layout.Palette `toml:"palette"`
	Render    Render         `toml:"render"`
	Audio     audio.Config   `toml:"audio"`
	Telemetry Telemetry      `toml:"telemetry"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Count:          parameter.DefaultInstanceCount,
		Radius:         parameter.DefaultSphereRadius,
		Duration:       Duration(parameter.DefaultTransitionDuration),
		CameraDistance: parameter.DefaultCameraDistance,
		CameraHome:     Vec3{parameter.DefaultCameraHomeX, parameter.DefaultCameraHomeY, parameter.DefaultCameraHomeZ},
		MeshRotation:   Vec3{parameter.DefaultMeshRotationX, parameter.DefaultMeshRotationY, parameter.DefaultMeshRotationZ},
		Ease:           "power2.inOut",
		Palette:        layout.DefaultPalette(),
		Render: Render{
			FPS:       int(time.Second / parameter.FrameUpdateInterval),
			ColorMode: "auto",
		},
		Audio: audio.DefaultConfig(),
	}
}

// Parse decodes data over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: unknown keys\n%s", layout.ErrInvalidConfiguration, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", layout.ErrInvalidConfiguration, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %v", layout.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every field; layout and timing checks reuse their own validators
func (c *Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: count %d must be positive", layout.ErrInvalidConfiguration, c.Count)
	}
	if !vmath.IsFinite(c.Radius) || c.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", layout.ErrInvalidConfiguration, c.Radius)
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	if !vmath.Finite(c.MeshRotation.R3()) {
		return fmt.Errorf("%w: mesh rotation must be finite", layout.ErrInvalidConfiguration)
	}
	switch c.Ease {
	case "", "linear", "power2.inOut", "quad", "power3.inOut", "cubic":
	default:
		return fmt.Errorf("%w: unknown ease %q", layout.ErrInvalidConfiguration, c.Ease)
	}
	if err := c.Timing().Validate(); err != nil {
		return err
	}
	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		return fmt.Errorf("%w: render fps %d outside [1,240]", layout.ErrInvalidConfiguration, c.Render.FPS)
	}
	switch c.Render.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: color mode %q", layout.ErrInvalidConfiguration, c.Render.ColorMode)
	}
	if !vmath.IsFinite(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %v outside [0,1]", layout.ErrInvalidConfiguration, c.Audio.Volume)
	}
	return nil
}

// FocusDelayOrDefault returns focus_delay, or duration when unset
func (c *Config) FocusDelayOrDefault() time.Duration {
	if c.FocusDelay == nil {
		return c.Duration.Std()
	}
	return c.FocusDelay.Std()
}

// Timing converts to controller timing
func (c *Config) Timing() transition.Timing {
	return transition.Timing{
		Duration:       c.Duration.Std(),
		FocusDelay:     c.FocusDelayOrDefault(),
		CameraDistance: c.CameraDistance,
		Ease:           vmath.EaseByName(c.Ease),
		Home: camera.Pose{
			Position: c.CameraHome.R3(),
			LookAt:   c.CameraLookAt.R3(),
		},
	}
}

// Rotation returns the instanced mesh orientation
func (c *Config) Rotation() vmath.Euler {
	return vmath.Euler{X: c.MeshRotation[0], Y: c.MeshRotation[1], Z: c.MeshRotation[2]}
}

// FrameInterval is the tick interval for the configured fps
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}

// ReloadEvent carries the timing fields that may change while running
func (c *Config) ReloadEvent() event.Event {
	return event.Event{
		Type: event.EventTimingReload,
		Payload: &event.TimingPayload{
			Duration:       c.Duration.Std(),
			FocusDelay:     c.FocusDelayOrDefault(),
			CameraDistance: c.CameraDistance,
			Ease:           c.Ease,
		},
	}
}
