// Package layout places instances on a Fibonacci sphere and derives their
// colors from the spiral angle.
//
// Generation is a pure function of (index, count, radius, palette): calling
// Generate twice with the same arguments yields identical output.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/vmath"
)

// ErrInvalidConfiguration is returned for non-positive or non-finite layout inputs
var ErrInvalidConfiguration = errors.New("invalid configuration")

const twoPi = 2 * math.Pi

// Instance is one generated point on the sphere
type Instance struct {
	Index    int
	Position r3.Vec
	Color    colorful.Color
}

// Palette controls the color gradient along generation order
type Palette struct {
	LightnessFrom float64 `toml:"lightness_from"`
	LightnessTo   float64 `toml:"lightness_to"`
	Saturation    float64 `toml:"saturation"`
	// Boost multiplies the dominant channel and clamps it to 1; values <= 1 disable it
	Boost float64 `toml:"boost"`
}

// DefaultPalette returns the overview gradient
func DefaultPalette() Palette {
	return Palette{
		LightnessFrom: parameter.DefaultLightnessFrom,
		LightnessTo:   parameter.DefaultLightnessTo,
		Saturation:    parameter.DefaultSaturation,
		Boost:         parameter.DefaultBoost,
	}
}

// Validate checks every palette channel is within [0, 1] and boost is finite
func (p Palette) Validate() error {
	for name, v := range map[string]float64{
		"lightness_from": p.LightnessFrom,
		"lightness_to":   p.LightnessTo,
		"saturation":     p.Saturation,
	} {
		if !vmath.IsFinite(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: palette %s %v outside [0,1]", ErrInvalidConfiguration, name, v)
		}
	}
	if !vmath.IsFinite(p.Boost) || p.Boost < 0 {
		return fmt.Errorf("%w: palette boost %v", ErrInvalidConfiguration, p.Boost)
	}
	return nil
}

// Option configures Generate
type Option func(*options)

type options struct {
	palette Palette
}

// WithPalette overrides the default palette
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// Generate returns count instances on a sphere of the given radius
// count == 0 yields an empty slice; negative count or non-positive radius is rejected
func Generate(count int, radius float64, opts ...Option) ([]Instance, error) {
	o := options{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(count, radius); err != nil {
		return nil, err
	}
	if err := o.palette.Validate(); err != nil {
		return nil, err
	}

	instances := make([]Instance, count)
	for i := range instances {
		instances[i] = at(i, count, radius, o.palette)
	}
	return instances, nil
}

// At computes a single instance without generating the rest of the set
func At(index, count int, radius float64, palette Palette) (Instance, error) {
	if err := validate(count, radius); err != nil {
		return Instance{}, err
	}
	if index < 0 || index >= count {
		return Instance{}, fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidConfiguration, index, count)
	}
	if err := palette.Validate(); err != nil {
		return Instance{}, err
	}
	return at(index, count, radius, palette), nil
}

func validate(count int, radius float64) error {
	if count < 0 {
		return fmt.Errorf("%w: count %d must not be negative", ErrInvalidConfiguration, count)
	}
	if !vmath.IsFinite(radius) || radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidConfiguration, radius)
	}
	return nil
}

// at assumes validated inputs
func at(i, count int, radius float64, p Palette) Instance {
	phi, theta := Angles(i, count)
	sinPhi := math.Sin(phi)

	pos := r3.Vec{
		X: radius * math.Cos(theta) * sinPhi,
		Y: radius * math.Sin(theta) * sinPhi,
		Z: radius * math.Cos(phi),
	}

	return Instance{
		Index:    i,
		Position: pos,
		Color:    colorAt(i, count, theta, p),
	}
}

// Angles returns the polar angle phi and spiral angle theta for index i
// phi uses uniform-area sampling so points are evenly spread in latitude
func Angles(i, count int) (phi, theta float64) {
	phi = math.Acos(1 - 2*(float64(i)+0.5)/float64(count))
	theta = float64(i) * parameter.GoldenAngle
	return phi, theta
}

func colorAt(i, count int, theta float64, p Palette) colorful.Color {
	hue := vmath.Mod(theta, twoPi) / twoPi
	l := vmath.Lerp(p.LightnessFrom, p.LightnessTo, float64(i)/float64(count))

	// go-colorful takes hue in degrees
	c := colorful.Hsl(hue*360, p.Saturation, l).Clamped()
	if p.Boost > 1 {
		c = boost(c, p.Boost)
	}
	return c
}

// boost scales the dominant channel to push saturation, clamped to 1
func boost(c colorful.Color, factor float64) colorful.Color {
	switch {
	case c.R >= c.G && c.R >= c.B:
		c.R = math.Min(1, c.R*factor)
	case c.G >= c.B:
		c.G = math.Min(1, c.G*factor)
	default:
		c.B = math.Min(1, c.B*factor)
	}
	return c
}
