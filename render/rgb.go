package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/chromasphere/vmath"
)

// RGB is an 8-bit per channel cell color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBDim   = RGB{100, 100, 110}
)

// FromColor converts a go-colorful color, clamping out-of-gamut channels
func FromColor(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Color returns the go-colorful value of c
func (c RGB) Color() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Tcell returns the truecolor tcell color; tcell downsamples on limited terminals
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func to8(v float64) uint8 {
	return uint8(math.Round(vmath.Clamp(v, 0, 255)))
}

// channels applies fn to each channel pair in 0-255 space
func channels(a, b RGB, fn func(x, y float64) float64) RGB {
	return RGB{
		R: to8(fn(float64(a.R), float64(b.R))),
		G: to8(fn(float64(a.G), float64(b.G))),
		B: to8(fn(float64(a.B), float64(b.B))),
	}
}

// Blend covers dst with src at opacity alpha, the way a material opacity fades an instance
func Blend(dst, src RGB, alpha float64) RGB {
	alpha = vmath.Clamp01(alpha)
	switch alpha {
	case 0:
		return dst
	case 1:
		return src
	}
	return channels(dst, src, func(d, s float64) float64 { return d + (s-d)*alpha })
}

// Screen lightens dst by src (1 - (1-d)(1-s)), then covers at alpha; used for additive glow
func Screen(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	lit := channels(dst, src, func(d, s float64) float64 { return 255 - (255-d)*(255-s)/255 })
	return Blend(dst, lit, alpha)
}

// Scale multiplies every channel by factor, clamped
func Scale(c RGB, factor float64) RGB {
	return channels(c, c, func(v, _ float64) float64 { return v * factor })
}

// Lerp moves a toward b in CIE-L*a*b* so outline highlights keep the hue of the instance
// t outside [0, 1] returns the nearer endpoint
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return FromColor(a.Color().BlendLab(b.Color(), t))
}
