package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBlendsForegroundOverForeground(t *testing.T) {
	b := NewBuffer(2, 1, RGBBlack)
	b.SetFgOnly(0, 0, 'x', RGB{200, 0, 0})
	b.Set(0, 0, 'o', RGB{0, 200, 0}, RGBBlack, BlendAlpha, 0.5)

	r, fg, bg := b.At(0, 0)
	assert.Equal(t, 'o', r)
	assert.Equal(t, RGB{100, 100, 0}, fg)
	assert.Equal(t, RGBBlack, bg)

	b.SetFgOnly(1, 0, 'x', RGB{200, 0, 0})
	b.Set(1, 0, 'o', RGB{0, 200, 0}, RGBBlack, BlendScreen, 1)
	_, fg, _ = b.At(1, 0)
	assert.Equal(t, Screen(RGB{200, 0, 0}, RGB{0, 200, 0}, 1), fg)
	assert.NotZero(t, fg.R, "screen keeps the existing glyph color")
}

func TestSetReplaceAndBounds(t *testing.T) {
	b := NewBuffer(1, 1, RGBBlack)
	b.Set(0, 0, '#', RGBWhite, RGBDim, BlendReplace, 0)
	b.Set(5, 5, '#', RGBWhite, RGBWhite, BlendReplace, 1)

	r, fg, bg := b.At(0, 0)
	assert.Equal(t, '#', r)
	assert.Equal(t, RGBWhite, fg)
	assert.Equal(t, RGBDim, bg)
}
