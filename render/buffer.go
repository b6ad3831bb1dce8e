package render

import "github.com/gdamore/tcell/v2"

// BlendMode selects how Set combines a color with the cell below
type BlendMode uint8

const (
	BlendReplace BlendMode = iota
	BlendAlpha
	BlendScreen
)

type cell struct {
	r  rune
	fg RGB
	bg RGB
}

// Buffer is a cell compositor flushed to a tcell screen once per frame
type Buffer struct {
	cells  []cell
	bg     RGB
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int, bg RGB) *Buffer {
	b := &Buffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(b.cells) < size {
		b.cells = make([]cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = cell{r: ' ', fg: b.bg, bg: b.bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a glyph whose foreground and background are blended over the cell
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	switch mode {
	case BlendAlpha:
		c.fg = Blend(c.fg, fg, alpha)
		c.bg = Blend(c.bg, bg, alpha)
	case BlendScreen:
		c.fg = Screen(c.fg, fg, alpha)
		c.bg = Screen(c.bg, bg, alpha)
	default:
		c.fg, c.bg = fg, bg
	}
	c.r = r
}

// SetFgOnly writes a glyph keeping the cell background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.r = r
	c.fg = fg
}

// Text writes s starting at x; returns the column after the last rune
func (b *Buffer) Text(x, y int, s string, fg RGB) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg)
		x++
	}
	return x
}

// At returns the glyph and colors of a cell
func (b *Buffer) At(x, y int) (r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return 0, RGB{}, RGB{}
	}
	c := b.cells[y*b.width+x]
	return c.r, c.fg, c.bg
}

// Flush copies the buffer to the screen; the caller calls Show
func (b *Buffer) Flush(s tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Foreground(c.fg.Tcell()).Background(c.bg.Tcell())
			s.SetContent(x, y, c.r, nil, style)
		}
	}
}
