package render

import (
	"fmt"
	"io"
	"strings"

	"rectdraw/internal/geom"
)

// Canvas is a positioned grid of single-column characters.
//
// The rendered string is cached until a cell or the position changes, so
// repeated Render calls on an unchanged canvas are free.
type Canvas struct {
	pos   geom.Coord[uint32]
	size  geom.Size[uint32]
	cells []rune

	cached *string
	// number of times the rendering was built; read by tests
	generations int
}

// NewCanvas returns a canvas filled with spaces.
func NewCanvas(pos geom.Coord[uint32], size geom.Size[uint32]) *Canvas {
	cells := make([]rune, geom.Area64(size))
	for i := range cells {
		cells[i] = ' '
	}
	return &Canvas{
		pos:   pos,
		size:  size,
		cells: cells,
	}
}

// Pos returns the 0-based screen position of the top-left cell.
func (c *Canvas) Pos() geom.Coord[uint32] {
	return c.pos
}

// SetPos moves the canvas. The next Render repositions it.
func (c *Canvas) SetPos(pos geom.Coord[uint32]) {
	c.invalidate()
	c.pos = pos
}

// Size returns the canvas extent in cells.
func (c *Canvas) Size() geom.Size[uint32] {
	return c.size
}

// Contains reports whether at addresses a cell of the canvas.
func (c *Canvas) Contains(at geom.Coord[uint32]) bool {
	return at.X < c.size.Width && at.Y < c.size.Height
}

func (c *Canvas) index(at geom.Coord[uint32]) int {
	if !c.Contains(at) {
		panic(fmt.Sprintf("render: canvas index (%d,%d) out of range %dx%d",
			at.X, at.Y, c.size.Width, c.size.Height))
	}
	return geom.Encode(at, int(c.size.Width))
}

// Get returns the character at a cell. It panics if at is outside the canvas.
func (c *Canvas) Get(at geom.Coord[uint32]) rune {
	return c.cells[c.index(at)]
}

// Set replaces the character at a cell. It panics if at is outside the canvas.
func (c *Canvas) Set(at geom.Coord[uint32], ch rune) {
	i := c.index(at)
	c.invalidate()
	c.cells[i] = ch
}

// Fill sets every cell to ch.
func (c *Canvas) Fill(ch rune) {
	c.invalidate()
	for i := range c.cells {
		c.cells[i] = ch
	}
}

// DrawRect stamps a rectangle into the canvas. origin is the top-left
// corner and size the full outer extent including the border. Parts that
// fall outside the canvas are clipped. Sizes under 2x2 draw nothing.
func (c *Canvas) DrawRect(origin geom.Coord[uint32], size geom.Size[uint32], chars RectChars) {
	if size.Width < 2 || size.Height < 2 {
		return
	}
	right := uint64(origin.X) + uint64(size.Width) - 1
	bottom := uint64(origin.Y) + uint64(size.Height) - 1

	c.invalidate()
	if uint64(origin.X) >= uint64(c.size.Width) || uint64(origin.Y) >= uint64(c.size.Height) {
		return
	}
	// visit only cells inside the canvas; parts still come from the full extent
	lastX := min(right, uint64(c.size.Width)-1)
	lastY := min(bottom, uint64(c.size.Height)-1)
	for y := uint64(origin.Y); y <= lastY; y++ {
		for x := uint64(origin.X); x <= lastX; x++ {
			part := rectPartAt(x, y, uint64(origin.X), uint64(origin.Y), right, bottom)
			at := geom.C(uint32(x), uint32(y))
			c.cells[geom.Encode(at, int(c.size.Width))] = chars.CharAt(part)
		}
	}
}

func rectPartAt(x, y, left, top, right, bottom uint64) RectPart {
	switch {
	case y == top && x == left:
		return LeftTop
	case y == top && x == right:
		return RightTop
	case y == bottom && x == left:
		return LeftBottom
	case y == bottom && x == right:
		return RightBottom
	case y == top:
		return Top
	case y == bottom:
		return Bottom
	case x == left:
		return LeftSide
	case x == right:
		return RightSide
	default:
		return Center
	}
}

// Render returns the terminal string for the canvas: a cursor move to the
// canvas position followed by every row, each row ending with a jump back
// to the first column of the next row.
func (c *Canvas) Render() string {
	if c.cached != nil {
		return *c.cached
	}

	w := int(c.size.Width)
	h := int(c.size.Height)
	// a row writes exactly w cells, so shifting back by w returns to the
	// canvas's left edge
	jump := NextLine(w)

	var sb strings.Builder
	sb.Grow(len(c.cells)*2 + h*len(jump) + 16)
	sb.WriteString(MoveTo(int(c.pos.Y)+1, int(c.pos.X)+1))
	for y := 0; y < h; y++ {
		for _, ch := range c.cells[y*w : (y+1)*w] {
			sb.WriteRune(ch)
		}
		sb.WriteString(jump)
	}

	out := sb.String()
	c.cached = &out
	c.generations++
	return out
}

// String implements fmt.Stringer using Render.
func (c *Canvas) String() string {
	return c.Render()
}

// WriteTo writes the rendering to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.Render())
	return int64(n), err
}

// Clone returns an independent copy with no cached rendering.
func (c *Canvas) Clone() *Canvas {
	cells := make([]rune, len(c.cells))
	copy(cells, c.cells)
	return &Canvas{
		pos:   c.pos,
		size:  c.size,
		cells: cells,
	}
}

func (c *Canvas) invalidate() {
	c.cached = nil
}
