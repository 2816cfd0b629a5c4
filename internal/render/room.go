package render

import (
	"bytes"
	"io"

	"rectdraw/internal/geom"
)

// Room is a bordered rectangle drawn at the current cursor position.
//
// Size is the floor size; the border adds one column on each side and one
// row above and below, so a zero size still draws a 2x2 box.
type Room struct {
	Chars       RectChars
	BorderStyle string
	FillStyle   string
	Size        geom.Size[uint16]
}

// Footprint is the extent the room covers on screen.
func (r Room) Footprint() geom.Size[int] {
	return geom.S(int(r.Size.Width)+2, int(r.Size.Height)+2)
}

// lines assembles the top, repeated middle and bottom byte lines.
// middle is nil when the room has no floor rows.
func (r Room) lines() (top, middle, bottom []byte) {
	w := int(r.Size.Width)
	jump := NextLine(w + 2)

	var t, b bytes.Buffer
	t.WriteString(r.BorderStyle)
	t.WriteRune(r.Chars.CharAt(LeftTop))
	writeRun(&t, r.Chars.CharAt(Top), w)
	t.WriteRune(r.Chars.CharAt(RightTop))

	b.WriteString(jump)
	b.WriteRune(r.Chars.CharAt(LeftBottom))
	writeRun(&b, r.Chars.CharAt(Bottom), w)
	b.WriteRune(r.Chars.CharAt(RightBottom))

	if r.Size.Height > 0 {
		var m bytes.Buffer
		m.WriteString(jump)
		m.WriteRune(r.Chars.CharAt(LeftSide))
		m.WriteString(r.FillStyle)
		writeRun(&m, r.Chars.CharAt(Center), w)
		m.WriteString(r.BorderStyle)
		m.WriteRune(r.Chars.CharAt(RightSide))
		middle = m.Bytes()
	}
	return t.Bytes(), middle, b.Bytes()
}

func writeRun(buf *bytes.Buffer, ch rune, n int) {
	for i := 0; i < n; i++ {
		buf.WriteRune(ch)
	}
}

// Draw writes the room to w starting at the cursor's current position.
// The first write error stops drawing and is returned as is; whatever was
// already written stays on the terminal.
func (r Room) Draw(w io.Writer) error {
	top, middle, bottom := r.lines()
	if _, err := w.Write(top); err != nil {
		return err
	}
	for i := 0; i < int(r.Size.Height); i++ {
		if _, err := w.Write(middle); err != nil {
			return err
		}
	}
	_, err := w.Write(bottom)
	return err
}

// DrawAt moves the cursor to pos (0-based) and draws the room there.
func (r Room) DrawAt(w io.Writer, pos geom.Coord[int]) error {
	if _, err := io.WriteString(w, MoveTo(pos.Y+1, pos.X+1)); err != nil {
		return err
	}
	return r.Draw(w)
}

// Bytes returns the full draw sequence.
func (r Room) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail
	_ = r.Draw(&buf)
	return buf.Bytes()
}
