package render

import (
	"fmt"
	"sort"
)

// RectPart names one of the nine logical positions of a rectangle.
type RectPart int

const (
	Center RectPart = iota
	LeftTop
	Top
	RightTop
	RightSide
	RightBottom
	Bottom
	LeftBottom
	LeftSide

	numRectParts
)

var rectPartNames = [numRectParts]string{
	Center:      "center",
	LeftTop:     "left_top",
	Top:         "top",
	RightTop:    "right_top",
	RightSide:   "right_side",
	RightBottom: "right_bottom",
	Bottom:      "bottom",
	LeftBottom:  "left_bottom",
	LeftSide:    "left_side",
}

// RectParts lists every valid part in declaration order.
func RectParts() []RectPart {
	parts := make([]RectPart, numRectParts)
	for i := range parts {
		parts[i] = RectPart(i)
	}
	return parts
}

// Valid reports whether p is one of the nine parts.
func (p RectPart) Valid() bool {
	return p >= Center && p < numRectParts
}

func (p RectPart) String() string {
	if !p.Valid() {
		return fmt.Sprintf("RectPart(%d)", int(p))
	}
	return rectPartNames[p]
}

// RectChars maps every RectPart to the character drawn there.
// Implementations must answer for all nine parts and have no side effects.
type RectChars interface {
	CharAt(part RectPart) rune
}

// TwoCharRect draws every border part with one character.
type TwoCharRect struct {
	Border rune
	Fill   rune
}

// NewTwoCharRect returns a rect with a single border character.
func NewTwoCharRect(border, fill rune) TwoCharRect {
	return TwoCharRect{Border: border, Fill: fill}
}

func (r TwoCharRect) CharAt(part RectPart) rune {
	if part == Center {
		return r.Fill
	}
	return r.Border
}

// FourCharRect has separate horizontal and vertical borders and one
// character shared by all four corners.
type FourCharRect struct {
	Corner     rune
	Horizontal rune
	Vertical   rune
	Fill       rune
}

// NewFourCharRect returns a rect like '+', '-', '|', '.'.
func NewFourCharRect(corner, horizontal, vertical, fill rune) FourCharRect {
	return FourCharRect{
		Corner:     corner,
		Horizontal: horizontal,
		Vertical:   vertical,
		Fill:       fill,
	}
}

func (r FourCharRect) CharAt(part RectPart) rune {
	switch part {
	case Center:
		return r.Fill
	case Top, Bottom:
		return r.Horizontal
	case LeftSide, RightSide:
		return r.Vertical
	default:
		return r.Corner
	}
}

// boxSet is a full table of border characters; Center is unused.
type boxSet [numRectParts]rune

var (
	lightBox = boxSet{
		LeftTop: '┌', Top: '─', RightTop: '┐',
		RightSide: '│', RightBottom: '┘', Bottom: '─',
		LeftBottom: '└', LeftSide: '│',
	}
	heavyBox = boxSet{
		LeftTop: '┏', Top: '━', RightTop: '┓',
		RightSide: '┃', RightBottom: '┛', Bottom: '━',
		LeftBottom: '┗', LeftSide: '┃',
	}
	doubleBox = boxSet{
		LeftTop: '╔', Top: '═', RightTop: '╗',
		RightSide: '║', RightBottom: '╝', Bottom: '═',
		LeftBottom: '╚', LeftSide: '║',
	}
	arcBox = boxSet{
		LeftTop: '╭', Top: '─', RightTop: '╮',
		RightSide: '│', RightBottom: '╯', Bottom: '─',
		LeftBottom: '╰', LeftSide: '│',
	}
)

// BoxRect draws borders from a fixed box-drawing set with a configurable fill.
type BoxRect struct {
	set  *boxSet
	Fill rune
}

func (r BoxRect) CharAt(part RectPart) rune {
	if part == Center || r.set == nil {
		return r.Fill
	}
	return r.set[part]
}

// NewUnicodeLineRect returns light single-line borders: ┌─┐ │ └─┘.
func NewUnicodeLineRect(fill rune) BoxRect {
	return BoxRect{set: &lightBox, Fill: fill}
}

// NewHeavyLineRect returns heavy borders: ┏━┓ ┃ ┗━┛.
func NewHeavyLineRect(fill rune) BoxRect {
	return BoxRect{set: &heavyBox, Fill: fill}
}

// NewDoubleLineRect returns double borders: ╔═╗ ║ ╚═╝.
func NewDoubleLineRect(fill rune) BoxRect {
	return BoxRect{set: &doubleBox, Fill: fill}
}

// NewArcLineRect returns light borders with rounded corners: ╭─╮ │ ╰─╯.
func NewArcLineRect(fill rune) BoxRect {
	return BoxRect{set: &arcBox, Fill: fill}
}

var boxStyles = map[string]func(fill rune) BoxRect{
	"line":   NewUnicodeLineRect,
	"heavy":  NewHeavyLineRect,
	"double": NewDoubleLineRect,
	"arc":    NewArcLineRect,
}

// BoxStyle looks up a box-drawing set by name.
func BoxStyle(name string, fill rune) (BoxRect, bool) {
	ctor, ok := boxStyles[name]
	if !ok {
		return BoxRect{}, false
	}
	return ctor(fill), true
}

// BoxStyleNames returns the names accepted by BoxStyle, sorted.
func BoxStyleNames() []string {
	names := make([]string, 0, len(boxStyles))
	for name := range boxStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
