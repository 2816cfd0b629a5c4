package render

import (
	"strconv"
	"strings"
)

// Control sequence introducers and the two attribute sequences styles
// are built from.
const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
	Bold  = CSI + "1m"
)

// MoveTo is the absolute cursor move; row and col are 1-based.
func MoveTo(row, col int) string {
	return csi(strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H")
}

// CursorDown and CursorLeft are relative moves by n cells.
func CursorDown(n int) string {
	return csi(strconv.Itoa(n) + "B")
}

func CursorLeft(n int) string {
	return csi(strconv.Itoa(n) + "D")
}

// NextLine moves one row down and shift columns left. A zero shift only
// moves down, since most terminals read a zero count as one.
func NextLine(shift int) string {
	if shift <= 0 {
		return CursorDown(1)
	}
	return CursorDown(1) + CursorLeft(shift)
}

// Screen modes toggled around a session. Each returns the raw sequence.

func ClearScreen() string      { return csi("2J") }
func HideCursor() string       { return csi("?25l") }
func ShowCursor() string       { return csi("?25h") }
func EnableAltScreen() string  { return csi("?1049h") }
func DisableAltScreen() string { return csi("?1049l") }

func csi(body string) string {
	return CSI + body
}

// SGR builds a select-graphic-rendition sequence from numeric parameters.
// SGR() is equivalent to Reset.
func SGR(params ...int) string {
	if len(params) == 0 {
		return Reset
	}
	var sb strings.Builder
	sb.WriteString(CSI)
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	sb.WriteByte('m')
	return sb.String()
}

// FG returns the sequence selecting a basic ANSI foreground (30-37, 90-97).
func FG(code int) string {
	return SGR(code)
}

// BG takes a foreground code and selects the matching background.
func BG(code int) string {
	return SGR(code + 10)
}

// StripControl removes CSI sequences from s, leaving printable text.
func StripControl(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ESC[0] || i+1 >= len(s) || s[i+1] != '[' {
			sb.WriteByte(s[i])
			continue
		}
		// skip parameters and intermediates up to the final byte
		j := i + 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		i = j
	}
	return sb.String()
}
