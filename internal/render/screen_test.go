package render

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"
)

// vscreen is a minimal terminal emulator understanding the cursor
// sequences this package emits. Cells never written read as '·'.
type vscreen struct {
	row, col int
	cells    map[[2]int]rune
}

func newVScreen() *vscreen {
	return &vscreen{cells: map[[2]int]rune{}}
}

func (s *vscreen) Write(p []byte) (int, error) {
	s.feed(string(p))
	return len(p), nil
}

func (s *vscreen) feed(out string) {
	for i := 0; i < len(out); {
		if strings.HasPrefix(out[i:], CSI) {
			j := i + len(CSI)
			for j < len(out) && (out[j] < 0x40 || out[j] > 0x7e) {
				j++
			}
			s.apply(out[i+len(CSI):j], out[j])
			i = j + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(out[i:])
		s.cells[[2]int{s.row, s.col}] = r
		s.col++
		i += size
	}
}

func (s *vscreen) apply(params string, final byte) {
	var nums []int
	for _, f := range strings.Split(params, ";") {
		n, _ := strconv.Atoi(f)
		nums = append(nums, n)
	}
	switch final {
	case 'H':
		s.row, s.col = nums[0]-1, nums[1]-1
	case 'B':
		s.row += nums[0]
	case 'D':
		s.col -= nums[0]
		if s.col < 0 {
			s.col = 0
		}
	}
}

// rows returns h rows of w cells starting at (x, y).
func (s *vscreen) rows(x, y, w, h int) []string {
	out := make([]string, h)
	for r := 0; r < h; r++ {
		var sb strings.Builder
		for c := 0; c < w; c++ {
			ch, ok := s.cells[[2]int{y + r, x + c}]
			if !ok {
				ch = '·'
			}
			sb.WriteRune(ch)
		}
		out[r] = sb.String()
	}
	return out
}

func assertRows(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q\nscreen:\n%s", i, got[i], want[i], strings.Join(got, "\n"))
		}
	}
}
