package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"rectdraw/internal/geom"
	"rectdraw/internal/render"
)

// colorNames maps color names from JSON to ANSI foreground codes.
var colorNames = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"gray":           90,
	"grey":           90,
	"bright_red":     91,
	"bright_green":   92,
	"bright_yellow":  93,
	"bright_blue":    94,
	"bright_magenta": 95,
	"bright_cyan":    96,
	"bright_white":   97,
}

// Scene files may not place anything beyond MaxExtent on either axis, and
// a single canvas may hold at most MaxCanvasCells cells.
const (
	MaxExtent      = 0xffff
	MaxCanvasCells = 1 << 22
)

// cellWidth measures characters with ambiguous-width runes (box drawing)
// counted as one column regardless of locale.
var cellWidth = &runewidth.Condition{EastAsianWidth: false}

// PlacedRoom is a room with its 0-based screen position.
type PlacedRoom struct {
	Name string
	Pos  geom.Coord[int]
	Room render.Room
}

// Scene is a set of rooms and canvases drawn together.
type Scene struct {
	Name     string
	Rooms    []PlacedRoom
	Canvases []*render.Canvas
}

// jsonScene is the on-disk JSON format.
type jsonScene struct {
	Name     string       `json:"name"`
	Rooms    []jsonRoom   `json:"rooms"`
	Canvases []jsonCanvas `json:"canvases,omitempty"`
}

type jsonRoom struct {
	Name   string    `json:"name,omitempty"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Chars  jsonChars `json:"chars"`
	Border jsonStyle `json:"border,omitempty"`
	Fill   jsonStyle `json:"fill,omitempty"`
}

type jsonStyle struct {
	Fg   string `json:"fg,omitempty"`
	Bg   string `json:"bg,omitempty"`
	Bold bool   `json:"bold,omitempty"`
}

// jsonChars selects a RectChars variant. Kind is "two", "four" or one of
// the box style names ("line", "heavy", "double", "arc").
type jsonChars struct {
	Kind       string `json:"kind"`
	Border     string `json:"border,omitempty"`
	Corner     string `json:"corner,omitempty"`
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
	Fill       string `json:"fill,omitempty"`
}

type jsonCanvas struct {
	X      uint32     `json:"x"`
	Y      uint32     `json:"y"`
	Width  uint32     `json:"width"`
	Height uint32     `json:"height"`
	Fill   string     `json:"fill,omitempty"`
	Rects  []jsonRect `json:"rects,omitempty"`
	Rows   []string   `json:"rows,omitempty"`
}

type jsonRect struct {
	X      uint32    `json:"x"`
	Y      uint32    `json:"y"`
	Width  uint32    `json:"width"`
	Height uint32    `json:"height"`
	Chars  jsonChars `json:"chars"`
}

// LoadScene reads a JSON scene file from disk.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON scene.
func Parse(data []byte) (*Scene, error) {
	var js jsonScene
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("parse scene JSON: %w", err)
	}
	if js.Name == "" {
		return nil, fmt.Errorf("scene has no name")
	}

	s := &Scene{Name: js.Name}
	for i, jr := range js.Rooms {
		room, err := buildRoom(jr)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", i, err)
		}
		s.Rooms = append(s.Rooms, room)
	}
	for i, jc := range js.Canvases {
		c, err := buildCanvas(jc)
		if err != nil {
			return nil, fmt.Errorf("canvas %d: %w", i, err)
		}
		s.Canvases = append(s.Canvases, c)
	}
	return s, nil
}

func buildRoom(jr jsonRoom) (PlacedRoom, error) {
	if jr.X < 0 || jr.Y < 0 {
		return PlacedRoom{}, fmt.Errorf("negative position (%d,%d)", jr.X, jr.Y)
	}
	if jr.Width < 0 || jr.Width > 0xffff || jr.Height < 0 || jr.Height > 0xffff {
		return PlacedRoom{}, fmt.Errorf("size %dx%d out of range", jr.Width, jr.Height)
	}
	// the footprint adds the two border cells on each axis
	if jr.X > MaxExtent || jr.Y > MaxExtent ||
		jr.X+jr.Width+2 > MaxExtent || jr.Y+jr.Height+2 > MaxExtent {
		return PlacedRoom{}, fmt.Errorf("room at (%d,%d) extends past %d", jr.X, jr.Y, MaxExtent)
	}
	chars, err := buildChars(jr.Chars)
	if err != nil {
		return PlacedRoom{}, err
	}
	border, err := buildStyle(jr.Border)
	if err != nil {
		return PlacedRoom{}, fmt.Errorf("border style: %w", err)
	}
	fill, err := buildStyle(jr.Fill)
	if err != nil {
		return PlacedRoom{}, fmt.Errorf("fill style: %w", err)
	}
	return PlacedRoom{
		Name: jr.Name,
		Pos:  geom.C(jr.X, jr.Y),
		Room: render.Room{
			Chars:       chars,
			BorderStyle: border,
			FillStyle:   fill,
			Size:        geom.S(uint16(jr.Width), uint16(jr.Height)),
		},
	}, nil
}

func buildCanvas(jc jsonCanvas) (*render.Canvas, error) {
	size := geom.S(jc.Width, jc.Height)
	if cells := geom.Area64(size); cells > MaxCanvasCells {
		return nil, fmt.Errorf("size %dx%d too large (%d cells, max %d)", jc.Width, jc.Height, cells, MaxCanvasCells)
	}
	if uint64(jc.X)+uint64(jc.Width) > MaxExtent || uint64(jc.Y)+uint64(jc.Height) > MaxExtent {
		return nil, fmt.Errorf("canvas at (%d,%d) extends past %d", jc.X, jc.Y, MaxExtent)
	}
	c := render.NewCanvas(geom.C(jc.X, jc.Y), size)
	if jc.Fill != "" {
		ch, err := cellRune("fill", jc.Fill)
		if err != nil {
			return nil, err
		}
		c.Fill(ch)
	}
	for i, jr := range jc.Rects {
		chars, err := buildChars(jr.Chars)
		if err != nil {
			return nil, fmt.Errorf("rect %d: %w", i, err)
		}
		c.DrawRect(geom.C(jr.X, jr.Y), geom.S(jr.Width, jr.Height), chars)
	}

	if uint64(len(jc.Rows)) > uint64(size.Height) {
		return nil, fmt.Errorf("%d rows exceed height %d", len(jc.Rows), size.Height)
	}
	for y, row := range jc.Rows {
		x := uint32(0)
		for _, r := range row {
			if x >= size.Width {
				return nil, fmt.Errorf("row %d is wider than %d cells", y, size.Width)
			}
			if cellWidth.RuneWidth(r) != 1 {
				return nil, fmt.Errorf("row %d: %q is not a single-column character", y, r)
			}
			// spaces are transparent so rows can overlay rects
			if r != ' ' {
				c.Set(geom.C(x, uint32(y)), r)
			}
			x++
		}
	}
	return c, nil
}

func buildChars(jc jsonChars) (render.RectChars, error) {
	switch jc.Kind {
	case "two":
		border, err := cellRune("border", jc.Border)
		if err != nil {
			return nil, err
		}
		fill, err := cellRune("fill", jc.Fill)
		if err != nil {
			return nil, err
		}
		return render.NewTwoCharRect(border, fill), nil
	case "four":
		var runes [4]rune
		fields := [4][2]string{
			{"corner", jc.Corner},
			{"horizontal", jc.Horizontal},
			{"vertical", jc.Vertical},
			{"fill", jc.Fill},
		}
		for i, f := range fields {
			r, err := cellRune(f[0], f[1])
			if err != nil {
				return nil, err
			}
			runes[i] = r
		}
		return render.NewFourCharRect(runes[0], runes[1], runes[2], runes[3]), nil
	}

	fill := ' '
	if jc.Fill != "" {
		r, err := cellRune("fill", jc.Fill)
		if err != nil {
			return nil, err
		}
		fill = r
	}
	if box, ok := render.BoxStyle(jc.Kind, fill); ok {
		return box, nil
	}
	return nil, fmt.Errorf("unknown chars kind %q (want two, four, %s)",
		jc.Kind, strings.Join(render.BoxStyleNames(), ", "))
}

// cellRune decodes a one-character string that fills exactly one column.
func cellRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s %q must be exactly one character", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if cellWidth.RuneWidth(r) != 1 {
		return 0, fmt.Errorf("%s %q is not a single-column character", field, s)
	}
	return r, nil
}

func buildStyle(js jsonStyle) (string, error) {
	fg, err := colorCode(js.Fg)
	if err != nil {
		return "", err
	}
	bg, err := colorCode(js.Bg)
	if err != nil {
		return "", err
	}
	if !js.Bold && fg == 0 && bg == 0 {
		return "", nil
	}

	// reset first so a fill style does not inherit the border's attributes
	style := render.Reset
	if js.Bold {
		style += render.Bold
	}
	if fg != 0 {
		style += render.FG(fg)
	}
	if bg != 0 {
		style += render.BG(bg)
	}
	return style, nil
}

// colorCode maps a color name to its foreground code; "" maps to 0.
func colorCode(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	code, ok := colorNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	return code, nil
}

// LoadScenes scans a directory for *.json files, loads each as a Scene,
// and returns them indexed by Name.
func LoadScenes(dir string) (map[string]*Scene, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenes directory: %w", err)
	}

	all := make(map[string]*Scene)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		s, err := LoadScene(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		if _, exists := all[s.Name]; exists {
			return nil, fmt.Errorf("duplicate scene name %q in %s", s.Name, entry.Name())
		}
		all[s.Name] = s
	}
	return all, nil
}

// Bounds returns the smallest size covering every room and canvas,
// measured from the screen origin.
func (s *Scene) Bounds() geom.Size[int] {
	var b geom.Size[int]
	grow := func(right, bottom int) {
		b.Width = max(b.Width, right)
		b.Height = max(b.Height, bottom)
	}
	for _, r := range s.Rooms {
		fp := r.Room.Footprint()
		grow(r.Pos.X+fp.Width, r.Pos.Y+fp.Height)
	}
	for _, c := range s.Canvases {
		grow(int(c.Pos().X)+int(c.Size().Width), int(c.Pos().Y)+int(c.Size().Height))
	}
	return b
}

// Draw writes every room and then every canvas to w. Each room ends with a
// style reset so its attributes do not leak into the next one.
func (s *Scene) Draw(w io.Writer) error {
	for i, r := range s.Rooms {
		if err := r.Room.DrawAt(w, r.Pos); err != nil {
			return fmt.Errorf("draw room %d: %w", i, err)
		}
		if r.Room.BorderStyle != "" || r.Room.FillStyle != "" {
			if _, err := io.WriteString(w, render.Reset); err != nil {
				return fmt.Errorf("draw room %d: %w", i, err)
			}
		}
	}
	for i, c := range s.Canvases {
		if _, err := c.WriteTo(w); err != nil {
			return fmt.Errorf("draw canvas %d: %w", i, err)
		}
	}
	return nil
}

// DefaultScene returns the three demo rooms used when no scene file is
// available: a rogue-style room, an ASCII room and a line-drawn room.
func DefaultScene() *Scene {
	size := geom.S[uint16](4, 4)
	status := render.NewCanvas(geom.C[uint32](2, 14), geom.S[uint32](24, 1))
	for i, r := range "rectdraw: q to quit" {
		status.Set(geom.C(uint32(i), 0), r)
	}
	return &Scene{
		Name: "Default",
		Rooms: []PlacedRoom{
			{Name: "rogue", Pos: geom.C(2, 4), Room: render.Room{Chars: render.NewTwoCharRect('#', '.'), Size: size}},
			{Name: "ascii", Pos: geom.C(13, 0), Room: render.Room{Chars: render.NewFourCharRect('+', '-', '|', '.'), Size: size}},
			{Name: "line", Pos: geom.C(13, 6), Room: render.Room{Chars: render.NewUnicodeLineRect('.'), Size: size}},
		},
		Canvases: []*render.Canvas{status},
	}
}

// Clone returns a copy that shares rooms but owns its canvases, so the
// copy can be rendered from another goroutine.
func (s *Scene) Clone() *Scene {
	dup := &Scene{
		Name:     s.Name,
		Rooms:    append([]PlacedRoom(nil), s.Rooms...),
		Canvases: make([]*render.Canvas, len(s.Canvases)),
	}
	for i, c := range s.Canvases {
		dup.Canvases[i] = c.Clone()
	}
	return dup
}
