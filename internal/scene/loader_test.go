package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rectdraw/internal/geom"
	"rectdraw/internal/render"
)

func TestParseRooms(t *testing.T) {
	s, err := Parse([]byte(`{
		"name": "test",
		"rooms": [
			{"x": 1, "y": 2, "width": 3, "height": 1,
			 "chars": {"kind": "two", "border": "#", "fill": "."},
			 "border": {"fg": "red", "bold": true}},
			{"x": 0, "y": 0, "width": 0, "height": 0,
			 "chars": {"kind": "four", "corner": "+", "horizontal": "-", "vertical": "|", "fill": " "}},
			{"x": 9, "y": 9, "width": 2, "height": 2,
			 "chars": {"kind": "heavy"}}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Rooms) != 3 {
		t.Fatalf("got %d rooms, want 3", len(s.Rooms))
	}

	r := s.Rooms[0]
	if r.Pos != geom.C(1, 2) || r.Room.Size != geom.S[uint16](3, 1) {
		t.Errorf("room 0 placed at %v size %v", r.Pos, r.Room.Size)
	}
	if got := r.Room.Chars.CharAt(render.Center); got != '.' {
		t.Errorf("room 0 fill = %q", got)
	}
	if want := render.Reset + render.Bold + render.FG(31); r.Room.BorderStyle != want {
		t.Errorf("border style = %q, want %q", r.Room.BorderStyle, want)
	}
	if r.Room.FillStyle != "" {
		t.Errorf("fill style = %q, want empty", r.Room.FillStyle)
	}

	if got := s.Rooms[1].Room.Chars.CharAt(render.RightSide); got != '|' {
		t.Errorf("room 1 right side = %q", got)
	}
	heavy := s.Rooms[2].Room.Chars
	if heavy.CharAt(render.LeftTop) != '┏' || heavy.CharAt(render.Center) != ' ' {
		t.Errorf("room 2 should use heavy lines with a blank fill")
	}
}

func TestBuildStyle(t *testing.T) {
	tests := []struct {
		style jsonStyle
		want  string
	}{
		{jsonStyle{}, ""},
		{jsonStyle{Bold: true}, render.Reset + render.Bold},
		{jsonStyle{Fg: "green"}, render.Reset + render.FG(32)},
		{jsonStyle{Bg: "blue"}, render.Reset + "\x1b[44m"},
		{jsonStyle{Fg: "white", Bg: "grey", Bold: true}, render.Reset + render.Bold + render.FG(37) + render.BG(90)},
	}
	for _, tt := range tests {
		got, err := buildStyle(tt.style)
		if err != nil {
			t.Fatalf("buildStyle(%+v): %v", tt.style, err)
		}
		if got != tt.want {
			t.Errorf("buildStyle(%+v) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestParseCanvasOversizedRect(t *testing.T) {
	s, err := Parse([]byte(`{
		"name": "x",
		"canvases": [{
			"width": 2, "height": 2,
			"rects": [{"width": 4294967295, "height": 4294967295, "chars": {"kind": "line"}}]
		}]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := s.Canvases[0]
	want := [][]rune{{'┌', '─'}, {'│', ' '}}
	for y, row := range want {
		for x, ch := range row {
			if got := c.Get(geom.C(uint32(x), uint32(y))); got != ch {
				t.Errorf("Get(%d,%d) = %q, want %q", x, y, got, ch)
			}
		}
	}
}

func TestParseCanvas(t *testing.T) {
	s, err := Parse([]byte(`{
		"name": "canvas",
		"canvases": [{
			"x": 4, "y": 1, "width": 5, "height": 3,
			"fill": ".",
			"rects": [{"x": 0, "y": 0, "width": 5, "height": 3, "chars": {"kind": "line"}}],
			"rows": ["", " a b"]
		}]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := s.Canvases[0]
	if c.Pos() != geom.C[uint32](4, 1) {
		t.Errorf("Pos() = %v", c.Pos())
	}
	tests := []struct {
		at   geom.Coord[uint32]
		want rune
	}{
		{geom.C[uint32](0, 0), '┌'},
		{geom.C[uint32](4, 2), '┘'},
		{geom.C[uint32](1, 1), 'a'},
		{geom.C[uint32](2, 1), ' '}, // rect fill, not overwritten by the row's space
		{geom.C[uint32](3, 1), 'b'},
		{geom.C[uint32](4, 1), '│'},
	}
	for _, tt := range tests {
		if got := c.Get(tt.at); got != tt.want {
			t.Errorf("Get(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"bad json", `{`, "parse scene JSON"},
		{"no name", `{"rooms": []}`, "no name"},
		{"unknown kind", `{"name": "x", "rooms": [{"chars": {"kind": "dotted"}}]}`, `unknown chars kind "dotted"`},
		{"long border", `{"name": "x", "rooms": [{"chars": {"kind": "two", "border": "##", "fill": "."}}]}`, "exactly one character"},
		{"wide fill", `{"name": "x", "rooms": [{"chars": {"kind": "line", "fill": "漢"}}]}`, "single-column"},
		{"unknown color", `{"name": "x", "rooms": [{"chars": {"kind": "line"}, "fill": {"fg": "puce"}}]}`, `unknown color "puce"`},
		{"negative pos", `{"name": "x", "rooms": [{"x": -1, "chars": {"kind": "line"}}]}`, "negative position"},
		{"huge room", `{"name": "x", "rooms": [{"width": 70000, "chars": {"kind": "line"}}]}`, "out of range"},
		{"too many rows", `{"name": "x", "canvases": [{"width": 2, "height": 1, "rows": ["a", "b"]}]}`, "exceed height"},
		{"wide row", `{"name": "x", "canvases": [{"width": 2, "height": 1, "rows": ["abc"]}]}`, "wider than"},
		{"huge canvas", `{"name": "x", "canvases": [{"width": 4294967295, "height": 4294967295}]}`, "too large"},
		{"canvas past extent", `{"name": "x", "canvases": [{"x": 65535, "width": 1, "height": 1}]}`, "extends past"},
		{"room past extent", `{"name": "x", "rooms": [{"x": 65530, "width": 10, "chars": {"kind": "line"}}]}`, "extends past"},
		{"far room", `{"name": "x", "rooms": [{"y": 9223372036854775807, "chars": {"kind": "line"}}]}`, "extends past"},
		{"wide rune in row", `{"name": "x", "canvases": [{"width": 4, "height": 1, "rows": ["a漢"]}]}`, "single-column"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadScenes(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.json", `{"name": "A"}`)
	write("b.json", `{"name": "B", "rooms": [{"chars": {"kind": "arc"}}]}`)
	write("notes.txt", `not a scene`)

	all, err := LoadScenes(dir)
	if err != nil {
		t.Fatalf("LoadScenes: %v", err)
	}
	if len(all) != 2 || all["A"] == nil || all["B"] == nil {
		t.Fatalf("loaded %v", all)
	}

	write("c.json", `{"name": "A"}`)
	if _, err := LoadScenes(dir); err == nil || !strings.Contains(err.Error(), "duplicate scene name") {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestLoadDemoScene(t *testing.T) {
	s, err := LoadScene(filepath.Join("..", "..", "assets", "scenes", "demo.json"))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(s.Rooms) == 0 || len(s.Canvases) == 0 {
		t.Errorf("demo scene should have rooms and canvases")
	}
	var buf bytes.Buffer
	if err := s.Draw(&buf); err != nil {
		t.Fatal(err)
	}
}

func TestSceneDraw(t *testing.T) {
	s := DefaultScene()
	var buf bytes.Buffer
	if err := s.Draw(&buf); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	out := buf.String()

	for _, r := range s.Rooms {
		if !strings.Contains(out, string(r.Room.Bytes())) {
			t.Errorf("room %s missing from output", r.Name)
		}
	}
	if !strings.HasSuffix(out, s.Canvases[0].Render()) {
		t.Error("output should end with the canvas rendering")
	}
	if !strings.Contains(render.StripControl(out), "rectdraw: q to quit") {
		t.Error("status canvas text missing")
	}
}

type failWriter struct{}

var errClosed = errors.New("closed")

func (failWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestSceneDrawError(t *testing.T) {
	err := DefaultScene().Draw(failWriter{})
	if !errors.Is(err, errClosed) {
		t.Fatalf("err = %v, want wrapped sink error", err)
	}
	if !strings.HasPrefix(err.Error(), "draw room 0") {
		t.Errorf("err = %q", err)
	}
}

func TestBounds(t *testing.T) {
	s := DefaultScene()
	// status canvas at (2,14) is 24 wide; line room at (13,6) is 6 tall
	if got := s.Bounds(); got != geom.S(26, 15) {
		t.Errorf("Bounds() = %v", got)
	}
}

func TestSceneClone(t *testing.T) {
	s := DefaultScene()
	dup := s.Clone()
	dup.Canvases[0].Set(geom.C[uint32](0, 0), '!')
	if s.Canvases[0].Get(geom.C[uint32](0, 0)) != 'r' {
		t.Error("clone should not share canvas cells")
	}
	if len(dup.Rooms) != len(s.Rooms) || dup.Name != s.Name {
		t.Error("clone should keep rooms and name")
	}
}
