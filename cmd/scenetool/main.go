package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"rectdraw/internal/geom"
	"rectdraw/internal/render"
	"rectdraw/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: scenetool validate <scenes-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0]))
	case "show":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: scenetool show <scene-file>")
			os.Exit(1)
		}
		os.Exit(runShow(args[0]))
	case "chars":
		runChars()
	case "table":
		if err := writeBoxTable(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: scenetool <command> [path]

Commands:
  validate <scenes-dir>   Load every scene and report overlapping rooms
  show     <scene-file>   Print the scene as plain text, one row per line
  chars                   Print every RectChars variant as a sample room
  table                   Print the Unicode box drawing block U+2500-U+257F`)
}

// --- validate ---

func runValidate(dir string) int {
	all, err := scene.LoadScenes(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	errors := 0
	for _, name := range names {
		s := all[name]
		fmt.Printf("Validating %q...\n", name)

		found := overlaps(s)
		for _, o := range found {
			fmt.Printf("  ERROR: %s\n", o)
		}
		errors += len(found)

		if len(found) == 0 {
			b := s.Bounds()
			fmt.Printf("  OK (%d rooms, %d canvases, %dx%d)\n", len(s.Rooms), len(s.Canvases), b.Width, b.Height)
		}
	}

	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Printf("\nAll %d scenes valid\n", len(all))
	return 0
}

// overlaps reports every pair of rooms whose footprints intersect.
func overlaps(s *scene.Scene) []string {
	var out []string
	for i := 0; i < len(s.Rooms); i++ {
		for j := i + 1; j < len(s.Rooms); j++ {
			a, b := s.Rooms[i], s.Rooms[j]
			fa, fb := a.Room.Footprint(), b.Room.Footprint()
			if a.Pos.X < b.Pos.X+fb.Width && b.Pos.X < a.Pos.X+fa.Width &&
				a.Pos.Y < b.Pos.Y+fb.Height && b.Pos.Y < a.Pos.Y+fa.Height {
				out = append(out, fmt.Sprintf("rooms %s and %s overlap", roomLabel(a, i), roomLabel(b, j)))
			}
		}
	}
	return out
}

func roomLabel(r scene.PlacedRoom, i int) string {
	if r.Name != "" {
		return fmt.Sprintf("%q", r.Name)
	}
	return fmt.Sprintf("#%d", i)
}

// --- show ---

func runShow(path string) int {
	s, err := scene.LoadScene(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	b := s.Bounds()
	fmt.Printf("%s (%dx%d)\n", s.Name, b.Width, b.Height)
	if b.Width > scene.MaxExtent || b.Height > scene.MaxExtent {
		fmt.Fprintf(os.Stderr, "Error: scene extends past %d cells\n", scene.MaxExtent)
		return 1
	}

	// composite everything into one canvas so the output is plain text
	flat := render.NewCanvas(geom.C[uint32](0, 0), geom.S(uint32(b.Width), uint32(b.Height)))
	for _, r := range s.Rooms {
		fp := r.Room.Footprint()
		flat.DrawRect(
			geom.C(uint32(r.Pos.X), uint32(r.Pos.Y)),
			geom.S(uint32(fp.Width), uint32(fp.Height)),
			r.Room.Chars,
		)
	}
	for _, c := range s.Canvases {
		for y := uint32(0); y < c.Size().Height; y++ {
			for x := uint32(0); x < c.Size().Width; x++ {
				flat.Set(geom.C(c.Pos().X+x, c.Pos().Y+y), c.Get(geom.C(x, y)))
			}
		}
	}

	for y := uint32(0); y < flat.Size().Height; y++ {
		var sb strings.Builder
		for x := uint32(0); x < flat.Size().Width; x++ {
			sb.WriteRune(flat.Get(geom.C(x, y)))
		}
		fmt.Println(strings.TrimRight(sb.String(), " "))
	}
	return 0
}

// --- chars ---

func runChars() {
	type sample struct {
		name  string
		chars render.RectChars
	}
	samples := []sample{
		{"two", render.NewTwoCharRect('#', '.')},
		{"four", render.NewFourCharRect('+', '-', '|', '.')},
	}
	for _, name := range render.BoxStyleNames() {
		box, _ := render.BoxStyle(name, '.')
		samples = append(samples, sample{name, box})
	}

	for _, s := range samples {
		c := render.NewCanvas(geom.C[uint32](0, 0), geom.S[uint32](6, 3))
		c.DrawRect(geom.C[uint32](0, 0), c.Size(), s.chars)
		fmt.Printf("%s:\n", s.name)
		for y := uint32(0); y < 3; y++ {
			var sb strings.Builder
			for x := uint32(0); x < 6; x++ {
				sb.WriteRune(c.Get(geom.C(x, y)))
			}
			fmt.Printf("  %s\n", sb.String())
		}
	}
}

// --- table ---

const (
	boxBlockStart = 0x2500
	boxBlockRows  = 8
)

// boxGroups lists the block's characters by the line weights they join.
var boxGroups = []struct {
	name  string
	chars string
}{
	{"light", "─│┌┐└┘├┤┬┴┼"},
	{"heavy", "━┃┏┓┗┛┣┫┳┻╋"},
	{"double", "═║╔╗╚╝╠╣╦╩╬"},
	{"light+heavy", "╼╽╾╿┍┎┑┒┕┖┙┚┝┞┟┠┡┢┥┦┧┨┩┪┭┮┯┰┱┲┵┶┷┸┹┺┽┾┿╀╁╂╃╄╅╆╇╈╉╊"},
	{"light+double", "╒╓╕╖╘╙╛╜╞╟╡╢╪╫"},
	{"arc", "╭╮╯╰"},
}

// writeBoxTable prints the box drawing block as a 16-column grid. Columns
// are labelled with the low hex digit and rows with their first code point.
func writeBoxTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%sUnicode box drawing characters%s\n\n", render.Bold, render.Reset)

	bw.WriteString("     ")
	for col := 0; col < 16; col++ {
		fmt.Fprintf(bw, "%X ", col)
	}
	bw.WriteString("\n")
	for row := 0; row < boxBlockRows; row++ {
		base := boxBlockStart + row*16
		fmt.Fprintf(bw, "%04X ", base)
		for col := 0; col < 16; col++ {
			bw.WriteRune(rune(base + col))
			bw.WriteByte(' ')
		}
		bw.WriteString("\n")
	}

	fmt.Fprintf(bw, "\n%sBy line weight%s\n", render.Bold, render.Reset)
	for _, g := range boxGroups {
		fmt.Fprintf(bw, "%s:\n ", g.name)
		for _, r := range g.chars {
			fmt.Fprintf(bw, " %c", r)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
