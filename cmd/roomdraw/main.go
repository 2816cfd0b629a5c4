package main

import (
	"bufio"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"rectdraw/internal/render"
	"rectdraw/internal/scene"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	sc := scene.DefaultScene()
	if len(os.Args) > 1 {
		loaded, err := scene.LoadScene(os.Args[1])
		if err != nil {
			log.Fatalf("Load scene: %v", err)
		}
		sc = loaded
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		log.Fatal("stdout is not a terminal")
	}

	termW, termH, err := term.GetSize(fd)
	if err != nil {
		termW, termH = 80, 24
	}
	if b := sc.Bounds(); b.Width > termW || b.Height > termH {
		log.Printf("Scene needs %dx%d, terminal is %dx%d; output will be clipped", b.Width, b.Height, termW, termH)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatalf("Raw mode: %v", err)
	}

	out := bufio.NewWriter(os.Stdout)
	err = draw(out, sc, termH)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	term.Restore(fd, oldState)
	if err != nil {
		log.Fatalf("Draw: %v", err)
	}
}

// draw clears the screen, draws the scene and leaves the cursor on the
// last row so the shell prompt does not overwrite the rooms.
func draw(w io.Writer, sc *scene.Scene, termH int) error {
	if _, err := io.WriteString(w, render.ClearScreen()); err != nil {
		return err
	}
	if err := sc.Draw(w); err != nil {
		return err
	}
	row := min(sc.Bounds().Height+1, termH)
	_, err := io.WriteString(w, render.Reset+render.MoveTo(row, 1)+"\r\n")
	return err
}
