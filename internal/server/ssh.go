package server

import (
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"rectdraw/internal/geom"
	"rectdraw/internal/render"
	"rectdraw/internal/scene"
)

// SSHServer draws a scene on the terminal of every connecting session.
type SSHServer struct {
	scene   *scene.Scene
	srv     *ssh.Server
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, sc *scene.Scene) *SSHServer {
	s := &SSHServer{scene: sc, hostKey: hostKey}
	s.srv = &ssh.Server{Addr: addr, Handler: s.handleSession}
	return s
}

// Start loads the host key and serves until the listener fails.
func (s *SSHServer) Start() error {
	if err := s.srv.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("host key %s: %w", s.hostKey, err)
	}
	log.Printf("Serving scene %q on %s", s.scene.Name, s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return nil
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	log.Printf("Session opened: %s (%dx%d)", username, ptyReq.Window.Width, ptyReq.Window.Height)
	defer log.Printf("Session closed: %s", username)

	// canvases cache their rendering, so each session gets its own copy
	view := NewView(s.scene.Clone(), username)

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := make(chan Action, 8)
	go readInput(sess, inputCh)

	termW, termH := ptyReq.Window.Width, ptyReq.Window.Height
	if err := view.Redraw(sess, termW, termH); err != nil {
		log.Printf("Draw failed for %s: %v", username, err)
		return
	}

	for {
		var err error
		select {
		case win, ok := <-winCh:
			if !ok {
				return
			}
			termW, termH = win.Width, win.Height
			err = view.Redraw(sess, termW, termH)
		case action, ok := <-inputCh:
			if !ok || action == ActionQuit {
				return
			}
			if action == ActionRedraw {
				err = view.Redraw(sess, termW, termH)
			} else {
				err = view.Refresh(sess)
			}
		}
		if err != nil {
			log.Printf("Draw failed for %s: %v", username, err)
			return
		}
	}
}

// readInput forwards parsed actions until the session's input ends.
func readInput(r io.Reader, out chan<- Action) {
	defer close(out)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, action := range parseInput(buf[:n]) {
			// never block: the session may already be gone, and closing
			// out is enough to end it
			select {
			case out <- action:
			default:
			}
			if action == ActionQuit {
				return
			}
		}
	}
}

// Action is a parsed keyboard command.
type Action int

const (
	ActionRefresh Action = iota
	ActionRedraw
	ActionQuit
)

// parseInput converts raw bytes into session actions.
// Handles R (redraw), space (refresh), Q, and Ctrl-C; escape sequences
// are skipped.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Skip CSI sequences such as arrow keys
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'r', 'R':
			actions = append(actions, ActionRedraw)
		case ' ':
			actions = append(actions, ActionRefresh)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}

// View is one session's copy of the scene plus a status line.
type View struct {
	scene  *scene.Scene
	status *render.Canvas
	user   string
	draws  int
}

// NewView wraps sc, which must not be shared with other views.
func NewView(sc *scene.Scene, user string) *View {
	return &View{scene: sc, user: user}
}

// Redraw clears the screen and draws everything for a terminal of the
// given size. The status line is rebuilt to span the new width.
func (v *View) Redraw(w io.Writer, termW, termH int) error {
	if termW < 1 || termH < 1 {
		return nil
	}
	v.status = render.NewCanvas(
		geom.C[uint32](0, uint32(termH-1)),
		geom.S[uint32](uint32(termW), 1),
	)
	if _, err := io.WriteString(w, render.ClearScreen()); err != nil {
		return err
	}
	return v.Refresh(w)
}

// Refresh draws the scene again without clearing. Canvases that did not
// change reuse their cached rendering.
func (v *View) Refresh(w io.Writer) error {
	if err := v.scene.Draw(w); err != nil {
		return err
	}
	if v.status == nil {
		return nil
	}
	v.draws++
	v.writeStatus(fmt.Sprintf(" %s | %s | draw %d | r redraw, q quit", v.scene.Name, v.user, v.draws))
	_, err := v.status.WriteTo(w)
	return err
}

func (v *View) writeStatus(text string) {
	width := v.status.Size().Width
	x := uint32(0)
	for _, r := range text {
		if x >= width {
			break
		}
		if v.status.Get(geom.C(x, 0)) != r {
			v.status.Set(geom.C(x, 0), r)
		}
		x++
	}
	for ; x < width; x++ {
		if v.status.Get(geom.C(x, 0)) != ' ' {
			v.status.Set(geom.C(x, 0), ' ')
		}
	}
}
