package server

import (
	"fmt"
	"image"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/golang/glog"

	"tilemap-inspect/internal/render"
)

// PreviewServer serves a rendered overlay image over SSH as a truecolor
// half-block picture sized to each client's terminal.
type PreviewServer struct {
	img     image.Image
	title   string
	addr    string
	hostKey string
}

// NewPreviewServer creates a server for img. The image is shared by every
// session and must not be modified after this call.
func NewPreviewServer(addr, hostKey, title string, img image.Image) *PreviewServer {
	return &PreviewServer{
		img:     img,
		title:   title,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections. It blocks.
func (s *PreviewServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	glog.Infof("preview server listening on %s", s.addr)
	return server.ListenAndServe()
}

// Key actions understood by a preview session.
type action int

const (
	actionNone action = iota
	actionRedraw
	actionQuit
)

func (s *PreviewServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	user := sess.User()
	glog.Infof("preview session opened: %s from %s", user, sess.RemoteAddr())
	defer glog.Infof("preview session closed: %s", user)

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	actions := make(chan action, 1)
	go func() {
		defer close(actions)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, a := range parseInput(buf[:n]) {
				select {
				case actions <- a:
				case <-sess.Context().Done():
					return
				}
				if a == actionQuit {
					return
				}
			}
		}
	}()

	w, h := ptyReq.Window.Width, ptyReq.Window.Height
	io.WriteString(sess, s.frame(w, h))
	for {
		select {
		case <-sess.Context().Done():
			return
		case win, ok := <-winCh:
			if !ok {
				return
			}
			w, h = win.Width, win.Height
			io.WriteString(sess, s.frame(w, h))
		case a, ok := <-actions:
			if !ok || a == actionQuit {
				return
			}
			if a == actionRedraw {
				io.WriteString(sess, s.frame(w, h))
			}
		}
	}
}

// frame renders the whole screen for a cols x rows terminal: the picture
// and a one-line status bar underneath.
func (s *PreviewServer) frame(cols, rows int) string {
	var sb strings.Builder
	sb.WriteString(render.ClearScreen())
	if rows < 2 || cols < 1 {
		return sb.String()
	}
	grid := render.FitHalfBlocks(s.img, cols, rows-1)
	sb.WriteString(render.WriteFrame(grid, true))

	b := s.img.Bounds()
	status := fmt.Sprintf(" %s  %dx%d  q: quit  r: redraw", s.title, b.Dx(), b.Dy())
	if utf8.RuneCountInString(status) > cols {
		status = string([]rune(status)[:cols])
	}
	sb.WriteString(render.MoveTo(rows, 1))
	sb.WriteString(status)
	return sb.String()
}

// parseInput converts raw bytes into session actions.
// Handles R, Q, Ctrl-C and Ctrl-L.
func parseInput(data []byte) []action {
	var actions []action
	i := 0
	for i < len(data) {
		// Skip escape sequences (arrow keys and friends)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'q', 'Q', 3: // 3 = Ctrl-C
			actions = append(actions, actionQuit)
		case 'r', 'R', 12: // 12 = Ctrl-L
			actions = append(actions, actionRedraw)
		}
		i += size
	}
	return actions
}
