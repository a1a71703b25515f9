package server

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"

	"termctl/internal/localterm"
	"termctl/internal/session"
	"termctl/internal/system"
)

// SessionInfo summarizes one hosted session for the listing API.
type SessionInfo struct {
	Name    string    `json:"name"`
	Cols    int       `json:"cols"`
	Rows    int       `json:"rows"`
	Started time.Time `json:"started"`
	Live    bool      `json:"live"`
}

// hostedSet tracks shells running on this server, keyed by session name.
// Sessions outlive their WebSocket: a pane may detach and reattach.
type hostedSet struct {
	mu       sync.Mutex
	sessions map[string]*hostedSession
	seq      int
}

func newHostedSet() *hostedSet {
	return &hostedSet{sessions: make(map[string]*hostedSession)}
}

// acquire returns the live session registered under name, starting one if
// needed. An empty name allocates the next numeric identifier.
func (h *hostedSet) acquire(name string, cols, rows int) (*hostedSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if name == "" {
		h.seq++
		name = fmt.Sprintf("%d", h.seq)
	}
	if hs, ok := h.sessions[name]; ok && !hs.exited() {
		return hs, nil
	}
	hs, err := startHosted(name, cols, rows, func() { h.drop(name) })
	if err != nil {
		return nil, err
	}
	h.sessions[name] = hs
	return hs, nil
}

func (h *hostedSet) drop(name string) {
	h.mu.Lock()
	delete(h.sessions, name)
	h.mu.Unlock()
}

func (h *hostedSet) list() []SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]SessionInfo, 0, len(h.sessions))
	for _, hs := range h.sessions {
		out = append(out, hs.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// hostedSession is one shell on a PTY with at most one attached socket.
type hostedSession struct {
	name    string
	started time.Time
	cmd     *exec.Cmd
	ptmx    *os.File
	done    chan struct{}

	mu   sync.Mutex
	cols int
	rows int
	conn *websocket.Conn
}

// startHosted launches the platform shell on a PTY at the given size and
// begins pumping its output. onExit runs once the shell terminates.
func startHosted(name string, cols, rows int, onExit func()) (*hostedSession, error) {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	sh, args := localterm.DefaultShell()
	cmd := exec.Command(sh, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, fmt.Errorf("start shell: %w", err)
	}
	hs := &hostedSession{
		name:    name,
		started: time.Now(),
		cmd:     cmd,
		ptmx:    ptmx,
		done:    make(chan struct{}),
		cols:    cols,
		rows:    rows,
	}
	go hs.pump(onExit)
	system.Logger.Info("session started", "name", name, "shell", sh, "size", fmt.Sprintf("%dx%d", cols, rows))
	return hs, nil
}

// pump forwards PTY output to the attached socket until the shell exits.
// Output produced while no socket is attached is dropped; the remote pane
// owns scrollback, not the server.
func (hs *hostedSession) pump(onExit func()) {
	buf := make([]byte, 4096)
	for {
		n, err := hs.ptmx.Read(buf)
		if n > 0 {
			hs.send(session.StdoutMessage(string(buf[:n])))
		}
		if err != nil {
			break
		}
	}
	_ = hs.cmd.Wait()
	_ = hs.ptmx.Close()
	close(hs.done)
	hs.send(session.Message{Type: session.Disconnect})
	onExit()
	system.Logger.Info("session finished", "name", hs.name)
}

func (hs *hostedSession) exited() bool {
	select {
	case <-hs.done:
		return true
	default:
		return false
	}
}

func (hs *hostedSession) info() SessionInfo {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return SessionInfo{
		Name:    hs.name,
		Cols:    hs.cols,
		Rows:    hs.rows,
		Started: hs.started,
		Live:    !hs.exited(),
	}
}

// send writes msg to the attached socket, if any.
func (hs *hostedSession) send(msg session.Message) {
	hs.mu.Lock()
	conn := hs.conn
	hs.mu.Unlock()
	if conn == nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		hs.detach(conn)
	}
}

// attach makes conn the session's socket, displacing any previous one.
func (hs *hostedSession) attach(conn *websocket.Conn) {
	hs.mu.Lock()
	old := hs.conn
	hs.conn = conn
	hs.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
}

// detach clears conn if it is still the attached socket.
func (hs *hostedSession) detach(conn *websocket.Conn) {
	hs.mu.Lock()
	if hs.conn == conn {
		hs.conn = nil
	}
	hs.mu.Unlock()
	_ = conn.Close()
}

// handle dispatches one message from the socket to the PTY.
func (hs *hostedSession) handle(msg session.Message) {
	switch msg.Type {
	case session.Stdin:
		if text, ok := msg.Text(); ok && text != "" {
			_, _ = hs.ptmx.Write([]byte(text))
		}
	case session.SetSize:
		size, ok := session.SizeFromContent(msg.Content)
		if !ok {
			return
		}
		hs.mu.Lock()
		hs.cols, hs.rows = size.Cols, size.Rows
		hs.mu.Unlock()
		_ = pty.Setsize(hs.ptmx, &pty.Winsize{Cols: uint16(size.Cols), Rows: uint16(size.Rows)})
	}
}
