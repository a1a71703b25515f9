// Package localterm runs a shell on a local pseudo-terminal and exposes it
// through the session message contract, so a terminal pane binds to a local
// shell exactly the way it binds to a remote one.
package localterm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/charmbracelet/x/xpty"

	"termctl/internal/session"
	"termctl/internal/system"
)

const readBufSize = 4096

// Session is a PTY-backed session.Session. The readiness signal resolves
// once the shell has started; process exit publishes a disconnect message
// and Reconnect starts a fresh shell.
type Session struct {
	name  string
	ready chan struct{}

	mu       sync.Mutex
	pty      xpty.Pty
	cmd      *exec.Cmd
	cols     int
	rows     int
	disposed bool

	stream session.Stream
}

// New starts a shell asynchronously and returns the session immediately;
// wait on Ready before sending.
func New(name string) *Session {
	s := &Session{name: name, ready: make(chan struct{}), cols: 80, rows: 24}
	go func() {
		if err := s.start(); err != nil {
			system.Logger.Error("local session start failed", "name", name, "err", err)
			s.mu.Lock()
			s.disposed = true
			s.mu.Unlock()
		}
		close(s.ready)
	}()
	return s
}

func (s *Session) start() error {
	s.mu.Lock()
	cols, rows := s.cols, s.rows
	s.mu.Unlock()

	p, err := xpty.NewPty(cols, rows)
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}
	sh, args := DefaultShell()
	cmd := exec.Command(sh, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	if err := p.Start(cmd); err != nil {
		_ = p.Close()
		return fmt.Errorf("start shell: %w", err)
	}

	s.mu.Lock()
	s.pty = p
	s.cmd = cmd
	s.disposed = false
	s.mu.Unlock()

	go s.pump(p, cmd)
	return nil
}

// pump reads PTY output and fans it out as stdout messages until the shell
// exits, then publishes a disconnect.
func (s *Session) pump(p xpty.Pty, cmd *exec.Cmd) {
	buf := make([]byte, readBufSize)
	for {
		n, err := p.Read(buf)
		if n > 0 {
			s.stream.Publish(s, session.StdoutMessage(string(buf[:n])))
		}
		if err != nil {
			break
		}
	}
	_ = cmd.Wait()
	_ = p.Close()

	s.mu.Lock()
	if s.pty == p {
		s.disposed = true
	}
	stale := s.pty != p
	s.mu.Unlock()
	if !stale {
		s.stream.Publish(s, session.Message{Type: session.Disconnect})
	}
}

// Name returns the session identifier.
func (s *Session) Name() string { return s.name }

// Ready is closed once the shell started (or failed to; check IsDisposed).
func (s *Session) Ready() <-chan struct{} { return s.ready }

// IsDisposed reports whether the shell is gone.
func (s *Session) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Reconnect restarts the shell. The previous PTY, if any, is closed.
func (s *Session) Reconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	old := s.pty
	s.pty = nil
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return s.start()
}

// Send handles stdin and set_size messages; other types are ignored.
func (s *Session) Send(msg session.Message) error {
	s.mu.Lock()
	p := s.pty
	disposed := s.disposed
	s.mu.Unlock()
	if disposed || p == nil {
		return fmt.Errorf("localterm: session %q not running", s.name)
	}

	switch msg.Type {
	case session.Stdin:
		text, ok := msg.Text()
		if !ok {
			return nil
		}
		_, err := p.Write([]byte(text))
		return err
	case session.SetSize:
		size, ok := session.SizeFromContent(msg.Content)
		if !ok {
			return nil
		}
		s.mu.Lock()
		s.cols, s.rows = size.Cols, size.Rows
		s.mu.Unlock()
		return p.Resize(size.Cols, size.Rows)
	}
	return nil
}

// Subscribe registers a message handler.
func (s *Session) Subscribe(h session.Handler) func() {
	return s.stream.Subscribe(h)
}

// Close tears the session down for good: the shell is killed and the PTY
// closed. Used on application exit, not by the pane.
func (s *Session) Close() error {
	s.mu.Lock()
	p := s.pty
	cmd := s.cmd
	s.pty = nil
	s.disposed = true
	s.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if p != nil {
		return p.Close()
	}
	return nil
}

// DefaultShell picks the platform shell: %COMSPEC% on Windows, $SHELL as a
// login shell elsewhere, falling back to bash then sh.
func DefaultShell() (string, []string) {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec, nil
		}
		return "powershell.exe", nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l"}
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash", []string{"-l"}
	}
	return "/bin/sh", []string{"-l"}
}

var _ session.Session = (*Session)(nil)
