// Package remote connects a terminal pane to a session hosted by a termctl
// server, speaking the typed message protocol over a WebSocket.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"termctl/internal/session"
	"termctl/internal/system"
)

// Session is a session.Session over a WebSocket. Readiness resolves once
// the socket is up; a broken read pump publishes a disconnect message and
// leaves reconnection to the holder.
type Session struct {
	name  string
	wsURL string
	ready chan struct{}

	mu       sync.Mutex
	conn     *websocket.Conn
	disposed bool

	writeMu sync.Mutex
	stream  session.Stream
}

// URL builds the WebSocket endpoint for a named session on a server
// address such as "localhost:7681" or "http://host:7681".
func URL(addr, name string) string {
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "ws://")
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws/terminal"}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String()
}

// Dial starts connecting to wsURL and returns the session immediately; wait
// on Ready before sending.
func Dial(ctx context.Context, wsURL, name string) *Session {
	s := &Session{name: name, wsURL: wsURL, ready: make(chan struct{})}
	go func() {
		if err := s.connect(ctx); err != nil {
			system.Logger.Error("session dial failed", "name", name, "url", wsURL, "err", err)
			s.mu.Lock()
			s.disposed = true
			s.mu.Unlock()
		}
		close(s.ready)
	}()
	return s
}

func (s *Session) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.wsURL, err)
	}
	s.mu.Lock()
	s.conn = conn
	s.disposed = false
	s.mu.Unlock()
	go s.readPump(conn)
	return nil
}

// readPump decodes incoming messages and fans them out until the socket
// breaks, then publishes a disconnect.
func (s *Session) readPump(conn *websocket.Conn) {
	for {
		var msg session.Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		s.stream.Publish(s, msg)
	}
	_ = conn.Close()

	s.mu.Lock()
	stale := s.conn != conn
	if !stale {
		s.disposed = true
	}
	s.mu.Unlock()
	if !stale {
		s.stream.Publish(s, session.Message{Type: session.Disconnect})
	}
}

// Name returns the session identifier.
func (s *Session) Name() string { return s.name }

// Ready is closed once the socket is connected (or dialing failed; check
// IsDisposed).
func (s *Session) Ready() <-chan struct{} { return s.ready }

// IsDisposed reports whether the connection is gone.
func (s *Session) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Reconnect drops the current socket, if any, and dials again. The server
// reattaches the socket to the same named session.
func (s *Session) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	old := s.conn
	s.conn = nil
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return s.connect(ctx)
}

// Send serializes msg onto the socket.
func (s *Session) Send(msg session.Message) error {
	s.mu.Lock()
	conn := s.conn
	disposed := s.disposed
	s.mu.Unlock()
	if disposed || conn == nil {
		return fmt.Errorf("remote: session %q not connected", s.name)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// Subscribe registers a message handler.
func (s *Session) Subscribe(h session.Handler) func() {
	return s.stream.Subscribe(h)
}

// Close shuts the socket down for good.
func (s *Session) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.disposed = true
	s.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

var _ session.Session = (*Session)(nil)
