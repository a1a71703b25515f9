package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"termctl/internal/session"
	"termctl/internal/system"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// terminalWSHandler attaches a WebSocket to a hosted session. The session is
// looked up by the name query parameter and started if missing; cols and rows
// seed the initial PTY size. Reconnecting with the same name reattaches to
// the running shell.
func (s *Server) terminalWSHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	cols := queryInt(r, "cols", 80)
	rows := queryInt(r, "rows", 24)

	hs, err := s.hosted.acquire(name, cols, rows)
	if err != nil {
		system.Logger.Error("session start failed", "name", name, "err", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		system.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	hs.attach(conn)
	system.Logger.Info("pane attached", "name", hs.name, "remote", r.RemoteAddr)

	for {
		var msg session.Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		hs.handle(msg)
	}
	hs.detach(conn)
	system.Logger.Info("pane detached", "name", hs.name)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
