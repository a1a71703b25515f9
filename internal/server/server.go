// Package server hosts terminal sessions: shells on PTYs, exposed to panes
// over a WebSocket speaking the typed session message protocol, plus a
// small JSON API for health and session listing.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"termctl/internal/system"
	"termctl/internal/version"
)

// Server is a termctl session host bound to Addr.
type Server struct {
	Addr   string
	hosted *hostedSet
}

// New returns a server with an empty session set.
func New(addr string) *Server {
	return &Server{Addr: addr, hosted: newHostedSet()}
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("session server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": version.AppVersion})
	})
	api.GET("/sessions", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.hosted.list())
	})

	r.GET("/ws/terminal", gin.WrapF(s.terminalWSHandler))
	return r
}
