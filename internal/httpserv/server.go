// Package httpserv hosts an HTTP API with managed lifecycle: bind,
// signal readiness, serve until the context is cancelled, then drain
// in-flight requests.
package httpserv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// defaultShutdownTimeout bounds how long Serve waits for in-flight
// requests after the context is cancelled.
const defaultShutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the TCP listen address (e.g. ":5000"). Required.
	Addr string

	// Handler serves the routes. Required.
	Handler http.Handler

	// Logger is the structured logger. Required.
	Logger *zap.Logger

	// CertFile and KeyFile enable TLS when both are set.
	CertFile string
	KeyFile  string

	// ShutdownTimeout overrides the drain window. Zero means the
	// default of 10 seconds.
	ShutdownTimeout time.Duration
}

// Server serves HTTP on a TCP listener. Serve(ctx) blocks until the
// context is cancelled, then performs graceful shutdown.
type Server struct {
	cfg   Config
	ready chan struct{}
	bound net.Addr
}

// NewServer creates a server for the given config. Call Serve to
// start accepting connections.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		panic("httpserv: Addr is required")
	}
	if cfg.Handler == nil {
		panic("httpserv: Handler is required")
	}
	if cfg.Logger == nil {
		panic("httpserv: Logger is required")
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Server{cfg: cfg, ready: make(chan struct{})}
}

// Ready returns a channel closed once the listener is bound and the
// server is accepting connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the resolved listen address. Only valid after Ready()
// is closed; with a ":0" address this carries the OS-assigned port.
func (s *Server) Addr() net.Addr { return s.bound }

// Serve accepts connections until ctx is cancelled, then stops
// accepting and waits up to the shutdown timeout for active requests
// to complete.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	s.bound = listener.Addr()
	close(s.ready)

	tls := s.cfg.CertFile != "" && s.cfg.KeyFile != ""
	s.cfg.Logger.Info("http server listening",
		zap.String("addr", s.bound.String()), zap.Bool("tls", tls))

	server := &http.Server{Handler: s.cfg.Handler}
	errCh := make(chan error, 1)
	go func() {
		var serveErr error
		if tls {
			serveErr = server.ServeTLS(listener, s.cfg.CertFile, s.cfg.KeyFile)
		} else {
			serveErr = server.Serve(listener)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.cfg.Logger.Info("http server stopped")
	return nil
}
