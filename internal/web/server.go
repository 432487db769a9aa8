package web

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/talent-search/pkg/logging"
)

// Server is the HTTP listener for the recruiter front-end
type Server struct {
	logger *logging.Logger

	srv        *http.Server
	started    atomic.Bool
	onShutdown []func()
}

// NewServer binds handler to addr. onShutdown runs once the listener has stopped.
func NewServer(log *logging.Logger, addr string, handler http.Handler, onShutdown ...func()) *Server {
	return &Server{
		logger:     log,
		onShutdown: onShutdown,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	defer func() {
		for _, fn := range s.onShutdown {
			fn()
		}
	}()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
