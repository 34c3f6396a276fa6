package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/den-games/denbot/internal/logging"
)

// Server wraps a bound listener so the port is taken early, before the
// handler is ready to serve.
type Server struct {
	listener net.Listener
	port     string
}

func New(port string) (*Server, error) {
	addr := fmt.Sprintf(":%s", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on %s: %w", addr, err)
	}

	return &Server{
		listener: listener,
		port:     port,
	}, nil
}

// ServeHTTP serves srv on the bound listener until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, srv *http.Server) error {
	logger := logging.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()

		logger.Debugf("server.Serve: context closed")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Debugf("server.Serve: shutting down")
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	logger.Debugf("server.Serve: listening on %s", s.port)
	if err := srv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	if err := <-errCh; err != nil {
		return fmt.Errorf("failed to shutdown: %w", err)
	}

	return nil
}
