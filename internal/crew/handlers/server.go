package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gartstein/crewstart/internal/crew/auth"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// Server wraps the HTTP server hosting the start-form API.
type Server struct {
	httpServer   *http.Server
	logger       *zap.Logger
	httpEndpoint string
}

// NewServer constructs a Server listening on the given port.
func NewServer(httpPort int, logger *zap.Logger) *Server {
	return &Server{
		httpServer:   &http.Server{},
		logger:       logger,
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterHandler mounts the API routes on a gateway mux and wraps them with
// the bearer-token middleware for mutating endpoints.
func (s *Server) RegisterHandler(h *StarterHandler, jwtSecret string) error {
	mux := runtime.NewServeMux()
	if err := h.Register(mux); err != nil {
		return err
	}

	s.httpServer.Handler = auth.HTTPMiddleware(mux, jwtSecret)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// Start runs the HTTP server until Stop is called or serving fails.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
