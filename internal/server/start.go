package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Start runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts down gracefully.
func (s *Server) Start(addr string) {
	go func() {
		slog.Info("Starting server", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	waitForShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
	slog.Info("Server stopped")
}
