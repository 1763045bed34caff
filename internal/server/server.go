package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/podut/wp-ai-studio/internal/app"
	"github.com/podut/wp-ai-studio/internal/common"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// Server ties the HTTP listener to the application's handlers.
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
}

// New builds a server with all routes registered.
func New(application *app.App) *Server {
	s := &Server{
		app:    application,
		router: http.NewServeMux(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", application.Config.Server.Host, application.Config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Start listens for HTTP requests and blocks until the server stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	common.GetLogger().Info().Str("addr", s.server.Addr).Msg("HTTP server listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
