package server

import (
	"context"
	"net/http"
	"time"

	ginhandler "user-avatar-service/internal/adapter/gin/handler"
	"user-avatar-service/internal/adapter/gin/middleware"
	ginrouter "user-avatar-service/internal/adapter/gin/router"
	"user-avatar-service/internal/config"

	"go.uber.org/zap"
)

// Server holds the configured HTTP server.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router wired up.
func New(cfg *config.Config, l *zap.Logger, h *ginhandler.UserHandler, rateLimiter *middleware.RateLimiter) *Server {
	router := ginrouter.SetupRouter(h, rateLimiter, l)

	addr := ":" + cfg.App.HTTPPort
	l.Info("HTTP server configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	return s.HTTP.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
