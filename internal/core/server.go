// Package core provides the API chassis for the HuntCast service. It builds
// a chi router and enforces cross-cutting concerns (panic recovery, request
// correlation, logging, metrics) before requests reach domain handlers.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/config"
	"huntcast/internal/observability"
)

// Server encapsulates the HTTP-facing dependencies of the service, allowing
// for easy injection during testing.
type Server struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// HealthProbes are checked by GET /healthz. Registered by main for the
	// dependencies that are actually configured (database, weather upstream).
	HealthProbes []HealthProbe

	// V1RouteRegistrars are populated by the application entry point. This
	// indirection avoids import cycles between core and handler packages.
	V1RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer initializes the router and prepares the server for route
// mounting. The caller mounts routes via MountRoutes after registering
// handlers.
func NewServer(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		router:  chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration and tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown performs a graceful termination of server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("server shutdown initiated")
	s.Logger.Info("server shutdown complete")
	return nil
}
