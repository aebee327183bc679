// Package main is the entry point for the HuntCast API server.
//
// It loads configuration, builds the scoring engine with the embedded species
// catalog (or a database-backed one when DATABASE_URL is set), wires the
// weather provider behind a TTL cache, mounts the HTTP routes, and serves
// with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/api/handlers"
	"huntcast/internal/config"
	"huntcast/internal/core"
	"huntcast/internal/db"
	"huntcast/internal/engine"
	"huntcast/internal/observability"
	"huntcast/internal/outlook"
	"huntcast/internal/profile"
	"huntcast/internal/types"
	"huntcast/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so main() can cleanly exit on error.
func run() error {
	cfg, params, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("huntcast API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
	)

	metrics := observability.New(cfg.Observability.MetricNamespace)

	catalog := profile.Builtin()

	// Optional Postgres-backed catalog override. The embedded catalog is the
	// fallback when the table is empty.
	var probes []core.HealthProbe
	if cfg.Database.URL.Unmask() != "" {
		pool, err := db.NewPool(context.Background(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		repo := db.NewSpeciesRepository(pool)
		stored, err := repo.List(context.Background())
		if err != nil {
			return fmt.Errorf("loading species profiles: %w", err)
		}
		if len(stored) > 0 {
			catalog, err = profile.NewCatalog(stored, profile.BuiltinLocations(), profile.BuiltinStrongholds())
			if err != nil {
				return fmt.Errorf("building species catalog: %w", err)
			}
			logger.Info("species catalog loaded from database", "count", len(stored))
		}

		probes = append(probes, core.ProbeFunc{
			ProbeName: "database",
			Fn:        pool.Ping,
		})
	}

	eng, err := engine.New(params, catalog)
	if err != nil {
		return fmt.Errorf("building scoring engine: %w", err)
	}

	weatherClient := weather.NewClient(cfg.Weather,
		weather.WithFetchObserver(func(outcome string, d time.Duration) {
			metrics.WeatherFetches.WithLabelValues(outcome).Inc()
			metrics.WeatherFetchTime.Observe(d.Seconds())
		}),
	)
	source := weather.NewCachedSource(weatherClient, cfg.Weather.CacheTTL,
		weather.WithCacheCounters(
			metrics.WeatherCacheHits.Inc,
			metrics.WeatherCacheMiss.Inc,
		),
	)

	srv, err := core.NewServer(cfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.HealthProbes = probes

	conditionsHandler := handlers.NewConditionsHandler(
		eng, source, cfg.Weather.Latitude, cfg.Weather.Longitude, logger,
		func(species string, confidence types.ConfidenceLabel) {
			metrics.Evaluations.WithLabelValues(species, string(confidence)).Inc()
		},
	)
	speciesHandler := handlers.NewSpeciesHandler(eng.Catalog())

	outlookService := outlook.NewService(eng, source, cfg.Weather.Latitude, cfg.Weather.Longitude,
		outlook.WithCellCounter(metrics.OutlookDaysScored.Inc),
	)
	outlookHandler := handlers.NewOutlookHandler(outlookService, "Colebrook")

	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		func(r chi.Router) { conditionsHandler.RegisterRoutes(r) },
		func(r chi.Router) { speciesHandler.RegisterRoutes(r) },
		func(r chi.Router) { outlookHandler.RegisterRoutes(r) },
	)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
