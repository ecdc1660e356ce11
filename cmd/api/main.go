// Command api is the PokeStory Guide API server.
//
// Usage:
//
//	pokestory-api
//	PREVIEW_MODE=true API_PORT=8080 pokestory-api

// @title PokeStory Guide API
// @version 1.0.0
// @description Read-only walkthrough catalog: regions, trainers, teams, party members and counter strategies.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name PokeStory
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/albapepper/pokestory-guide/internal/api"
	"github.com/albapepper/pokestory-guide/internal/api/handler"
	"github.com/albapepper/pokestory-guide/internal/cache"
	"github.com/albapepper/pokestory-guide/internal/config"
	"github.com/albapepper/pokestory-guide/internal/imgsrc"
	"github.com/albapepper/pokestory-guide/internal/listener"
	"github.com/albapepper/pokestory-guide/internal/maintenance"
	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/source"

	_ "github.com/albapepper/pokestory-guide/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		logger.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Catalog store (Postgres or embedded preview)
	src, err := source.Open(ctx, cfg, m, logger)
	if err != nil {
		logger.Error("Failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer src.Close()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	deps := handler.Deps{
		Store:   src.Store,
		Cache:   appCache,
		Config:  cfg,
		Prober:  imgsrc.NewProber(nil, cfg.ImageProbeTimeout, logger).WithAllowedHosts(cfg.ImageAllowedHosts),
		Metrics: m,
		Logger:  logger,
	}

	// LISTEN/NOTIFY consumer invalidates cached responses on catalog edits
	if src.Pool != nil {
		deps.DB = src.Pool
		if cfg.CacheEnabled {
			go listener.Start(ctx, cfg.DatabaseURL, cfg.CatalogNotifyChannel, appCache, logger)
		}

		// Periodic integrity audit and cache catch-up sweep
		var flusher maintenance.Flusher
		if cfg.CacheEnabled {
			flusher = appCache
		}
		go maintenance.Start(ctx, src.Store, flusher, m, maintenance.DefaultConfig(), logger)
	}

	router := api.NewRouter(deps)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting PokeStory Guide API",
			"addr", addr,
			"environment", cfg.Environment,
			"preview", cfg.PreviewMode,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
