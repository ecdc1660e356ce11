// Package handler provides HTTP handlers for all API endpoints.
// Handlers read through store.Store and cache the encoded JSON with an
// ETag; there is no service layer beyond the guide loader.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/pokestory-guide/internal/api/respond"
	"github.com/albapepper/pokestory-guide/internal/cache"
	"github.com/albapepper/pokestory-guide/internal/config"
	"github.com/albapepper/pokestory-guide/internal/guide"
	"github.com/albapepper/pokestory-guide/internal/imgsrc"
	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/store"
)

// errNotFound makes serveCached answer 404 instead of 500.
var errNotFound = errors.New("not found")

// Pinger checks database connectivity. It is nil in preview mode.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the handler's shared dependencies.
type Deps struct {
	Store   store.Store
	Cache   *cache.Cache
	Config  *config.Config
	Prober  *imgsrc.Prober
	Metrics *metrics.Metrics
	DB      Pinger
	Logger  *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store   store.Store
	loader  *guide.Loader
	cache   *cache.Cache
	cfg     *config.Config
	prober  *imgsrc.Prober
	metrics *metrics.Metrics
	db      Pinger
	logger  *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prober := d.Prober
	if prober == nil {
		var timeout time.Duration
		var hosts []string
		if d.Config != nil {
			timeout, hosts = d.Config.ImageProbeTimeout, d.Config.ImageAllowedHosts
		}
		prober = imgsrc.NewProber(nil, timeout, logger).WithAllowedHosts(hosts)
	}
	return &Handler{
		store:   d.Store,
		loader:  guide.NewLoader(d.Store, logger),
		cache:   d.Cache,
		cfg:     d.Config,
		prober:  prober,
		metrics: d.Metrics,
		db:      d.DB,
		logger:  logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and data source.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	source := "postgres"
	if h.db == nil {
		source = "preview"
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "PokeStory Guide API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"source":  source,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports "preview" when serving the embedded catalog.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "preview",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, flushes).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers from the cache when possible, otherwise runs load,
// encodes the value and caches it under key.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, what string, load func(ctx context.Context) (any, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := load(r.Context())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		h.logger.Debug("Request ended before load finished", "what", what, "key", key, "error", err)
		respond.WriteError(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "Request ended before "+what+" was loaded")
		return
	}
	if errors.Is(err, errNotFound) {
		respond.WriteErrorDetail(w, http.StatusNotFound, respond.CodeNotFound, "No "+what+" found", err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Catalog read failed", "what", what, "key", key, "error", err)
		respond.WriteStoreError(w, what, err)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to encode "+what)
		return
	}
	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
