// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/guide.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/pokestory-guide/internal/model"
)

// --------------------------------------------------------------------------
// Table names, matching the hosted schema
// --------------------------------------------------------------------------

const (
	RegionsTable           = "regions"
	TrainersTable          = "trainers"
	TrainerTeamsTable      = "trainer_teams"
	PartyMembersTable      = "party_members"
	CounterStrategiesTable = "counter_strategies"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Preview mode serves the embedded catalog instead of the database.
	PreviewMode bool

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Channel the catalog listener subscribes to for cache invalidation.
	CatalogNotifyChannel string

	// Images
	ImageProbeTimeout time.Duration
	// Hosts the image prober may request; empty allows any public host.
	ImageAllowedHosts []string

	// Browsing
	DefaultRegion model.RegionID
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("SUPABASE_DB_URL", envOr("DATABASE_URL", ""))
	preview := envBool("PREVIEW_MODE", false)
	if dbURL == "" && !preview {
		return nil, fmt.Errorf("SUPABASE_DB_URL or DATABASE_URL must be set (or PREVIEW_MODE=true)")
	}

	region, err := model.ParseRegionID(envOr("DEFAULT_REGION", string(model.Kanto)))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_REGION: %w", err)
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 8),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		PreviewMode: preview,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		CatalogNotifyChannel: envOr("CATALOG_NOTIFY_CHANNEL", "catalog_changed"),

		ImageProbeTimeout: time.Duration(envInt("IMAGE_PROBE_TIMEOUT_SECONDS", 5)) * time.Second,
		ImageAllowedHosts: envList("IMAGE_ALLOWED_HOSTS", nil),

		DefaultRegion: region,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
