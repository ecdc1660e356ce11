// Package source opens the catalog store a command reads from: the
// Postgres pool, or the embedded preview catalog when preview mode is on.
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/pokestory-guide/internal/config"
	"github.com/albapepper/pokestory-guide/internal/db"
	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/preview"
	"github.com/albapepper/pokestory-guide/internal/store"
)

// Source is an opened catalog store.
type Source struct {
	Store store.Store
	// Pool is nil in preview mode.
	Pool *db.Pool
}

// Open connects according to cfg. Reads are wrapped with metrics and
// logging; m may be nil.
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*Source, error) {
	if cfg.PreviewMode {
		mem, err := preview.Store()
		if err != nil {
			return nil, fmt.Errorf("load preview catalog: %w", err)
		}
		logger.Info("Serving embedded preview catalog")
		return &Source{Store: store.NewInstrumented(mem, m, logger)}, nil
	}

	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)
	return &Source{
		Store: store.NewInstrumented(store.NewPostgres(pool), m, logger),
		Pool:  pool,
	}, nil
}

// Close releases the pool, if any.
func (s *Source) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
