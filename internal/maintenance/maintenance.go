// Package maintenance runs periodic background tasks as Go tickers while the
// API serves a live database.
package maintenance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/store"
)

// snapshotConcurrency bounds the per-trainer and per-team reads of an audit.
const snapshotConcurrency = 4

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	AuditInterval   time.Duration // Catalog integrity audit
	CatchUpInterval time.Duration // Full cache flush for NOTIFY events missed while disconnected
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		AuditInterval:   time.Hour,
		CatchUpInterval: 15 * time.Minute,
	}
}

// Flusher drops cache entries by key prefix.
type Flusher interface {
	Flush(prefix string) int
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, s store.Store, c Flusher, m *metrics.Metrics, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"audit", cfg.AuditInterval,
		"catchup", cfg.CatchUpInterval)

	var wg sync.WaitGroup
	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
		wg.Wait()
	}()

	if cfg.AuditInterval > 0 {
		t := time.NewTicker(cfg.AuditInterval)
		tickers = append(tickers, t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			runLoop(ctx, t.C, func() { _, _ = Audit(ctx, s, m, logger) })
		}()
	}

	if cfg.CatchUpInterval > 0 && c != nil {
		t := time.NewTicker(cfg.CatchUpInterval)
		tickers = append(tickers, t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			runLoop(ctx, t.C, func() { catchUp(c, logger) })
		}()
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// Audit reads the whole catalog through s and validates it. It returns the
// validation error, if any; snapshot failures are returned as err.
func Audit(ctx context.Context, s store.Store, m *metrics.Metrics, logger *slog.Logger) (violations error, err error) {
	start := time.Now()
	cat, err := Snapshot(ctx, s)
	if err != nil {
		logger.Warn("Catalog audit: snapshot failed", "error", err)
		m.RecordAudit(nil, 0, err)
		return nil, err
	}

	counts := map[string]int{
		"regions":  len(cat.Regions),
		"trainers": len(cat.Trainers),
		"teams":    len(cat.Teams),
		"party":    len(cat.Party),
		"counters": len(cat.Counters),
	}

	violations = cat.Validate()
	n := countJoined(violations)
	m.RecordAudit(counts, n, nil)

	if violations != nil {
		logger.Warn("Catalog audit: integrity violations",
			"count", n, "duration", time.Since(start).Round(time.Millisecond), "error", violations)
	} else {
		logger.Info("Catalog audit: clean",
			"trainers", counts["trainers"], "teams", counts["teams"],
			"duration", time.Since(start).Round(time.Millisecond))
	}
	return violations, nil
}

// Snapshot collects every entity reachable from the region list.
func Snapshot(ctx context.Context, s store.Store) (*model.Catalog, error) {
	regions, err := s.Regions(ctx)
	if err != nil {
		return nil, err
	}
	cat := &model.Catalog{Regions: regions}

	for _, r := range regions {
		trainers, err := s.TrainersByRegion(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		cat.Trainers = append(cat.Trainers, trainers...)
	}

	teams := make([][]model.TrainerTeam, len(cat.Trainers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)
	for i, t := range cat.Trainers {
		g.Go(func() error {
			tt, err := s.TeamsByTrainer(gctx, t.ID)
			teams[i] = tt
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, tt := range teams {
		cat.Teams = append(cat.Teams, tt...)
	}

	party := make([][]model.PartyMember, len(cat.Teams))
	counters := make([][]model.CounterStrategy, len(cat.Teams))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)
	for i, tm := range cat.Teams {
		g.Go(func() error {
			p, err := s.PartyByTeam(gctx, tm.ID)
			if err != nil {
				return err
			}
			c, err := s.CountersByTeam(gctx, tm.ID)
			party[i], counters[i] = p, c
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range cat.Teams {
		cat.Party = append(cat.Party, party[i]...)
		cat.Counters = append(cat.Counters, counters[i]...)
	}
	return cat, nil
}

// catchUp flushes the whole response cache so events missed while the
// listener was reconnecting cannot leave stale entries beyond one interval.
func catchUp(c Flusher, logger *slog.Logger) {
	if n := c.Flush(""); n > 0 {
		logger.Info("Catch-up sweep: flushed cache", "entries", n)
	}
}

func countJoined(err error) int {
	if err == nil {
		return 0
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}
