package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/model"
)

// Instrumented wraps a Store, timing every query and logging failures.
type Instrumented struct {
	next    Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewInstrumented decorates next. m may be nil.
func NewInstrumented(next Store, m *metrics.Metrics, logger *slog.Logger) *Instrumented {
	if logger == nil {
		logger = slog.Default()
	}
	return &Instrumented{next: next, metrics: m, logger: logger}
}

func observe[T any](s *Instrumented, op string, attrs []any, fn func() ([]T, error)) ([]T, error) {
	start := time.Now()
	out, err := fn()
	elapsed := time.Since(start)
	s.metrics.RecordQuery(op, len(out), elapsed, err)
	if err != nil {
		s.logger.Warn("Catalog query failed", append([]any{"operation", op, "error", err}, attrs...)...)
		return nil, err
	}
	s.logger.Debug("Catalog query", append([]any{"operation", op, "rows", len(out), "duration", elapsed}, attrs...)...)
	return out, nil
}

// Regions times and logs the wrapped query. The other methods do the same.
func (s *Instrumented) Regions(ctx context.Context) ([]model.Region, error) {
	return observe(s, OpRegions, nil, func() ([]model.Region, error) {
		return s.next.Regions(ctx)
	})
}

func (s *Instrumented) TrainersByRegion(ctx context.Context, region model.RegionID) ([]model.Trainer, error) {
	return observe(s, OpTrainersByRegion, []any{"region", region}, func() ([]model.Trainer, error) {
		return s.next.TrainersByRegion(ctx, region)
	})
}

func (s *Instrumented) TrainersByRole(ctx context.Context, region model.RegionID, role model.Role) ([]model.Trainer, error) {
	return observe(s, OpTrainersByRole, []any{"region", region, "role", role}, func() ([]model.Trainer, error) {
		return s.next.TrainersByRole(ctx, region, role)
	})
}

func (s *Instrumented) TeamsByTrainer(ctx context.Context, trainerID string) ([]model.TrainerTeam, error) {
	return observe(s, OpTeamsByTrainer, []any{"trainer_id", trainerID}, func() ([]model.TrainerTeam, error) {
		return s.next.TeamsByTrainer(ctx, trainerID)
	})
}

func (s *Instrumented) PartyByTeam(ctx context.Context, teamID string) ([]model.PartyMember, error) {
	return observe(s, OpPartyByTeam, []any{"team_id", teamID}, func() ([]model.PartyMember, error) {
		return s.next.PartyByTeam(ctx, teamID)
	})
}

func (s *Instrumented) CountersByTeam(ctx context.Context, teamID string) ([]model.CounterStrategy, error) {
	return observe(s, OpCountersByTeam, []any{"team_id", teamID}, func() ([]model.CounterStrategy, error) {
		return s.next.CountersByTeam(ctx, teamID)
	})
}
