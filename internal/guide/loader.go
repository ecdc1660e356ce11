package guide

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/store"
)

// Loader runs fetches against a store. It never retries; a failure is
// logged and returned in Result.Err so the section renders empty.
type Loader struct {
	store  store.Store
	logger *slog.Logger
}

// NewLoader creates a loader over s.
func NewLoader(s store.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: s, logger: logger}
}

// Run executes f and packages the outcome.
func (l *Loader) Run(ctx context.Context, f Fetch) Result {
	res := Result{Fetch: f}
	switch f.Kind {
	case FetchRegions:
		res.Regions, res.Err = l.store.Regions(ctx)
	case FetchTrainers:
		res.Trainers, res.Err = l.store.TrainersByRegion(ctx, f.Key.Region)
	case FetchTeams:
		res.Teams, res.Err = l.store.TeamsByTrainer(ctx, f.Key.TrainerID)
	case FetchTeamDetail:
		res.Party, res.Counters, res.Err = l.teamDetail(ctx, f.Key.TeamID)
	default:
		res.Err = fmt.Errorf("unknown fetch kind %v", f.Kind)
	}

	if res.Err != nil {
		l.logger.Error("Error loading section",
			"kind", f.Kind.String(),
			"region", f.Key.Region,
			"trainer_id", f.Key.TrainerID,
			"team_id", f.Key.TeamID,
			"error", res.Err)
	}
	return res
}

// teamDetail loads party and counters concurrently and returns only when
// both have completed.
func (l *Loader) teamDetail(ctx context.Context, teamID string) (party []model.PartyMember, counters []model.CounterStrategy, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		party, err = l.store.PartyByTeam(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		counters, err = l.store.CountersByTeam(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("team %q: %w", teamID, err)
	}
	return party, counters, nil
}
