package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/pokestory-guide/internal/db"
	"github.com/albapepper/pokestory-guide/internal/model"
)

// Querier is the subset of pgxpool.Pool the Postgres store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres reads the catalog through the prepared statements registered by
// the db package.
type Postgres struct {
	q Querier
}

// NewPostgres creates a store over q (normally a *pgxpool.Pool).
func NewPostgres(q Querier) *Postgres {
	return &Postgres{q: q}
}

// Regions returns every region ordered by order_index.
func (p *Postgres) Regions(ctx context.Context) ([]model.Region, error) {
	return query(ctx, p.q, OpRegions, db.StmtRegions, scanRegion)
}

// TrainersByRegion returns the region's trainers ordered by order_index.
func (p *Postgres) TrainersByRegion(ctx context.Context, region model.RegionID) ([]model.Trainer, error) {
	return query(ctx, p.q, OpTrainersByRegion, db.StmtTrainersByRegion, scanTrainer, string(region))
}

// TrainersByRole returns the region's trainers with the given role.
func (p *Postgres) TrainersByRole(ctx context.Context, region model.RegionID, role model.Role) ([]model.Trainer, error) {
	return query(ctx, p.q, OpTrainersByRole, db.StmtTrainersByRole, scanTrainer, string(region), string(role))
}

// TeamsByTrainer returns the trainer's teams ordered by order_index.
func (p *Postgres) TeamsByTrainer(ctx context.Context, trainerID string) ([]model.TrainerTeam, error) {
	return query(ctx, p.q, OpTeamsByTrainer, db.StmtTeamsByTrainer, scanTeam, trainerID)
}

// PartyByTeam returns the team's party in send-out order.
func (p *Postgres) PartyByTeam(ctx context.Context, teamID string) ([]model.PartyMember, error) {
	return query(ctx, p.q, OpPartyByTeam, db.StmtPartyByTeam, scanPartyMember, teamID)
}

// CountersByTeam returns the team's counters ordered S, A, then B.
func (p *Postgres) CountersByTeam(ctx context.Context, teamID string) ([]model.CounterStrategy, error) {
	return query(ctx, p.q, OpCountersByTeam, db.StmtCountersByTeam, scanCounter, teamID)
}

func query[T any](ctx context.Context, q Querier, op, stmt string, scan func(pgx.Row) (T, error), args ...any) ([]T, error) {
	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return out, nil
}

// classify tags connection-level failures with ErrUnavailable so callers
// can tell an unreachable store from a bad query.
func classify(err error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// --------------------------------------------------------------------------
// Row scanners (column order from db.*Columns)
// --------------------------------------------------------------------------

func scanRegion(row pgx.Row) (model.Region, error) {
	var r model.Region
	var id string
	err := row.Scan(&id, &r.Name, &r.CoverImages, &r.OrderIndex)
	r.ID = model.RegionID(id)
	return r, err
}

func scanTrainer(row pgx.Row) (model.Trainer, error) {
	var t model.Trainer
	var region, role, format string
	err := row.Scan(
		&t.ID, &region, &t.DisplayName, &role, &t.Game, &t.BadgeNumber,
		&t.SpriteURLs, &t.ArtURLs, &t.BadgeIconURLs, &t.Location,
		&t.Prerequisites, &format, &t.OrderIndex,
	)
	t.RegionID = model.RegionID(region)
	t.Role = model.Role(role)
	t.BattleFormat = model.BattleFormat(format)
	return t, err
}

func scanTeam(row pgx.Row) (model.TrainerTeam, error) {
	var t model.TrainerTeam
	err := row.Scan(&t.ID, &t.TrainerID, &t.Label, &t.OrderIndex, &t.VersionTags)
	return t, err
}

func scanPartyMember(row pgx.Row) (model.PartyMember, error) {
	var p model.PartyMember
	err := row.Scan(
		&p.ID, &p.TeamID, &p.SpeciesID, &p.Name, &p.Level, &p.Types, &p.Moves,
		&p.OfficialArtURL, &p.PixelSpriteURL, &p.SendOutOrder,
	)
	return p, err
}

func scanCounter(row pgx.Row) (model.CounterStrategy, error) {
	var c model.CounterStrategy
	var tier string
	err := row.Scan(
		&c.ID, &c.TeamID, &tier, &c.SpeciesID, &c.Name, &c.Rationale,
		&c.RecommendedMoves, &c.TargetLevel, &c.OfficialArtURL, &c.PixelSpriteURL,
		&c.ObtainableRoute, &c.ObtainableMethod,
	)
	c.Tier = model.Tier(tier)
	return c, err
}
