// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/pokestory-guide/internal/config"
)

// Prepared statement names used by the store.
const (
	StmtHealthCheck      = "health_check"
	StmtRegions          = "list_regions"
	StmtTrainersByRegion = "list_trainers_by_region"
	StmtTrainersByRole   = "list_trainers_by_role"
	StmtTeamsByTrainer   = "list_teams_by_trainer"
	StmtPartyByTeam      = "list_party_by_team"
	StmtCountersByTeam   = "list_counters_by_team"
)

// Column lists shared by the statements and the store's row scanners.
// Order matters: scanners read columns positionally.
const (
	RegionColumns  = "id, name, cover_images, order_index"
	TrainerColumns = "id, region_id, display_name, role, game, badge_number, sprite_urls, " +
		"art_urls, badge_icon_urls, location, prerequisites, battle_format, order_index"
	TeamColumns    = "id, trainer_id, label, order_index, version_tags"
	PartyColumns   = "id, team_id, species_id, name, level, types, moves, official_art_url, pixel_sprite_url, send_out_order"
	CounterColumns = "id, team_id, tier, species_id, name, rationale, recommended_moves, target_level, " +
		"official_art_url, pixel_sprite_url, obtainable_route, obtainable_method"
)

// Statements maps every prepared statement name to its SQL.
// Counters order by an explicit tier rank so S, A, B holds regardless of
// collation; id breaks ties for a stable order.
var Statements = map[string]string{
	StmtHealthCheck: "SELECT 1",

	StmtRegions: "SELECT " + RegionColumns + " FROM " + config.RegionsTable +
		" ORDER BY order_index, id",
	StmtTrainersByRegion: "SELECT " + TrainerColumns + " FROM " + config.TrainersTable +
		" WHERE region_id = $1 ORDER BY order_index, id",
	StmtTrainersByRole: "SELECT " + TrainerColumns + " FROM " + config.TrainersTable +
		" WHERE region_id = $1 AND role = $2 ORDER BY order_index, id",
	StmtTeamsByTrainer: "SELECT " + TeamColumns + " FROM " + config.TrainerTeamsTable +
		" WHERE trainer_id = $1 ORDER BY order_index, id",
	StmtPartyByTeam: "SELECT " + PartyColumns + " FROM " + config.PartyMembersTable +
		" WHERE team_id = $1 ORDER BY send_out_order",
	StmtCountersByTeam: "SELECT " + CounterColumns + " FROM " + config.CounterStrategiesTable +
		" WHERE team_id = $1 ORDER BY CASE tier WHEN 'S' THEN 0 WHEN 'A' THEN 1 WHEN 'B' THEN 2 ELSE 3 END, id",
}

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, StmtHealthCheck).Scan(&n)
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
