// Package store provides the five read-only catalog queries the guide is
// built on, each a filtered and ordered projection of one table.
//
// An empty result is not an error. Failures are wrapped with the operation
// name and never retried here.
package store

import (
	"context"
	"errors"

	"github.com/albapepper/pokestory-guide/internal/model"
)

// Operation names, used for error wrapping, logging and metrics labels.
const (
	OpRegions          = "list_regions"
	OpTrainersByRegion = "list_trainers_by_region"
	OpTrainersByRole   = "list_trainers_by_role"
	OpTeamsByTrainer   = "list_teams_by_trainer"
	OpPartyByTeam      = "list_party_by_team"
	OpCountersByTeam   = "list_counters_by_team"
)

// ErrUnavailable marks a store that could not be reached at all.
var ErrUnavailable = errors.New("catalog store unavailable")

// Store is the read interface every front end consumes.
type Store interface {
	// Regions returns all regions by ascending order index.
	Regions(ctx context.Context) ([]model.Region, error)
	// TrainersByRegion returns the region's trainers by ascending order index.
	TrainersByRegion(ctx context.Context, region model.RegionID) ([]model.Trainer, error)
	// TrainersByRole narrows TrainersByRegion to one role.
	TrainersByRole(ctx context.Context, region model.RegionID, role model.Role) ([]model.Trainer, error)
	// TeamsByTrainer returns the trainer's teams by ascending order index.
	TeamsByTrainer(ctx context.Context, trainerID string) ([]model.TrainerTeam, error)
	// PartyByTeam returns the team's party in send-out order.
	PartyByTeam(ctx context.Context, teamID string) ([]model.PartyMember, error)
	// CountersByTeam returns the team's counters with S before A before B.
	CountersByTeam(ctx context.Context, teamID string) ([]model.CounterStrategy, error)
}
