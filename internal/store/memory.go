package store

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/albapepper/pokestory-guide/internal/model"
)

// Memory serves a validated, immutable catalog from process memory. Every
// query returns deep copies in the same order the Postgres store uses, so
// callers may modify results freely.
type Memory struct {
	catalog model.Catalog
}

// NewMemory validates c and returns a store over a private copy of it.
func NewMemory(c model.Catalog) (*Memory, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Memory{catalog: model.Catalog{
		Regions:  cloneAll(c.Regions, cloneRegion),
		Trainers: cloneAll(c.Trainers, cloneTrainer),
		Teams:    cloneAll(c.Teams, cloneTeam),
		Party:    cloneAll(c.Party, cloneParty),
		Counters: cloneAll(c.Counters, cloneCounter),
	}}, nil
}

// Regions returns every region in display order.

func (m *Memory) Regions(ctx context.Context) ([]model.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpRegions, err)
	}
	out := cloneAll(m.catalog.Regions, cloneRegion)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return nonNil(out), nil
}

// TrainersByRegion returns the region's trainers ordered by OrderIndex.
func (m *Memory) TrainersByRegion(ctx context.Context, region model.RegionID) ([]model.Trainer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpTrainersByRegion, err)
	}
	return m.trainers(func(t model.Trainer) bool { return t.RegionID == region }), nil
}

// TrainersByRole returns the region's trainers with the given role.
func (m *Memory) TrainersByRole(ctx context.Context, region model.RegionID, role model.Role) ([]model.Trainer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpTrainersByRole, err)
	}
	return m.trainers(func(t model.Trainer) bool { return t.RegionID == region && t.Role == role }), nil
}

func (m *Memory) trainers(keep func(model.Trainer) bool) []model.Trainer {
	var out []model.Trainer
	for _, t := range m.catalog.Trainers {
		if keep(t) {
			out = append(out, cloneTrainer(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return nonNil(out)
}

// TeamsByTrainer returns the trainer's teams ordered by OrderIndex.
func (m *Memory) TeamsByTrainer(ctx context.Context, trainerID string) ([]model.TrainerTeam, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpTeamsByTrainer, err)
	}
	var out []model.TrainerTeam
	for _, t := range m.catalog.Teams {
		if t.TrainerID == trainerID {
			out = append(out, cloneTeam(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return nonNil(out), nil
}

// PartyByTeam returns the team's party in send-out order.
func (m *Memory) PartyByTeam(ctx context.Context, teamID string) ([]model.PartyMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpPartyByTeam, err)
	}
	var out []model.PartyMember
	for _, p := range m.catalog.Party {
		if p.TeamID == teamID {
			out = append(out, cloneParty(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SendOutOrder < out[j].SendOutOrder })
	return nonNil(out), nil
}

// CountersByTeam returns the team's counters ordered by tier, S first.
func (m *Memory) CountersByTeam(ctx context.Context, teamID string) ([]model.CounterStrategy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", OpCountersByTeam, err)
	}
	var out []model.CounterStrategy
	for _, c := range m.catalog.Counters {
		if c.TeamID == teamID {
			out = append(out, cloneCounter(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tier.Rank() < out[j].Tier.Rank() })
	return nonNil(out), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func cloneAll[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

func cloneRegion(r model.Region) model.Region {
	r.CoverImages = slices.Clone(r.CoverImages)
	return r
}

func cloneTrainer(t model.Trainer) model.Trainer {
	if t.BadgeNumber != nil {
		n := *t.BadgeNumber
		t.BadgeNumber = &n
	}
	t.SpriteURLs = slices.Clone(t.SpriteURLs)
	t.ArtURLs = slices.Clone(t.ArtURLs)
	t.BadgeIconURLs = slices.Clone(t.BadgeIconURLs)
	t.Prerequisites = slices.Clone(t.Prerequisites)
	return t
}

func cloneTeam(t model.TrainerTeam) model.TrainerTeam {
	t.VersionTags = slices.Clone(t.VersionTags)
	return t
}

func cloneParty(p model.PartyMember) model.PartyMember {
	p.Types = slices.Clone(p.Types)
	p.Moves = slices.Clone(p.Moves)
	return p
}

func cloneCounter(c model.CounterStrategy) model.CounterStrategy {
	c.RecommendedMoves = slices.Clone(c.RecommendedMoves)
	return c
}
