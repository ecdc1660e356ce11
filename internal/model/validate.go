package model

import (
	"errors"
	"fmt"
	"sort"
)

// Catalog is a complete, denormalised snapshot of every entity. It is the
// unit that in-memory stores load and validate.
type Catalog struct {
	Regions  []Region          `json:"regions" yaml:"regions"`
	Trainers []Trainer         `json:"trainers" yaml:"trainers"`
	Teams    []TrainerTeam     `json:"teams" yaml:"teams"`
	Party    []PartyMember     `json:"party" yaml:"party"`
	Counters []CounterStrategy `json:"counters" yaml:"counters"`
}

// Validate checks referential integrity, badge numbering and send-out order.
// All violations are reported together.
func (c *Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	regions := make(map[RegionID]bool, len(c.Regions))
	for _, r := range c.Regions {
		if _, err := ParseRegionID(string(r.ID)); err != nil {
			add("region: %w", err)
		}
		if regions[r.ID] {
			add("region %q: duplicate id", r.ID)
		}
		regions[r.ID] = true
	}

	trainers := make(map[string]bool, len(c.Trainers))
	badges := make(map[RegionID]map[int]string)
	for _, t := range c.Trainers {
		if trainers[t.ID] {
			add("trainer %q: duplicate id", t.ID)
		}
		trainers[t.ID] = true
		if !regions[t.RegionID] {
			add("trainer %q: unknown region %q", t.ID, t.RegionID)
		}
		if _, err := ParseRole(string(t.Role)); err != nil {
			add("trainer %q: %w", t.ID, err)
		}
		switch {
		case t.Role == RoleGym && t.BadgeNumber == nil:
			add("trainer %q: gym leader without badge number", t.ID)
		case t.Role != RoleGym && t.BadgeNumber != nil:
			add("trainer %q: badge number on %s trainer", t.ID, t.Role)
		case t.BadgeNumber != nil:
			if badges[t.RegionID] == nil {
				badges[t.RegionID] = make(map[int]string)
			}
			if other, dup := badges[t.RegionID][*t.BadgeNumber]; dup {
				add("trainer %q: badge %d already used by %q", t.ID, *t.BadgeNumber, other)
			}
			badges[t.RegionID][*t.BadgeNumber] = t.ID
		}
	}

	teams := make(map[string]bool, len(c.Teams))
	for _, tm := range c.Teams {
		if teams[tm.ID] {
			add("team %q: duplicate id", tm.ID)
		}
		teams[tm.ID] = true
		if !trainers[tm.TrainerID] {
			add("team %q: unknown trainer %q", tm.ID, tm.TrainerID)
		}
	}

	orders := make(map[string][]int)
	for _, p := range c.Party {
		if !teams[p.TeamID] {
			add("party member %q: unknown team %q", p.Name, p.TeamID)
		}
		if p.Level < 1 {
			add("party member %q: level %d must be positive", p.Name, p.Level)
		}
		orders[p.TeamID] = append(orders[p.TeamID], p.SendOutOrder)
	}
	for teamID, o := range orders {
		if err := ValidateSendOutOrder(o); err != nil {
			add("team %q: %w", teamID, err)
		}
	}

	for _, cs := range c.Counters {
		if !teams[cs.TeamID] {
			add("counter %q: unknown team %q", cs.Name, cs.TeamID)
		}
		if cs.Tier.Rank() > TierB.Rank() {
			add("counter %q: unknown tier %q", cs.Name, cs.Tier)
		}
		if cs.TargetLevel < 1 {
			add("counter %q: target level %d must be positive", cs.Name, cs.TargetLevel)
		}
	}

	return errors.Join(errs...)
}

// ValidateSendOutOrder reports whether orders form the sequence 0..n-1 in
// any arrangement.
func ValidateSendOutOrder(orders []int) error {
	sorted := append([]int(nil), orders...)
	sort.Ints(sorted)
	for i, o := range sorted {
		if o != i {
			return fmt.Errorf("send-out order must be contiguous from 0, got %v", sorted)
		}
	}
	return nil
}
