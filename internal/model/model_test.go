package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func validCatalog() Catalog {
	return Catalog{
		Regions: []Region{{ID: Kanto, Name: "Kanto"}},
		Trainers: []Trainer{
			{ID: "brock", RegionID: Kanto, Role: RoleGym, BadgeNumber: intPtr(1)},
			{ID: "blue", RegionID: Kanto, Role: RoleRival},
		},
		Teams: []TrainerTeam{{ID: "brock:1", TrainerID: "brock"}},
		Party: []PartyMember{
			{TeamID: "brock:1", Name: "Onix", Level: 14, SendOutOrder: 1},
			{TeamID: "brock:1", Name: "Geodude", Level: 12, SendOutOrder: 0},
		},
		Counters: []CounterStrategy{{TeamID: "brock:1", Name: "Squirtle", Tier: TierS, TargetLevel: 12}},
	}
}

func TestCatalogValidate(t *testing.T) {
	c := validCatalog()
	require.NoError(t, c.Validate())
}

func TestCatalogValidateViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
		want   string
	}{
		{"unknown region", func(c *Catalog) { c.Trainers[1].RegionID = Johto }, "unknown region"},
		{"gym without badge", func(c *Catalog) { c.Trainers[0].BadgeNumber = nil }, "without badge number"},
		{"badge on rival", func(c *Catalog) { c.Trainers[1].BadgeNumber = intPtr(2) }, "badge number on rival"},
		{"duplicate badge", func(c *Catalog) {
			c.Trainers = append(c.Trainers, Trainer{ID: "misty", RegionID: Kanto, Role: RoleGym, BadgeNumber: intPtr(1)})
		}, "already used"},
		{"orphan team", func(c *Catalog) { c.Teams[0].TrainerID = "lance" }, "unknown trainer"},
		{"gap in send-out order", func(c *Catalog) { c.Party[0].SendOutOrder = 2 }, "contiguous"},
		{"orphan counter", func(c *Catalog) { c.Counters[0].TeamID = "x" }, "unknown team"},
		{"bad tier", func(c *Catalog) { c.Counters[0].Tier = "C" }, "unknown tier"},
		{"zero level", func(c *Catalog) { c.Party[1].Level = 0 }, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCatalog()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTierRank(t *testing.T) {
	assert.Less(t, TierS.Rank(), TierA.Rank())
	assert.Less(t, TierA.Rank(), TierB.Rank())
	assert.Less(t, TierB.Rank(), Tier("?").Rank())
}

func TestParseRegionAndRole(t *testing.T) {
	id, err := ParseRegionID("paldea")
	require.NoError(t, err)
	assert.Equal(t, Paldea, id)

	_, err = ParseRegionID("orre")
	assert.Error(t, err)

	r, err := ParseRole("elite4")
	require.NoError(t, err)
	assert.Equal(t, "Elite Four", r.Title())

	_, err = ParseRole("boss")
	assert.Error(t, err)
}
