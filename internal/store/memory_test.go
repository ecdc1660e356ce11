package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/preview"
	"github.com/albapepper/pokestory-guide/internal/store"
)

func previewStore(t *testing.T) *store.Memory {
	t.Helper()
	s, err := preview.Store()
	require.NoError(t, err)
	return s
}

func TestMemoryRegionsOrdered(t *testing.T) {
	s := previewStore(t)
	regions, err := s.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, len(model.RegionIDs))
	for i := 1; i < len(regions); i++ {
		assert.LessOrEqual(t, regions[i-1].OrderIndex, regions[i].OrderIndex)
	}
	assert.Equal(t, model.Kanto, regions[0].ID)
}

func TestMemoryTrainersBelongToRegion(t *testing.T) {
	s := previewStore(t)
	ctx := context.Background()
	for _, region := range model.RegionIDs {
		trainers, err := s.TrainersByRegion(ctx, region)
		require.NoError(t, err)
		assert.NotNil(t, trainers)
		for _, tr := range trainers {
			assert.Equal(t, region, tr.RegionID)
		}
	}

	johto, err := s.TrainersByRegion(ctx, model.Johto)
	require.NoError(t, err)
	assert.Empty(t, johto)
}

func TestMemoryTrainersByRole(t *testing.T) {
	s := previewStore(t)
	gyms, err := s.TrainersByRole(context.Background(), model.Kanto, model.RoleGym)
	require.NoError(t, err)
	require.Len(t, gyms, 2)
	assert.Equal(t, "Brock", gyms[0].DisplayName)
	assert.Equal(t, "Misty", gyms[1].DisplayName)
}

func TestMemoryPartyInSendOutOrder(t *testing.T) {
	s := previewStore(t)
	ctx := context.Background()
	trainers, err := s.TrainersByRegion(ctx, model.Kanto)
	require.NoError(t, err)

	for _, tr := range trainers {
		teams, err := s.TeamsByTrainer(ctx, tr.ID)
		require.NoError(t, err)
		for _, team := range teams {
			party, err := s.PartyByTeam(ctx, team.ID)
			require.NoError(t, err)
			for i, p := range party {
				assert.Equal(t, i, p.SendOutOrder, "team %s", team.ID)
			}
		}
	}
}

func TestMemoryCountersGroupedByTier(t *testing.T) {
	s := previewStore(t)
	counters, err := s.CountersByTeam(context.Background(), "kanto-brock-rb:rb-first")
	require.NoError(t, err)
	require.Len(t, counters, 3)

	names := make([]string, len(counters))
	for i, c := range counters {
		names[i] = c.Name
		if i > 0 {
			assert.LessOrEqual(t, counters[i-1].Tier.Rank(), c.Tier.Rank())
		}
	}
	assert.Equal(t, []string{"Squirtle", "Clefairy", "Bulbasaur"}, names)
}

func TestMemoryUnknownKeysAreEmptyNotErrors(t *testing.T) {
	s := previewStore(t)
	ctx := context.Background()

	teams, err := s.TeamsByTrainer(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, teams)

	party, err := s.PartyByTeam(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, party)
}

func TestMemoryCancelledContext(t *testing.T) {
	s := previewStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Regions(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), store.OpRegions)
}

func TestNewMemoryRejectsInvalidCatalog(t *testing.T) {
	_, err := store.NewMemory(model.Catalog{
		Trainers: []model.Trainer{{ID: "x", RegionID: model.Kanto, Role: model.RoleRival}},
	})
	assert.Error(t, err)
}

func TestMemoryResultsAreDetached(t *testing.T) {
	ctx := context.Background()
	s := previewStore(t)

	trainers, err := s.TrainersByRole(ctx, model.Kanto, model.RoleGym)
	require.NoError(t, err)
	require.NotEmpty(t, trainers[0].SpriteURLs)
	require.NotNil(t, trainers[0].BadgeNumber)
	sprite, prereq := trainers[0].SpriteURLs[0], trainers[0].Prerequisites[0]
	trainers[0].SpriteURLs[0] = "https://evil.test/x.png"
	trainers[0].Prerequisites[0] = "changed"
	*trainers[0].BadgeNumber = 99

	regions, err := s.Regions(ctx)
	require.NoError(t, err)
	regions[0].CoverImages = append(regions[0].CoverImages[:0], "changed")

	party, err := s.PartyByTeam(ctx, "kanto-brock-rb:rb-first")
	require.NoError(t, err)
	require.NotEmpty(t, party[0].Moves)
	move := party[0].Moves[0]
	party[0].Moves[0] = "Splash"
	party[0].Types[0] = "Fairy"

	counters, err := s.CountersByTeam(ctx, "kanto-brock-rb:rb-first")
	require.NoError(t, err)
	require.NotEmpty(t, counters[0].RecommendedMoves)
	rec := counters[0].RecommendedMoves[0]
	counters[0].RecommendedMoves[0] = "Splash"

	again, err := s.TrainersByRole(ctx, model.Kanto, model.RoleGym)
	require.NoError(t, err)
	assert.Equal(t, sprite, again[0].SpriteURLs[0])
	assert.Equal(t, prereq, again[0].Prerequisites[0])
	assert.Equal(t, 1, *again[0].BadgeNumber)

	regionsAgain, err := s.Regions(ctx)
	require.NoError(t, err)
	assert.NotContains(t, regionsAgain[0].CoverImages, "changed")

	partyAgain, err := s.PartyByTeam(ctx, "kanto-brock-rb:rb-first")
	require.NoError(t, err)
	assert.Equal(t, move, partyAgain[0].Moves[0])
	assert.NotEqual(t, "Fairy", partyAgain[0].Types[0])

	countersAgain, err := s.CountersByTeam(ctx, "kanto-brock-rb:rb-first")
	require.NoError(t, err)
	assert.Equal(t, rec, countersAgain[0].RecommendedMoves[0])
}

func TestNewMemoryCopiesInput(t *testing.T) {
	badge := 1
	c := model.Catalog{
		Regions: []model.Region{{ID: model.Kanto, Name: "Kanto"}},
		Trainers: []model.Trainer{{
			ID: "kanto-brock-rb", RegionID: model.Kanto, DisplayName: "Brock", Role: model.RoleGym,
			BadgeNumber: &badge, SpriteURLs: []string{"https://img.test/brock.png"},
		}},
	}
	s, err := store.NewMemory(c)
	require.NoError(t, err)

	c.Trainers[0].SpriteURLs[0] = "changed"
	badge = 8

	got, err := s.TrainersByRegion(context.Background(), model.Kanto)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://img.test/brock.png", got[0].SpriteURLs[0])
	assert.Equal(t, 1, *got[0].BadgeNumber)
}
