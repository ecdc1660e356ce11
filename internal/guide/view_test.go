package guide

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokestory-guide/internal/model"
)

func TestBucketsOmitEmptyRoles(t *testing.T) {
	buckets := Buckets(kantoTrainers())
	require.Len(t, buckets, 2)
	assert.Equal(t, "Gym Leaders", buckets[0].Title)
	assert.Equal(t, "Rivals", buckets[1].Title)
}

func TestBucketsFixedRoleOrder(t *testing.T) {
	trainers := []model.Trainer{
		{ID: "rival", Role: model.RoleRival, OrderIndex: 1},
		{ID: "champ", Role: model.RoleChampion, OrderIndex: 1},
		{ID: "gym-2", Role: model.RoleGym, OrderIndex: 2},
		{ID: "e4", Role: model.RoleElite4, OrderIndex: 1},
		{ID: "gym-1", Role: model.RoleGym, OrderIndex: 1},
	}

	buckets := Buckets(trainers)
	var roles []model.Role
	for _, b := range buckets {
		roles = append(roles, b.Role)
	}
	assert.Equal(t, []model.Role{model.RoleGym, model.RoleElite4, model.RoleChampion, model.RoleRival}, roles)
	assert.Equal(t, "gym-1", buckets[0].Trainers[0].ID)
	assert.Equal(t, "gym-2", buckets[0].Trainers[1].ID)
	assert.Empty(t, Buckets(nil))
}

func TestCounterTiers(t *testing.T) {
	counters := []model.CounterStrategy{
		{Name: "Bulbasaur", Tier: model.TierB},
		{Name: "Squirtle", Tier: model.TierS},
		{Name: "Mankey", Tier: model.TierB},
	}
	tiers := CounterTiers(counters)
	require.Len(t, tiers, 2)
	assert.Equal(t, "S Tier", tiers[0].Title)
	assert.Equal(t, "B Tier", tiers[1].Title)
	assert.Equal(t, "Bulbasaur", tiers[1].Counters[0].Name)
	assert.Equal(t, "Mankey", tiers[1].Counters[1].Name)
}

func TestRenderMessages(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"loading", State{TrainersLoading: true, TeamIndex: -1}, MsgLoadingTrainers},
		{"empty region", State{Trainers: []model.Trainer{}, TeamIndex: -1}, MsgNoTrainers},
		{"failed", State{TrainersErr: errors.New("down"), TeamIndex: -1}, MsgTrainersFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render(tt.state)
			assert.Equal(t, tt.want, p.Message)
			assert.Empty(t, p.Sections)
			assert.Nil(t, p.Detail)
		})
	}
}

func TestRenderRegionsLoading(t *testing.T) {
	s, _ := Init(model.Kanto)
	p := Render(s)
	assert.Equal(t, MsgLoadingRegions, p.RegionMessage)
	assert.Empty(t, p.Regions)
}

func TestRenderTrainerCards(t *testing.T) {
	s := State{Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: -1, Trainers: kantoTrainers(), TeamsLoading: true}
	p := Render(s)

	require.Len(t, p.Sections, 2)
	brock := p.Sections[0].Cards[0]
	assert.Equal(t, "Badge #1", brock.Subtitle)
	assert.True(t, brock.Selected)
	assert.Empty(t, p.Sections[1].Cards[0].Subtitle)

	require.NotNil(t, p.Detail)
	assert.True(t, p.Detail.Loading)
	assert.Equal(t, MsgLoadingTeam, p.Detail.Message)
}

func TestRenderDetailMessages(t *testing.T) {
	base := State{Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: -1, Trainers: kantoTrainers()}

	noTeams := base
	noTeams.Teams = []model.TrainerTeam{}
	assert.Equal(t, MsgNoTeams, Render(noTeams).Detail.Message)

	failed := base
	failed.Teams = []model.TrainerTeam{{ID: "a", Label: "First"}}
	failed.TeamIndex = 0
	failed.DetailErr = errors.New("timeout")
	d := Render(failed).Detail
	assert.Equal(t, MsgTeamFailed, d.Message)
	assert.Equal(t, []string{"First"}, d.Tabs)

	noParty := failed
	noParty.DetailErr = nil
	noParty.Party = []model.PartyMember{}
	assert.Equal(t, MsgNoParty, Render(noParty).Detail.Message)
}

func TestRenderPartyAndCounters(t *testing.T) {
	s := State{
		Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: 0, Trainers: kantoTrainers(),
		Teams: []model.TrainerTeam{{ID: "a", Label: "First battle"}},
		Party: []model.PartyMember{
			{Name: "Geodude", Level: 12, PixelSpriteURL: "geodude.png"},
			{Name: "Onix", Level: 14, SendOutOrder: 1},
		},
		Counters: []model.CounterStrategy{
			{Name: "Squirtle", Tier: model.TierS, TargetLevel: 12, RecommendedMoves: []string{"Water Gun", "Bubble"},
				ObtainableRoute: "Starter", ObtainableMethod: "gift"},
		},
	}
	d := Render(s).Detail
	require.NotNil(t, d)
	assert.Empty(t, d.Message)
	require.Len(t, d.Party, 2)
	assert.Equal(t, "#1 send-out • Lv.12", d.Party[0].Heading)
	assert.Equal(t, "#2 send-out • Lv.14", d.Party[1].Heading)
	assert.Equal(t, []string{"geodude.png"}, d.Party[0].Sprite.Candidates)

	require.Len(t, d.Tiers, 1)
	row := d.Tiers[0].Rows[0]
	assert.Equal(t, "Lv. 12", row.Level)
	assert.Equal(t, "Water Gun, Bubble", row.Moves)
	assert.Equal(t, "Starter • gift", row.Obtain)
}
