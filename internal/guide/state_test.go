package guide

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokestory-guide/internal/model"
)

func kantoTrainers() []model.Trainer {
	one := 1
	return []model.Trainer{
		{ID: "kanto-brock-rb", RegionID: model.Kanto, DisplayName: "Brock", Role: model.RoleGym, BadgeNumber: &one},
		{ID: "kanto-rival-blue-rb", RegionID: model.Kanto, DisplayName: "Rival Blue", Role: model.RoleRival},
	}
}

func TestInitLoadsRegionsAndTrainers(t *testing.T) {
	s, fetches := Init(model.Kanto)
	assert.Equal(t, model.Kanto, s.Region)
	assert.Equal(t, -1, s.TeamIndex)
	assert.True(t, s.RegionsLoading)
	assert.True(t, s.TrainersLoading)
	assert.Equal(t, []Fetch{
		{Kind: FetchRegions},
		{Kind: FetchTrainers, Key: Key{Region: model.Kanto}},
	}, fetches)
}

func TestSelectRegionClearsSelection(t *testing.T) {
	s := State{
		Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: 0,
		Trainers: kantoTrainers(),
		Teams:    []model.TrainerTeam{{ID: "t"}},
		Party:    []model.PartyMember{{Name: "Onix"}},
	}

	next, fetches := s.SelectRegion(model.Johto)
	assert.Equal(t, model.Johto, next.Region)
	assert.Empty(t, next.TrainerID)
	assert.Equal(t, -1, next.TeamIndex)
	assert.Nil(t, next.Trainers)
	assert.Nil(t, next.Teams)
	assert.Nil(t, next.Party)
	assert.True(t, next.TrainersLoading)
	assert.Equal(t, []Fetch{{Kind: FetchTrainers, Key: Key{Region: model.Johto}}}, fetches)
}

func TestSelectTrainerRequiresLoadedTrainer(t *testing.T) {
	s, _ := Init(model.Kanto)

	_, _, err := s.SelectTrainer("kanto-brock-rb")
	require.ErrorIs(t, err, ErrInvalidSelection, "trainers still loading")

	s, _, _ = s.Apply(Result{Fetch: Fetch{Kind: FetchTrainers, Key: Key{Region: model.Kanto}}, Trainers: kantoTrainers()})

	_, _, err = s.SelectTrainer("johto-falkner")
	require.ErrorIs(t, err, ErrInvalidSelection)

	next, fetches, err := s.SelectTrainer("kanto-brock-rb")
	require.NoError(t, err)
	assert.True(t, next.TeamsLoading)
	assert.Equal(t, []Fetch{{Kind: FetchTeams, Key: Key{Region: model.Kanto, TrainerID: "kanto-brock-rb"}}}, fetches)
}

func TestTeamsArrivalDefaultsToFirstTeam(t *testing.T) {
	s := State{Region: model.Kanto, TeamIndex: -1, Trainers: kantoTrainers()}
	s, _, err := s.SelectTrainer("kanto-brock-rb")
	require.NoError(t, err)

	teams := []model.TrainerTeam{{ID: "brock:first"}, {ID: "brock:rematch"}}
	next, fetches, applied := s.Apply(Result{
		Fetch: Fetch{Kind: FetchTeams, Key: Key{Region: model.Kanto, TrainerID: "kanto-brock-rb"}},
		Teams: teams,
	})
	require.True(t, applied)
	assert.Equal(t, 0, next.TeamIndex)
	assert.True(t, next.DetailLoading)
	assert.Equal(t, []Fetch{{Kind: FetchTeamDetail, Key: Key{Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamID: "brock:first"}}}, fetches)
}

func TestTeamsArrivalWithNoTeams(t *testing.T) {
	s := State{Region: model.Kanto, TeamIndex: -1, Trainers: kantoTrainers()}
	s, _, _ = s.SelectTrainer("kanto-rival-blue-rb")
	next, fetches, applied := s.Apply(Result{
		Fetch: Fetch{Kind: FetchTeams, Key: Key{Region: model.Kanto, TrainerID: "kanto-rival-blue-rb"}},
		Teams: []model.TrainerTeam{},
	})
	require.True(t, applied)
	assert.Empty(t, fetches)
	assert.Equal(t, -1, next.TeamIndex)
	assert.Nil(t, next.Team())
}

func TestSelectTeamBounds(t *testing.T) {
	s := State{
		Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: 0,
		Trainers: kantoTrainers(),
		Teams:    []model.TrainerTeam{{ID: "a"}, {ID: "b"}},
	}
	for _, idx := range []int{-1, 2, 10} {
		_, _, err := s.SelectTeam(idx)
		assert.ErrorIs(t, err, ErrInvalidSelection, "index %d", idx)
	}

	next, fetches, err := s.SelectTeam(1)
	require.NoError(t, err)
	assert.Equal(t, 1, next.TeamIndex)
	assert.Equal(t, "b", fetches[0].Key.TeamID)

	_, _, err = State{TeamIndex: -1}.SelectTeam(0)
	assert.ErrorIs(t, err, ErrInvalidSelection, "no trainer selected")
}

func TestStaleTrainersDiscarded(t *testing.T) {
	s, _ := Init(model.Kanto)
	s, _ = s.SelectRegion(model.Johto)

	kantoResult := Result{Fetch: Fetch{Kind: FetchTrainers, Key: Key{Region: model.Kanto}}, Trainers: kantoTrainers()}
	johtoResult := Result{Fetch: Fetch{Kind: FetchTrainers, Key: Key{Region: model.Johto}}, Trainers: []model.Trainer{}}

	// Kanto arrives first, after the user already moved on.
	next, _, applied := s.Apply(kantoResult)
	assert.False(t, applied)
	assert.True(t, next.TrainersLoading)

	next, _, applied = next.Apply(johtoResult)
	assert.True(t, applied)
	assert.Empty(t, next.Trainers)

	// And a duplicate late Kanto response still cannot land.
	next, _, applied = next.Apply(kantoResult)
	assert.False(t, applied)
	assert.Empty(t, next.Trainers)
}

func TestStaleTeamDetailDiscarded(t *testing.T) {
	s := State{
		Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: 0,
		Trainers: kantoTrainers(),
		Teams:    []model.TrainerTeam{{ID: "a"}, {ID: "b"}},
	}
	s, first, _ := s.SelectTeam(0)
	s, _, _ = s.SelectTeam(1)

	next, _, applied := s.Apply(Result{Fetch: first[0], Party: []model.PartyMember{{Name: "Geodude"}}})
	assert.False(t, applied)
	assert.Nil(t, next.Party)
	assert.True(t, next.DetailLoading)
}

func TestStaleTeamsAfterRegionChange(t *testing.T) {
	s := State{Region: model.Kanto, TeamIndex: -1, Trainers: kantoTrainers()}
	s, fetches, _ := s.SelectTrainer("kanto-brock-rb")
	s, _ = s.SelectRegion(model.Hoenn)

	next, _, applied := s.Apply(Result{Fetch: fetches[0], Teams: []model.TrainerTeam{{ID: "a"}}})
	assert.False(t, applied)
	assert.Nil(t, next.Teams)
	assert.Empty(t, next.TrainerID)
}

func TestFetchErrorLeavesEmptySection(t *testing.T) {
	s := State{
		Region: model.Kanto, TrainerID: "kanto-brock-rb", TeamIndex: 0,
		Trainers: kantoTrainers(),
		Teams:    []model.TrainerTeam{{ID: "a"}},
	}
	s, fetches, _ := s.SelectTeam(0)
	next, _, applied := s.Apply(Result{Fetch: fetches[0], Party: []model.PartyMember{{Name: "x"}}, Err: errors.New("timeout")})
	require.True(t, applied)
	assert.False(t, next.DetailLoading)
	assert.Error(t, next.DetailErr)
	assert.Nil(t, next.Party)
	assert.True(t, next.Idle())
}
