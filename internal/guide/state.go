// Package guide sequences catalog reads in response to navigation.
//
// Navigation is modelled as an explicit State value with pure transitions:
// each transition returns the next State plus the fetches the caller must
// run. Every fetch carries the selection Key it was issued for, and Apply
// drops results whose key no longer matches the current selection, so a
// late response can never overwrite a newer view.
package guide

import (
	"errors"
	"fmt"

	"github.com/albapepper/pokestory-guide/internal/model"
)

// ErrInvalidSelection is returned when a selection is not possible in the
// current state (trainer not loaded, team index out of range).
var ErrInvalidSelection = errors.New("invalid selection")

// Kind identifies what a fetch loads.
type Kind int

const (
	FetchRegions Kind = iota
	FetchTrainers
	FetchTeams
	FetchTeamDetail // party and counters, joined
)

func (k Kind) String() string {
	switch k {
	case FetchRegions:
		return "regions"
	case FetchTrainers:
		return "trainers"
	case FetchTeams:
		return "teams"
	case FetchTeamDetail:
		return "team_detail"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key is the selection a fetch was issued for.
type Key struct {
	Region    model.RegionID
	TrainerID string
	TeamID    string
}

// Fetch is a command to load one section.
type Fetch struct {
	Kind Kind
	Key  Key
}

// Result is the outcome of running a Fetch. Only the slices matching the
// fetch kind are set. Err is non-nil when the load failed; the section is
// then shown empty.
type Result struct {
	Fetch    Fetch
	Regions  []model.Region
	Trainers []model.Trainer
	Teams    []model.TrainerTeam
	Party    []model.PartyMember
	Counters []model.CounterStrategy
	Err      error
}

// State is one browsing session's selection and loaded data.
type State struct {
	Region    model.RegionID
	TrainerID string
	TeamIndex int // -1 when no team is selected

	Regions  []model.Region
	Trainers []model.Trainer
	Teams    []model.TrainerTeam
	Party    []model.PartyMember
	Counters []model.CounterStrategy

	RegionsLoading  bool
	TrainersLoading bool
	TeamsLoading    bool
	DetailLoading   bool

	RegionsErr  error
	TrainersErr error
	TeamsErr    error
	DetailErr   error
}

// Init returns the starting state: regions loading and region selected.
func Init(region model.RegionID) (State, []Fetch) {
	s := State{Region: region, TeamIndex: -1, RegionsLoading: true}
	next, fetches := s.SelectRegion(region)
	return next, append([]Fetch{{Kind: FetchRegions}}, fetches...)
}

// SelectRegion clears the trainer and team selection and loads the
// region's trainers. Selecting the current region reloads it, which is the
// recovery path after a failed fetch.
func (s State) SelectRegion(region model.RegionID) (State, []Fetch) {
	s.Region = region
	s.Trainers = nil
	s.TrainersLoading = true
	s.TrainersErr = nil
	s = s.clearTrainer()
	return s, []Fetch{{Kind: FetchTrainers, Key: Key{Region: region}}}
}

// SelectTrainer loads the trainer's teams. The trainer must be in the
// loaded trainer list.
func (s State) SelectTrainer(trainerID string) (State, []Fetch, error) {
	if s.TrainersLoading || s.trainer(trainerID) == nil {
		return s, nil, fmt.Errorf("%w: trainer %q is not loaded for region %q", ErrInvalidSelection, trainerID, s.Region)
	}
	s = s.clearTrainer()
	s.TrainerID = trainerID
	s.TeamsLoading = true
	return s, []Fetch{{Kind: FetchTeams, Key: Key{Region: s.Region, TrainerID: trainerID}}}, nil
}

// SelectTeam loads party and counters for the team at index.
func (s State) SelectTeam(index int) (State, []Fetch, error) {
	if s.TrainerID == "" || s.TeamsLoading {
		return s, nil, fmt.Errorf("%w: no teams loaded", ErrInvalidSelection)
	}
	if index < 0 || index >= len(s.Teams) {
		return s, nil, fmt.Errorf("%w: team index %d out of range [0,%d)", ErrInvalidSelection, index, len(s.Teams))
	}
	return s.selectTeam(index)
}

func (s State) selectTeam(index int) (State, []Fetch, error) {
	s.TeamIndex = index
	s.Party = nil
	s.Counters = nil
	s.DetailErr = nil
	s.DetailLoading = true
	key := Key{Region: s.Region, TrainerID: s.TrainerID, TeamID: s.Teams[index].ID}
	return s, []Fetch{{Kind: FetchTeamDetail, Key: key}}, nil
}

func (s State) clearTrainer() State {
	s.TrainerID = ""
	s.Teams = nil
	s.TeamsLoading = false
	s.TeamsErr = nil
	s.TeamIndex = -1
	s.Party = nil
	s.Counters = nil
	s.DetailLoading = false
	s.DetailErr = nil
	return s
}

// Apply commits a fetch result if it is still relevant. It returns the next
// state, any follow-up fetches, and whether the result was applied.
func (s State) Apply(r Result) (State, []Fetch, bool) {
	if !s.Current(r.Fetch) {
		return s, nil, false
	}

	switch r.Fetch.Kind {
	case FetchRegions:
		s.Regions, s.RegionsErr, s.RegionsLoading = r.Regions, r.Err, false
	case FetchTrainers:
		s.Trainers, s.TrainersErr, s.TrainersLoading = r.Trainers, r.Err, false
	case FetchTeams:
		s.Teams, s.TeamsErr, s.TeamsLoading = r.Teams, r.Err, false
		if len(s.Teams) > 0 {
			next, fetches, _ := s.selectTeam(0)
			return next, fetches, true
		}
	case FetchTeamDetail:
		s.DetailLoading, s.DetailErr = false, r.Err
		if r.Err == nil {
			s.Party, s.Counters = r.Party, r.Counters
		} else {
			s.Party, s.Counters = nil, nil
		}
	default:
		return s, nil, false
	}
	return s, nil, true
}

// Current reports whether f matches the current selection and its section
// is still waiting for data.
func (s State) Current(f Fetch) bool {
	switch f.Kind {
	case FetchRegions:
		return s.RegionsLoading
	case FetchTrainers:
		return s.TrainersLoading && f.Key.Region == s.Region
	case FetchTeams:
		return s.TeamsLoading && f.Key.Region == s.Region && f.Key.TrainerID == s.TrainerID
	case FetchTeamDetail:
		team := s.Team()
		return s.DetailLoading && team != nil &&
			f.Key.Region == s.Region && f.Key.TrainerID == s.TrainerID && f.Key.TeamID == team.ID
	default:
		return false
	}
}

// Trainer returns the selected trainer, or nil.
func (s State) Trainer() *model.Trainer {
	return s.trainer(s.TrainerID)
}

func (s State) trainer(id string) *model.Trainer {
	if id == "" {
		return nil
	}
	for i := range s.Trainers {
		if s.Trainers[i].ID == id {
			return &s.Trainers[i]
		}
	}
	return nil
}

// Team returns the selected team, or nil.
func (s State) Team() *model.TrainerTeam {
	if s.TeamIndex < 0 || s.TeamIndex >= len(s.Teams) {
		return nil
	}
	return &s.Teams[s.TeamIndex]
}

// Idle reports whether no section is waiting on a fetch.
func (s State) Idle() bool {
	return !s.RegionsLoading && !s.TrainersLoading && !s.TeamsLoading && !s.DetailLoading
}
