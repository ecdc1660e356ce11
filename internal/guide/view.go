package guide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/albapepper/pokestory-guide/internal/model"
)

// Messages shown when a section has nothing to render.
const (
	MsgLoadingRegions  = "Loading regions..."
	MsgLoadingTrainers = "Loading trainers..."
	MsgLoadingTeam     = "Loading team data..."
	MsgNoTrainers      = "No trainers available for this region yet. Data can be added through the database."
	MsgNoTeams         = "No teams recorded for this trainer yet."
	MsgNoParty         = "No party recorded for this team yet."

	MsgTrainersFailed = "Trainers could not be loaded. Select the region again to retry."
	MsgTeamFailed     = "Team data could not be loaded. Select the team again to retry."
)

// Image is a logical image: alt text plus its ordered URL candidates.
// Surfaces feed Candidates to an imgsrc.Resolver.
type Image struct {
	Alt        string   `json:"alt"`
	Candidates []string `json:"candidates"`
}

// Bucket is one role section of the trainer list.
type Bucket struct {
	Role     model.Role      `json:"role"`
	Title    string          `json:"title"`
	Trainers []model.Trainer `json:"trainers"`
}

// Buckets partitions trainers by role in the fixed order gym, elite4,
// champion, rival. Each bucket is sorted by order index and empty buckets
// are omitted.
func Buckets(trainers []model.Trainer) []Bucket {
	var out []Bucket
	for _, role := range model.Roles {
		var members []model.Trainer
		for _, t := range trainers {
			if t.Role == role {
				members = append(members, t)
			}
		}
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].OrderIndex < members[j].OrderIndex })
		out = append(out, Bucket{Role: role, Title: role.Title(), Trainers: members})
	}
	return out
}

// TierGroup is one tier section of the counter list.
type TierGroup struct {
	Tier     model.Tier              `json:"tier"`
	Title    string                  `json:"title"`
	Counters []model.CounterStrategy `json:"counters"`
}

// CounterTiers groups counters into S, A and B sections, preserving input
// order inside a tier. Empty tiers are omitted.
func CounterTiers(counters []model.CounterStrategy) []TierGroup {
	var out []TierGroup
	for _, tier := range model.Tiers {
		var members []model.CounterStrategy
		for _, c := range counters {
			if c.Tier == tier {
				members = append(members, c)
			}
		}
		if len(members) > 0 {
			out = append(out, TierGroup{Tier: tier, Title: string(tier) + " Tier", Counters: members})
		}
	}
	return out
}

// --------------------------------------------------------------------------
// View models
// --------------------------------------------------------------------------

// RegionCard is one entry of the region picker.
type RegionCard struct {
	ID       model.RegionID `json:"id"`
	Name     string         `json:"name"`
	Cover    Image          `json:"cover"`
	Selected bool           `json:"selected"`
}

// TrainerCard is one entry of a trainer bucket.
type TrainerCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle"` // "Badge #1" for gyms
	Location  string `json:"location"`
	Sprite    Image  `json:"sprite"`
	BadgeIcon *Image `json:"badge_icon,omitempty"`
	Selected  bool   `json:"selected"`
}

// TrainerSection is a titled bucket of cards.
type TrainerSection struct {
	Title string        `json:"title"`
	Cards []TrainerCard `json:"cards"`
}

// Page is everything a surface needs to draw the current state.
type Page struct {
	Regions       []RegionCard     `json:"regions"`
	RegionMessage string           `json:"region_message,omitempty"`
	Sections      []TrainerSection `json:"sections"`
	Message       string           `json:"message,omitempty"`
	Detail        *TeamDetail      `json:"detail,omitempty"`
}

// TeamDetail is the selected trainer's header, team tabs, party and
// counters.
type TeamDetail struct {
	Trainer       string        `json:"trainer"`
	Info          string        `json:"info"` // location • game • format
	Prerequisites string        `json:"prerequisites,omitempty"`
	Sprite        Image         `json:"sprite"`
	Art           *Image        `json:"art,omitempty"`
	BadgeIcon     *Image        `json:"badge_icon,omitempty"`
	Tabs          []string      `json:"tabs"`
	Selected      int           `json:"selected"`
	Loading       bool          `json:"loading"`
	Message       string        `json:"message,omitempty"`
	Party         []PartyRow    `json:"party"`
	Tiers         []TierSection `json:"tiers"`
}

// PartyRow is one party member line.
type PartyRow struct {
	Heading string   `json:"heading"` // "#1 send-out • Lv.12"
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	Moves   []string `json:"moves"`
	Sprite  Image    `json:"sprite"`
	Art     Image    `json:"art"`
}

// TierSection is one counter tier with rendered rows.
type TierSection struct {
	Title string       `json:"title"`
	Rows  []CounterRow `json:"rows"`
}

// CounterRow is one recommended pick.
type CounterRow struct {
	Name      string `json:"name"`
	Level     string `json:"level"` // "Lv. 12"
	Rationale string `json:"rationale"`
	Moves     string `json:"moves"`
	Obtain    string `json:"obtain"`
	Sprite    Image  `json:"sprite"`
}

// Render composes the page for s.
func Render(s State) Page {
	var p Page

	switch {
	case s.RegionsLoading && len(s.Regions) == 0:
		p.RegionMessage = MsgLoadingRegions
	default:
		for _, r := range s.Regions {
			p.Regions = append(p.Regions, RegionCard{
				ID:       r.ID,
				Name:     r.Name,
				Cover:    Image{Alt: r.Name, Candidates: r.CoverImages},
				Selected: r.ID == s.Region,
			})
		}
	}

	switch {
	case s.TrainersLoading:
		p.Message = MsgLoadingTrainers
		return p
	case s.TrainersErr != nil:
		p.Message = MsgTrainersFailed
		return p
	case len(s.Trainers) == 0:
		p.Message = MsgNoTrainers
		return p
	}

	for _, b := range Buckets(s.Trainers) {
		sec := TrainerSection{Title: b.Title}
		for _, t := range b.Trainers {
			sec.Cards = append(sec.Cards, trainerCard(t, t.ID == s.TrainerID))
		}
		p.Sections = append(p.Sections, sec)
	}

	if t := s.Trainer(); t != nil {
		p.Detail = renderDetail(s, *t)
	}
	return p
}

func trainerCard(t model.Trainer, selected bool) TrainerCard {
	c := TrainerCard{
		ID:       t.ID,
		Name:     t.DisplayName,
		Location: t.Location,
		Sprite:   Image{Alt: t.DisplayName + " sprite", Candidates: t.SpriteURLs},
		Selected: selected,
	}
	if t.Role == model.RoleGym && t.BadgeNumber != nil {
		c.Subtitle = fmt.Sprintf("Badge #%d", *t.BadgeNumber)
	}
	if len(t.BadgeIconURLs) > 0 {
		c.BadgeIcon = &Image{Alt: "badge", Candidates: t.BadgeIconURLs}
	}
	return c
}

func renderDetail(s State, t model.Trainer) *TeamDetail {
	d := &TeamDetail{
		Trainer:  t.DisplayName,
		Info:     strings.Join([]string{t.Location, t.Game, string(t.BattleFormat)}, " • "),
		Sprite:   Image{Alt: t.DisplayName + " sprite", Candidates: t.SpriteURLs},
		Selected: s.TeamIndex,
	}
	if len(t.Prerequisites) > 0 {
		d.Prerequisites = "Prereqs: " + strings.Join(t.Prerequisites, ", ")
	}
	if len(t.ArtURLs) > 0 {
		d.Art = &Image{Alt: t.DisplayName + " art", Candidates: t.ArtURLs}
	}
	if len(t.BadgeIconURLs) > 0 {
		d.BadgeIcon = &Image{Alt: "badge", Candidates: t.BadgeIconURLs}
	}
	for _, team := range s.Teams {
		d.Tabs = append(d.Tabs, team.Label)
	}

	switch {
	case s.TeamsLoading || s.DetailLoading:
		d.Loading = true
		d.Message = MsgLoadingTeam
		return d
	case len(s.Teams) == 0:
		d.Message = MsgNoTeams
		return d
	case s.DetailErr != nil:
		d.Message = MsgTeamFailed
		return d
	case len(s.Party) == 0:
		d.Message = MsgNoParty
	}

	for i, p := range s.Party {
		d.Party = append(d.Party, PartyRow{
			Heading: fmt.Sprintf("#%d send-out • Lv.%d", i+1, p.Level),
			Name:    p.Name,
			Types:   p.Types,
			Moves:   p.Moves,
			Sprite:  Image{Alt: p.Name + " sprite", Candidates: []string{p.PixelSpriteURL}},
			Art:     Image{Alt: p.Name + " art", Candidates: []string{p.OfficialArtURL}},
		})
	}
	for _, g := range CounterTiers(s.Counters) {
		sec := TierSection{Title: g.Title}
		for _, c := range g.Counters {
			sec.Rows = append(sec.Rows, CounterRow{
				Name:      c.Name,
				Level:     fmt.Sprintf("Lv. %d", c.TargetLevel),
				Rationale: c.Rationale,
				Moves:     strings.Join(c.RecommendedMoves, ", "),
				Obtain:    c.ObtainableRoute + " • " + c.ObtainableMethod,
				Sprite:    Image{Alt: c.Name + " sprite", Candidates: []string{c.PixelSpriteURL}},
			})
		}
		d.Tiers = append(d.Tiers, sec)
	}
	return d
}
