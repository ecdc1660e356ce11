// Package model defines the guide's read-only catalog entities: regions,
// trainers, their teams, party members and counter strategies.
//
// Field names and JSON tags follow the database schema (snake_case), which
// is the authoritative layout for every store implementation.
package model

import "fmt"

// --------------------------------------------------------------------------
// Enumerations
// --------------------------------------------------------------------------

// RegionID identifies one of the fixed game regions.
type RegionID string

const (
	Kanto  RegionID = "kanto"
	Johto  RegionID = "johto"
	Hoenn  RegionID = "hoenn"
	Sinnoh RegionID = "sinnoh"
	Unova  RegionID = "unova"
	Kalos  RegionID = "kalos"
	Alola  RegionID = "alola"
	Galar  RegionID = "galar"
	Paldea RegionID = "paldea"
)

// RegionIDs lists every region in game release order.
var RegionIDs = []RegionID{Kanto, Johto, Hoenn, Sinnoh, Unova, Kalos, Alola, Galar, Paldea}

// ParseRegionID validates s against the fixed region set.
func ParseRegionID(s string) (RegionID, error) {
	for _, id := range RegionIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Role is a trainer's place in the story.
type Role string

const (
	RoleGym      Role = "gym"
	RoleElite4   Role = "elite4"
	RoleChampion Role = "champion"
	RoleRival    Role = "rival"
)

// Roles lists the roles in display order.
var Roles = []Role{RoleGym, RoleElite4, RoleChampion, RoleRival}

// ParseRole validates s against the role set.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Title is the section heading used when trainers are grouped by role.
func (r Role) Title() string {
	switch r {
	case RoleGym:
		return "Gym Leaders"
	case RoleElite4:
		return "Elite Four"
	case RoleChampion:
		return "Champion"
	case RoleRival:
		return "Rivals"
	default:
		return string(r)
	}
}

// BattleFormat is how many Pokémon are on the field per side.
type BattleFormat string

const (
	Singles BattleFormat = "singles"
	Doubles BattleFormat = "doubles"
	Multis  BattleFormat = "multis"
)

// Tier ranks a counter strategy. S is the strongest pick.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
)

// Tiers lists tiers best first.
var Tiers = []Tier{TierS, TierA, TierB}

// Rank orders tiers S < A < B. Unknown tiers sort last.
func (t Tier) Rank() int {
	switch t {
	case TierS:
		return 0
	case TierA:
		return 1
	case TierB:
		return 2
	default:
		return 3
	}
}

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

type Region struct {
	ID          RegionID `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	CoverImages []string `json:"cover_images" yaml:"cover_images"`
	OrderIndex  int      `json:"order_index" yaml:"order_index"`
}

type Trainer struct {
	ID            string       `json:"id" yaml:"id"`
	RegionID      RegionID     `json:"region_id" yaml:"region_id"`
	DisplayName   string       `json:"display_name" yaml:"display_name"`
	Role          Role         `json:"role" yaml:"role"`
	Game          string       `json:"game" yaml:"game"`
	BadgeNumber   *int         `json:"badge_number,omitempty" yaml:"badge_number,omitempty"`
	SpriteURLs    []string     `json:"sprite_urls" yaml:"sprite_urls"`
	ArtURLs       []string     `json:"art_urls,omitempty" yaml:"art_urls,omitempty"`
	BadgeIconURLs []string     `json:"badge_icon_urls,omitempty" yaml:"badge_icon_urls,omitempty"`
	Location      string       `json:"location" yaml:"location"`
	Prerequisites []string     `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	BattleFormat  BattleFormat `json:"battle_format" yaml:"battle_format"`
	OrderIndex    int          `json:"order_index" yaml:"order_index"`
}

type TrainerTeam struct {
	ID          string   `json:"id" yaml:"id"`
	TrainerID   string   `json:"trainer_id" yaml:"trainer_id"`
	Label       string   `json:"label" yaml:"label"`
	OrderIndex  int      `json:"order_index" yaml:"order_index"`
	VersionTags []string `json:"version_tags" yaml:"version_tags"`
}

type PartyMember struct {
	ID             string   `json:"id" yaml:"id"`
	TeamID         string   `json:"team_id" yaml:"team_id"`
	SpeciesID      int      `json:"species_id" yaml:"species_id"`
	Name           string   `json:"name" yaml:"name"`
	Level          int      `json:"level" yaml:"level"`
	Types          []string `json:"types" yaml:"types"`
	Moves          []string `json:"moves" yaml:"moves"`
	OfficialArtURL string   `json:"official_art_url" yaml:"official_art_url"`
	PixelSpriteURL string   `json:"pixel_sprite_url" yaml:"pixel_sprite_url"`
	SendOutOrder   int      `json:"send_out_order" yaml:"send_out_order"`
}

type CounterStrategy struct {
	ID               string   `json:"id" yaml:"id"`
	TeamID           string   `json:"team_id" yaml:"team_id"`
	Tier             Tier     `json:"tier" yaml:"tier"`
	SpeciesID        int      `json:"species_id" yaml:"species_id"`
	Name             string   `json:"name" yaml:"name"`
	Rationale        string   `json:"rationale" yaml:"rationale"`
	RecommendedMoves []string `json:"recommended_moves" yaml:"recommended_moves"`
	TargetLevel      int      `json:"target_level" yaml:"target_level"`
	OfficialArtURL   string   `json:"official_art_url" yaml:"official_art_url"`
	PixelSpriteURL   string   `json:"pixel_sprite_url" yaml:"pixel_sprite_url"`
	ObtainableRoute  string   `json:"obtainable_route" yaml:"obtainable_route"`
	ObtainableMethod string   `json:"obtainable_method" yaml:"obtainable_method"`
}

// TeamWithParty is a team joined with its party and counters.
type TeamWithParty struct {
	TrainerTeam `yaml:",inline"`
	Party       []PartyMember     `json:"party" yaml:"party"`
	Counters    []CounterStrategy `json:"counters" yaml:"counters"`
}
