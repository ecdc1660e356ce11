package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/pokestory-guide/internal/api/respond"
	"github.com/albapepper/pokestory-guide/internal/cache"
	"github.com/albapepper/pokestory-guide/internal/guide"
	"github.com/albapepper/pokestory-guide/internal/model"
)

// TrainersResponse is the trainer list of a region with its role buckets.
type TrainersResponse struct {
	Region   model.RegionID  `json:"region"`
	Role     model.Role      `json:"role,omitempty"`
	Trainers []model.Trainer `json:"trainers"`
	Sections []guide.Bucket  `json:"sections"`
	Message  string          `json:"message,omitempty"`
}

// CountersResponse is a team's counters grouped by tier.
type CountersResponse struct {
	TeamID string            `json:"team_id"`
	Tiers  []guide.TierGroup `json:"tiers"`
}

// GetRegions lists all regions.
// @Summary List regions
// @Description Returns every region ordered by order_index.
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Region
// @Failure 503 {object} respond.ErrorResponse
// @Router /regions [get]
func (h *Handler) GetRegions(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "regions", cache.TTLCatalog, "regions", func(ctx context.Context) (any, error) {
		return h.store.Regions(ctx)
	})
}

// GetTrainers lists a region's trainers, optionally narrowed to one role.
// @Summary List trainers of a region
// @Description Returns trainers ordered by order_index plus role sections (gym, elite4, champion, rival).
// @Tags catalog
// @Produce json
// @Param regionID path string true "Region" Enums(kanto, johto, hoenn, sinnoh, unova, kalos, alola, galar, paldea)
// @Param role query string false "Role filter" Enums(gym, elite4, champion, rival)
// @Success 200 {object} TrainersResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /regions/{regionID}/trainers [get]
func (h *Handler) GetTrainers(w http.ResponseWriter, r *http.Request) {
	region, err := model.ParseRegionID(chi.URLParam(r, "regionID"))
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeInvalidParam, "Unknown region", err.Error())
		return
	}

	var role model.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err = model.ParseRole(raw)
		if err != nil {
			respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeInvalidParam, "Unknown role", err.Error())
			return
		}
	}

	key := fmt.Sprintf("trainers:%s:%s", region, role)
	h.serveCached(w, r, key, cache.TTLCatalog, "trainers", func(ctx context.Context) (any, error) {
		var trainers []model.Trainer
		var err error
		if role == "" {
			trainers, err = h.store.TrainersByRegion(ctx, region)
		} else {
			trainers, err = h.store.TrainersByRole(ctx, region, role)
		}
		if err != nil {
			return nil, err
		}
		resp := TrainersResponse{Region: region, Role: role, Trainers: trainers, Sections: guide.Buckets(trainers)}
		if len(trainers) == 0 {
			resp.Message = guide.MsgNoTrainers
		}
		return resp, nil
	})
}

// GetTeams lists a trainer's teams.
// @Summary List teams of a trainer
// @Tags catalog
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Success 200 {array} model.TrainerTeam
// @Failure 503 {object} respond.ErrorResponse
// @Router /trainers/{trainerID}/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	trainerID := chi.URLParam(r, "trainerID")
	h.serveCached(w, r, "teams:"+trainerID, cache.TTLCatalog, "teams", func(ctx context.Context) (any, error) {
		return h.store.TeamsByTrainer(ctx, trainerID)
	})
}

// GetParty lists a team's party in send-out order.
// @Summary List party of a team
// @Tags catalog
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {array} model.PartyMember
// @Failure 503 {object} respond.ErrorResponse
// @Router /teams/{teamID}/party [get]
func (h *Handler) GetParty(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	h.serveCached(w, r, "party:"+teamID, cache.TTLCatalog, "party", func(ctx context.Context) (any, error) {
		return h.store.PartyByTeam(ctx, teamID)
	})
}

// GetCounters lists a team's counters grouped by tier.
// @Summary List counters of a team
// @Description Counters grouped S, A, B. Empty tiers are omitted.
// @Tags catalog
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} CountersResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /teams/{teamID}/counters [get]
func (h *Handler) GetCounters(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	h.serveCached(w, r, "counters:"+teamID, cache.TTLCatalog, "counters", func(ctx context.Context) (any, error) {
		counters, err := h.store.CountersByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return CountersResponse{TeamID: teamID, Tiers: guide.CounterTiers(counters)}, nil
	})
}

// GetTeamDetail returns one of a trainer's teams with party and counters.
// @Summary Get team detail
// @Description Selects the trainer's team at index and loads party and counters concurrently.
// @Tags catalog
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param index path int true "Team index (0-based, by order_index)"
// @Success 200 {object} model.TeamWithParty
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /trainers/{trainerID}/teams/{index} [get]
func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	trainerID := chi.URLParam(r, "trainerID")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "index must be a non-negative integer")
		return
	}

	key := fmt.Sprintf("detail:%s:%d", trainerID, index)
	h.serveCached(w, r, key, cache.TTLCatalog, "team", func(ctx context.Context) (any, error) {
		teams, err := h.store.TeamsByTrainer(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		if index >= len(teams) {
			return nil, fmt.Errorf("%w: trainer %q has %d teams", errNotFound, trainerID, len(teams))
		}

		team := teams[index]
		res := h.loader.Run(ctx, guide.Fetch{
			Kind: guide.FetchTeamDetail,
			Key:  guide.Key{TrainerID: trainerID, TeamID: team.ID},
		})
		if res.Err != nil {
			return nil, res.Err
		}
		return model.TeamWithParty{TrainerTeam: team, Party: res.Party, Counters: res.Counters}, nil
	})
}
