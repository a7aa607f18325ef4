package handler

import (
	"net/http"

	"github.com/osse101/QuestPlanner_Go/internal/logger"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

// HandleGetQuests returns the quest catalog grouped by game
// @Summary List quests
// @Description Returns every game with its quests, sorted by name. Daily quests carry "daily": true.
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Game
// @Failure 502 {object} ErrorResponse "Hypixel unavailable"
// @Failure 503 {object} ErrorResponse "Hypixel rate limited"
// @Router /api/v1/quests [get]
func HandleGetQuests(svc planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := svc.GetCatalog(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetQuestsFailed, err)
			return
		}

		logger.FromContext(r.Context()).Debug("Quest catalog served", "games", len(games))
		respondJSON(w, http.StatusOK, games)
	}
}

// HandleGetPlayer returns a player's network experience
// @Summary Get player progress
// @Description Looks up the Minecraft profile and returns the player's network experience and quest completions
// @Tags catalog
// @Produce json
// @Param username query string true "Minecraft username"
// @Success 200 {object} domain.PlayerProgress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player not found"
// @Failure 502 {object} ErrorResponse "Hypixel unavailable"
// @Router /api/v1/player [get]
func HandleGetPlayer(svc planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetQueryParam(r, w, "username")
		if !ok {
			return
		}
		if err := GetValidator().ValidateVar(username, "mcname"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUsername)
			return
		}

		player, err := svc.GetPlayer(r.Context(), username)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPlayerFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, player)
	}
}
