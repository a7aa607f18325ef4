package handler

import (
	"net/http"

	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

// HandleProjection projects the date a target level is reached
// @Summary Project progression
// @Description Sums the selected quests and daily challenges into daily and weekly yields and simulates day by day until the target level is reached. Current experience comes from current_xp, or from the player's profile when only username is given.
// @Tags projection
// @Accept json
// @Produce json
// @Param request body planner.ProjectionRequest true "Calculator inputs"
// @Success 200 {object} planner.Report
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player or quest not found"
// @Failure 502 {object} ErrorResponse "Hypixel unavailable"
// @Router /api/v1/projection [post]
func HandleProjection(svc planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req planner.ProjectionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Projection"); err != nil {
			return
		}

		report, err := svc.Project(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, ErrMsgProjectFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}
