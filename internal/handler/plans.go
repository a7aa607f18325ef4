package handler

import (
	"net/http"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/logger"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

// SavePlanRequest is the body of a plan upsert. The username comes from the path.
type SavePlanRequest struct {
	TargetLevel     int               `json:"target_level" validate:"min=0,max=10000"`
	DailyChallenges float64           `json:"daily_challenges" validate:"min=0,max=1000"`
	Quests          []domain.QuestRef `json:"quests" validate:"max=500,dive"`
}

// PlanHandler serves saved calculator plans
type PlanHandler struct {
	svc planner.Service
}

// NewPlanHandler creates a plan handler
func NewPlanHandler(svc planner.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// HandleGetPlan returns the plan saved for a player
// @Summary Get saved plan
// @Tags plans
// @Produce json
// @Param username path string true "Minecraft username"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No plan saved"
// @Router /api/v1/plans/{username} [get]
func (h *PlanHandler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	plan, err := h.svc.GetPlan(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPlanFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// HandleSavePlan creates or replaces the plan saved for a player
// @Summary Save plan
// @Description Stores target level, daily challenges and quest selection. Unknown quests are rejected while the catalog is reachable.
// @Tags plans
// @Accept json
// @Produce json
// @Param username path string true "Minecraft username"
// @Param request body SavePlanRequest true "Plan"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Quest not found"
// @Security ApiKeyAuth
// @Router /api/v1/plans/{username} [put]
func (h *PlanHandler) HandleSavePlan(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	var req SavePlanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save plan"); err != nil {
		return
	}

	saved, err := h.svc.SavePlan(r.Context(), domain.Plan{
		Username:        username,
		TargetLevel:     req.TargetLevel,
		DailyChallenges: req.DailyChallenges,
		Quests:          req.Quests,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSavePlanFailed, err)
		return
	}

	logger.FromContext(r.Context()).Debug("Plan saved via API", "username", saved.Username)
	respondJSON(w, http.StatusOK, saved)
}

// HandleDeletePlan removes the plan saved for a player
// @Summary Delete plan
// @Tags plans
// @Produce json
// @Param username path string true "Minecraft username"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No plan saved"
// @Security ApiKeyAuth
// @Router /api/v1/plans/{username} [delete]
func (h *PlanHandler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePlan(r.Context(), username); err != nil {
		respondServiceError(w, r, ErrMsgDeletePlanFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlanDeletedSuccess})
}

// HandleProjectPlan projects a saved plan from the player's current experience
// @Summary Project saved plan
// @Tags plans
// @Produce json
// @Param username path string true "Minecraft username"
// @Success 200 {object} planner.Report
// @Failure 404 {object} ErrorResponse "No plan saved or player not found"
// @Failure 502 {object} ErrorResponse "Hypixel unavailable"
// @Router /api/v1/plans/{username}/projection [get]
func (h *PlanHandler) HandleProjectPlan(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	report, err := h.svc.ProjectPlan(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, ErrMsgProjectPlanFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
