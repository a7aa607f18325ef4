package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/osse101/QuestPlanner_Go/internal/level"
)

// LevelResponse describes a point on the level curve
type LevelResponse struct {
	XP         float64 `json:"xp"`
	Level      int     `json:"level"`
	LevelXP    float64 `json:"level_xp"`
	NextLevel  int     `json:"next_level"`
	NextXP     float64 `json:"next_level_xp"`
	XPToNext   float64 `json:"xp_to_next"`
	Percentage float64 `json:"percentage"`
}

// HandleLevel converts between network experience and level
// @Summary Convert experience and level
// @Description With xp, returns the level reached and the experience to the next one. With level, returns the experience threshold of that level.
// @Tags level
// @Produce json
// @Param xp query number false "Total network experience"
// @Param level query integer false "Network level"
// @Success 200 {object} LevelResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/level [get]
func HandleLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawXP := GetOptionalQueryParam(r, "xp", "")
		rawLevel := GetOptionalQueryParam(r, "level", "")

		switch {
		case rawXP != "" && rawLevel != "":
			respondError(w, http.StatusBadRequest, ErrMsgLevelQueryConflict)
		case rawXP != "":
			xp, err := strconv.ParseFloat(rawXP, 64)
			if err != nil || level.ValidateExperience(xp) != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidExperience)
				return
			}
			respondJSON(w, http.StatusOK, describeLevel(xp))
		case rawLevel != "":
			lvl, err := strconv.Atoi(rawLevel)
			if err != nil || level.ValidateLevel(lvl) != nil || lvl > math.MaxInt32 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLevel)
				return
			}
			respondJSON(w, http.StatusOK, describeLevel(level.GetXPForLevel(lvl)))
		default:
			respondError(w, http.StatusBadRequest, ErrMsgLevelQueryMissing)
		}
	}
}

func describeLevel(xp float64) LevelResponse {
	lvl, toNext := level.GetXPProgress(xp)
	base := level.GetXPForLevel(lvl)
	next := level.GetXPForLevel(lvl + 1)

	resp := LevelResponse{
		XP:        xp,
		Level:     lvl,
		LevelXP:   base,
		NextLevel: lvl + 1,
		NextXP:    next,
		XPToNext:  toNext,
	}
	if span := next - base; span > 0 {
		resp.Percentage = math.Round((xp-base)/span*10000) / 100
	}
	return resp
}
