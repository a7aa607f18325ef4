package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// NumberInput is a number typed into a form. It accepts a JSON number or string and
// keeps the raw text so lenient parsing can happen later.
type NumberInput string

// UnmarshalJSON implements json.Unmarshaler
func (n *NumberInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberInput(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*n = NumberInput(data)
	default:
		return errors.New(ErrMsgInvalidNumberInput)
	}
	return nil
}

// IntInput formats an integer as a NumberInput
func IntInput(v int) NumberInput {
	return NumberInput(strconv.Itoa(v))
}

// FloatInput formats a float as a NumberInput
func FloatInput(v float64) NumberInput {
	return NumberInput(strconv.FormatFloat(v, 'f', -1, 64))
}

// ProjectionRequest carries calculator inputs. Current experience is taken from
// CurrentXP when set, otherwise from the named player's profile.
type ProjectionRequest struct {
	Username        string            `json:"username,omitempty" validate:"omitempty,max=16"`
	CurrentXP       *float64          `json:"current_xp,omitempty" validate:"omitempty,min=0"`
	TargetLevel     NumberInput       `json:"target_level" swaggertype:"string"`
	DailyChallenges NumberInput       `json:"daily_challenges" swaggertype:"string"`
	Quests          []domain.QuestRef `json:"quests" validate:"max=500,dive"`
	// Start overrides the first simulated day
	Start *time.Time `json:"start,omitempty"`
}
