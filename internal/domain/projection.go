package domain

import "time"

// Outcome classifies a projection result
type Outcome string

const (
	// OutcomeNoTarget means no target level was supplied
	OutcomeNoTarget Outcome = "no_target"
	// OutcomeAlreadyReached means the player already has the experience for the target
	OutcomeAlreadyReached Outcome = "already_reached"
	// OutcomeReached means the simulation found a completion date
	OutcomeReached Outcome = "reached"
	// OutcomeUnreachable means the yields cannot reach the target within the simulation window
	OutcomeUnreachable Outcome = "unreachable"
)

// Milestone marks the day a new level is reached. Field names match the chart series format.
type Milestone struct {
	Date  time.Time `json:"x"`
	Level int       `json:"y"`
}

// Projection is the result of simulating progression towards a target level
type Projection struct {
	Outcome        Outcome     `json:"outcome"`
	CurrentLevel   int         `json:"current_level"`
	TargetLevel    int         `json:"target_level"`
	RequiredXP     float64     `json:"required_xp"`
	StartDate      time.Time   `json:"start_date"`
	CompletionDate *time.Time  `json:"completion_date,omitempty"`
	Days           int         `json:"days"`
	Milestones     []Milestone `json:"milestones"`
}

// Reached reports whether the projection has a completion date
func (p Projection) Reached() bool {
	return p.Outcome == OutcomeReached || p.Outcome == OutcomeAlreadyReached
}
