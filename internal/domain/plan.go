package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Plan is a saved set of calculator inputs for a player
type Plan struct {
	Username        string     `json:"username" yaml:"username" validate:"required,min=1,max=16"`
	TargetLevel     int        `json:"target_level" yaml:"target_level" validate:"min=0,max=10000"`
	DailyChallenges float64    `json:"daily_challenges" yaml:"daily_challenges" validate:"min=0,max=1000"`
	Quests          []QuestRef `json:"quests" yaml:"quests" validate:"max=500,dive"`
	CreatedAt       time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time  `json:"updated_at" yaml:"-"`
}

// Key returns the storage key of the plan
func (p Plan) Key() string {
	return NormalizeUsername(p.Username)
}

// NormalizeUsername folds a username for lookups. Minecraft names are case-insensitive.
func NormalizeUsername(username string) string {
	return cases.Fold().String(strings.TrimSpace(username))
}
