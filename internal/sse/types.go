package sse

import "github.com/osse101/QuestPlanner_Go/internal/domain"

// PlanChangedPayload is sent when a plan is saved or deleted
type PlanChangedPayload struct {
	Username    string `json:"username"`
	TargetLevel int    `json:"target_level,omitempty"`
	QuestCount  int    `json:"quest_count,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
}

// CatalogRefreshedPayload is sent after the quest catalog was reloaded
type CatalogRefreshedPayload struct {
	Games  int    `json:"games"`
	Quests int    `json:"quests"`
	Source string `json:"source,omitempty"`
}

// ProjectionPayload is sent for every finished projection
type ProjectionPayload struct {
	Username    string         `json:"username,omitempty"`
	Outcome     domain.Outcome `json:"outcome"`
	TargetLevel int            `json:"target_level"`
	Days        int            `json:"days"`
}
