package domain

// PlayerProgress is a read-only snapshot of a player's network experience
type PlayerProgress struct {
	UUID            string  `json:"uuid"`
	Username        string  `json:"username"`
	XP              float64 `json:"xp"`
	QuestsCompleted int     `json:"quests_completed"`
	Level           int     `json:"level"`
}
