package domain

import (
	"encoding/json"
	"sort"
)

// Recurrence describes how often a quest can be completed
type Recurrence string

const (
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Quest is a catalog-defined repeatable objective.
// Quests are immutable once a catalog has been built.
type Quest struct {
	Game        string     `json:"game,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	XP          float64    `json:"xp"`
	Recurrence  Recurrence `json:"recurrence"`
}

// questJSON adds the boolean daily flag the web frontend reads
type questJSON struct {
	Game        string     `json:"game,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	XP          float64    `json:"xp"`
	Recurrence  Recurrence `json:"recurrence"`
	Daily       bool       `json:"daily"`
}

// NewQuest builds a quest
func NewQuest(game, name, description string, xp float64, recurrence Recurrence) Quest {
	return Quest{
		Game:        game,
		Name:        name,
		Description: description,
		XP:          xp,
		Recurrence:  recurrence,
	}
}

// MarshalJSON implements json.Marshaler
func (q Quest) MarshalJSON() ([]byte, error) {
	return json.Marshal(questJSON{
		Game:        q.Game,
		Name:        q.Name,
		Description: q.Description,
		XP:          q.XP,
		Recurrence:  q.Recurrence,
		Daily:       q.IsDaily(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Payloads that only carry the daily
// flag are mapped onto a recurrence.
func (q *Quest) UnmarshalJSON(data []byte) error {
	var raw questJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	recurrence := raw.Recurrence
	if recurrence == "" {
		recurrence = RecurrenceWeekly
		if raw.Daily {
			recurrence = RecurrenceDaily
		}
	}
	*q = NewQuest(raw.Game, raw.Name, raw.Description, raw.XP, recurrence)
	return nil
}

// Key identifies the quest inside a selection. Names are only unique within a game,
// so the owning game is part of the key when known.
func (q Quest) Key() string {
	return QuestRef{Game: q.Game, Name: q.Name}.Key()
}

// IsDaily reports whether the quest resets every day
func (q Quest) IsDaily() bool {
	return q.Recurrence == RecurrenceDaily
}

// Ref returns the reference used to persist or transmit the quest
func (q Quest) Ref() QuestRef {
	return QuestRef{Game: q.Game, Name: q.Name}
}

// QuestRef points to a quest in the catalog by identity
type QuestRef struct {
	Game string `json:"game" yaml:"game" validate:"max=100"`
	Name string `json:"name" yaml:"name" validate:"required,max=200"`
}

// Key returns the selection key for the reference
func (r QuestRef) Key() string {
	if r.Game == "" {
		return r.Name
	}
	return r.Game + QuestKeySeparator + r.Name
}

// Game is a named grouping of quests
type Game struct {
	Name   string  `json:"name"`
	Quests []Quest `json:"quests"`
}

// NewGame stamps the game name onto every quest and orders quests by name
func NewGame(name string, quests []Quest) Game {
	owned := make([]Quest, len(quests))
	for i, q := range quests {
		q.Game = name
		owned[i] = q
	}
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })
	return Game{Name: name, Quests: owned}
}

// FindQuest looks up a quest by reference across all games.
// A reference without a game matches the first quest with that name.
func FindQuest(games []Game, ref QuestRef) (Quest, bool) {
	for _, g := range games {
		if ref.Game != "" && g.Name != ref.Game {
			continue
		}
		for _, q := range g.Quests {
			if q.Name == ref.Name {
				return q, true
			}
		}
	}
	return Quest{}, false
}
