// Package ledger tracks the quests a player has chosen to run and the experience they yield.
package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// FixedDailyBonusXP is the experience granted by one daily challenge.
// Daily challenges are not part of the quest catalog.
const FixedDailyBonusXP = 3700.0

// SuggestedMaxDailyChallenges is the upper bound offered by input widgets.
// Calculations accept larger values.
const SuggestedMaxDailyChallenges = 10

// Selection is an immutable set of quests keyed by Quest.Key.
// The zero value is an empty selection.
type Selection struct {
	quests []domain.Quest
}

// NewSelection toggles each quest in order, so a quest listed twice is not selected
func NewSelection(quests ...domain.Quest) Selection {
	var sel Selection
	for _, q := range quests {
		sel = Toggle(sel, q)
	}
	return sel
}

// Toggle returns a new selection with q added if absent or removed if present.
// sel is never modified.
func Toggle(sel Selection, q domain.Quest) Selection {
	key := q.Key()
	next := make([]domain.Quest, 0, len(sel.quests)+1)
	found := false
	for _, existing := range sel.quests {
		if existing.Key() == key {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, q)
	}
	return Selection{quests: next}
}

// Contains reports whether a quest with the same key is selected
func (s Selection) Contains(q domain.Quest) bool {
	key := q.Key()
	for _, existing := range s.quests {
		if existing.Key() == key {
			return true
		}
	}
	return false
}

// Len returns the number of selected quests
func (s Selection) Len() int {
	return len(s.quests)
}

// Quests returns a copy of the selected quests in selection order
func (s Selection) Quests() []domain.Quest {
	out := make([]domain.Quest, len(s.quests))
	copy(out, s.quests)
	return out
}

// Refs returns references to the selected quests
func (s Selection) Refs() []domain.QuestRef {
	refs := make([]domain.QuestRef, len(s.quests))
	for i, q := range s.quests {
		refs[i] = q.Ref()
	}
	return refs
}

// DailyYield sums the experience of selected daily quests plus the daily challenge bonus.
// Non-numeric or negative challenge counts contribute nothing.
func DailyYield(sel Selection, bonusDailyCount float64) float64 {
	total := sumWhere(sel, true)
	return total + sanitizeCount(bonusDailyCount)*FixedDailyBonusXP
}

// WeeklyYield sums the experience of selected weekly quests
func WeeklyYield(sel Selection) float64 {
	return sumWhere(sel, false)
}

func sumWhere(sel Selection, daily bool) float64 {
	total := 0.0
	for _, q := range sel.quests {
		if q.IsDaily() == daily {
			total += q.XP
		}
	}
	return total
}

// ParseBonusCount reads a daily challenge count typed by a user.
// Anything that is not a finite non-negative number is treated as zero.
func ParseBonusCount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return sanitizeCount(v)
}

func sanitizeCount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Summary aggregates a selection for display
type Summary struct {
	DailyQuests     int     `json:"daily_quests"`
	WeeklyQuests    int     `json:"weekly_quests"`
	DailyChallenges float64 `json:"daily_challenges"`
	DailyXP         float64 `json:"daily_xp"`
	WeeklyXP        float64 `json:"weekly_xp"`
}

// Summarize computes counts and yields for a selection
func Summarize(sel Selection, bonusDailyCount float64) Summary {
	summary := Summary{
		DailyChallenges: sanitizeCount(bonusDailyCount),
		DailyXP:         DailyYield(sel, bonusDailyCount),
		WeeklyXP:        WeeklyYield(sel),
	}
	for _, q := range sel.quests {
		if q.IsDaily() {
			summary.DailyQuests++
		} else {
			summary.WeeklyQuests++
		}
	}
	return summary
}
