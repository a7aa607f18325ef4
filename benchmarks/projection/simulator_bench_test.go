package projection_bench

import (
	"fmt"
	"testing"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/ledger"
	"github.com/osse101/QuestPlanner_Go/internal/level"
	"github.com/osse101/QuestPlanner_Go/internal/projection"
)

var start = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// catalogSelection builds a selection the size of a full network catalog
func catalogSelection(games, perGame int) ledger.Selection {
	quests := make([]domain.Quest, 0, games*perGame)
	for g := 0; g < games; g++ {
		for q := 0; q < perGame; q++ {
			rec := domain.RecurrenceDaily
			if q%3 == 0 {
				rec = domain.RecurrenceWeekly
			}
			quests = append(quests, domain.NewQuest(
				fmt.Sprintf("Game %d", g), fmt.Sprintf("Quest %d", q), "", 2500, rec))
		}
	}
	return ledger.NewSelection(quests...)
}

func BenchmarkProject_TypicalPlan(b *testing.B) {
	sim := projection.NewSimulator(projection.DefaultConfig())
	sel := catalogSelection(5, 4)
	in := projection.Input{
		CurrentXP:   1_500_000,
		TargetLevel: 250,
		DailyXP:     ledger.DailyYield(sel, 3),
		WeeklyXP:    ledger.WeeklyYield(sel),
		Start:       start,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sim.Project(in); err != nil {
			b.Fatal(err)
		}
	}
}

// Low yield runs the simulation to the day cap
func BenchmarkProject_Unreachable(b *testing.B) {
	sim := projection.NewSimulator(projection.DefaultConfig())
	in := projection.Input{
		TargetLevel: 10_000,
		DailyXP:     1,
		Start:       start,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sim.Project(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSummarize_FullCatalog(b *testing.B) {
	sel := catalogSelection(30, 12)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ledger.Summarize(sel, 3)
	}
}

func BenchmarkCalculateLevel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = level.CalculateLevel(float64(i % 50_000_000))
	}
}
