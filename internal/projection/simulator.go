// Package projection simulates daily experience gains to find when a target level is reached.
package projection

import (
	"math"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/level"
)

// Input is a snapshot of everything a projection depends on
type Input struct {
	CurrentXP   float64
	TargetLevel int
	DailyXP     float64
	WeeklyXP    float64
	// Start is the first simulated day. Zero means now.
	Start time.Time
}

// Simulator runs projections against a fixed reset calendar.
// It holds no mutable state and is safe for concurrent use.
type Simulator struct {
	cfg Config
	now func() time.Time
}

// Option configures a Simulator
type Option func(*Simulator)

// WithClock overrides the clock used when Input.Start is zero
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

// NewSimulator creates a simulator. Unset config fields fall back to DefaultConfig.
func NewSimulator(cfg Config, opts ...Option) *Simulator {
	def := DefaultConfig()
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = def.MaxDays
	}
	s := &Simulator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the calendar configuration in use
func (s *Simulator) Config() Config {
	return s.cfg
}

// Project advances a virtual calendar one day at a time until the experience for
// in.TargetLevel is exceeded or the day cap is hit.
//
// Negative experience or a negative target level is rejected. A zero target level
// yields OutcomeNoTarget.
func (s *Simulator) Project(in Input) (domain.Projection, error) {
	if err := level.ValidateExperience(in.CurrentXP); err != nil {
		return domain.Projection{}, err
	}
	if err := level.ValidateLevel(in.TargetLevel); err != nil {
		return domain.Projection{}, err
	}

	start := in.Start
	if start.IsZero() {
		start = s.now()
	}
	start = start.In(s.cfg.Location)

	result := domain.Projection{
		Outcome:      domain.OutcomeNoTarget,
		CurrentLevel: level.CalculateLevel(in.CurrentXP),
		TargetLevel:  in.TargetLevel,
		StartDate:    start,
		Milestones:   []domain.Milestone{},
	}
	if in.TargetLevel == 0 {
		return result, nil
	}

	targetXP := level.GetXPForLevel(in.TargetLevel)
	neededXP := targetXP - in.CurrentXP
	if neededXP <= 0 {
		result.Outcome = domain.OutcomeAlreadyReached
		result.CompletionDate = &start
		return result, nil
	}
	result.RequiredXP = neededXP

	daily := finiteOrZero(in.DailyXP)
	weekly := finiteOrZero(in.WeeklyXP)

	remaining := neededXP
	cursor := start
	lastLevel := result.CurrentLevel
	var milestones []domain.Milestone

	days := 0
	for ; days < s.cfg.MaxDays && remaining >= 0; days++ {
		remaining -= daily
		if cursor.Weekday() == s.cfg.ResetWeekday {
			remaining -= weekly
		}
		cursor = cursor.AddDate(0, 0, 1)

		if lvl := level.CalculateLevel(targetXP - remaining); lvl > lastLevel {
			milestones = append(milestones, domain.Milestone{Date: cursor, Level: lvl})
			lastLevel = lvl
		}
	}

	result.Days = days
	if remaining >= 0 {
		result.Outcome = domain.OutcomeUnreachable
		return result, nil
	}

	result.Outcome = domain.OutcomeReached
	result.CompletionDate = &cursor
	if milestones != nil {
		result.Milestones = milestones
	}
	return result, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
