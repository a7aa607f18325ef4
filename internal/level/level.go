// Package level converts between cumulative network experience and network level.
//
// Level 0 starts at 0 experience and level 1 requires 10,000. The forward and inverse
// formulas agree exactly at every integer level boundary.
package level

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// CalculateLevel returns the level attained with xp cumulative experience.
// Non-positive and NaN input is level 0.
func CalculateLevel(xp float64) int {
	if math.IsNaN(xp) || xp <= 0 {
		return 0
	}

	f := math.Floor(math.Sqrt(xp/XPPerLevelSquared+curveOffset) - curveShift)
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	lvl := int(f)

	// Rounding in sqrt must never promote a level before its threshold is met
	for lvl > 0 && GetXPForLevel(lvl) > xp {
		lvl--
	}
	for GetXPForLevel(lvl+1) <= xp {
		lvl++
	}
	return lvl
}

// GetXPForLevel returns the minimum cumulative experience required to reach level
func GetXPForLevel(level int) float64 {
	if level <= 0 {
		return 0
	}
	l := float64(level)
	return l * (XPPerLevelSquared*l + XPLinearTerm)
}

// GetXPProgress returns current level and XP needed for next level
func GetXPProgress(xp float64) (currentLevel int, xpToNext float64) {
	currentLevel = CalculateLevel(xp)
	if xp < 0 || math.IsNaN(xp) {
		xp = 0
	}
	xpToNext = GetXPForLevel(currentLevel+1) - xp
	return
}

// ValidateExperience rejects experience totals the converter has no meaning for
func ValidateExperience(xp float64) error {
	if math.IsNaN(xp) || math.IsInf(xp, 0) || xp < 0 {
		return fmt.Errorf("%w: got %v", domain.ErrNegativeExperience, xp)
	}
	return nil
}

// ValidateLevel rejects negative levels
func ValidateLevel(level int) error {
	if level < 0 {
		return fmt.Errorf("%w: got %d", domain.ErrNegativeLevel, level)
	}
	return nil
}

// ParseLevel reads a target level typed by a user. Fractions are truncated and
// anything that is not a non-negative number is treated as zero.
func ParseLevel(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
