package projection

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // reset time zones must load on hosts without zoneinfo
)

// Defaults for the weekly reset boundary and the simulation window
const (
	DefaultResetWeekday = time.Thursday
	DefaultTimeZone     = "America/New_York"
	DefaultMaxDays      = 10 * 365
)

// Config describes the calendar the simulation runs on
type Config struct {
	// ResetWeekday is the day weekly quest experience is credited
	ResetWeekday time.Weekday
	// Location is the time zone whose calendar days and weekdays are simulated
	Location *time.Location
	// MaxDays caps the number of simulated days
	MaxDays int
}

// DefaultConfig credits weekly experience on Thursdays in US Eastern time
// and simulates at most ten years
func DefaultConfig() Config {
	loc, err := time.LoadLocation(DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}
	return Config{
		ResetWeekday: DefaultResetWeekday,
		Location:     loc,
		MaxDays:      DefaultMaxDays,
	}
}

// NewConfig builds a config from a weekday name and an IANA time zone name
func NewConfig(weekday, timeZone string, maxDays int) (Config, error) {
	wd, err := ParseWeekday(weekday)
	if err != nil {
		return Config{}, err
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid reset time zone %q: %w", timeZone, err)
	}
	if maxDays <= 0 {
		return Config{}, fmt.Errorf("max simulation days must be positive, got %d", maxDays)
	}
	return Config{ResetWeekday: wd, Location: loc, MaxDays: maxDays}, nil
}

// ParseWeekday parses an English weekday name such as "thursday" or "Thu"
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", name)
}
