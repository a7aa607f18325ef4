package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planYAML = `
username: Technoblade
current_xp: 0
target_level: 1
daily_challenges: 1
start: "2026-10-14"
quests:
  - game: Bed Wars
    name: Daily Win
    xp: 5000
    daily: true
  - game: Bed Wars
    name: Weekly Finals
    xp: 20000
    recurrence: weekly
`

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out, fixedClock)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	out, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "Usage: questcalc")

	out, err = runCmd(t, "nope")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, `unknown command "nope"`)

	_, err = runCmd(t, "help")
	assert.NoError(t, err)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"from xp", []string{"-xp", "10000"}, []string{"is level 1", "to level 2"}},
		{"from level", []string{"-level", "2"}, []string{"Level 2 requires", "22,500"}},
		{"level zero", []string{"-level", "0"}, []string{"Level 0 requires 0 XP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, append([]string{"level"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}

	t.Run("no flags", func(t *testing.T) {
		_, err := runCmd(t, "level")
		assert.ErrorIs(t, err, errUsage)
	})
}

func TestProject_FromFlags(t *testing.T) {
	out, err := runCmd(t, "project", "-xp", "0", "-target", "1", "-daily", "5000")
	require.NoError(t, err)

	assert.Contains(t, out, "Current level: 0")
	assert.Contains(t, out, "reached on 2026-10-17 after 3 days")
	assert.Contains(t, out, "2026-10-17  level 1")
}

func TestProject_FromPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(planYAML), 0o600))

	out, err := runCmd(t, "project", "-plan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Daily XP:      8,700")
	assert.Contains(t, out, "Weekly XP:     20,000")
	assert.Contains(t, out, "reached on 2026-10-16 after 2 days")

	t.Run("challenge override", func(t *testing.T) {
		out, err := runCmd(t, "project", "-plan", path, "-challenges", "abc")
		require.NoError(t, err)
		assert.Contains(t, out, "Daily XP:      5,000")
	})
}

func TestProject_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no target", []string{"-xp", "100"}, "No target level set"},
		{"already reached", []string{"-xp", "50000", "-target", "2"}, "Level 2 already reached"},
		{"no yield", []string{"-xp", "0", "-target", "5"}, "Level 5 is not reachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, append([]string{"project"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestProject_Errors(t *testing.T) {
	_, err := runCmd(t, "project", "-plan", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runCmd(t, "project", "-reset-day", "someday")
	assert.Error(t, err)
}
