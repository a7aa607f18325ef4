// Command questcalc projects network level progression offline, from a plan file
// or from flags, without calling the Hypixel API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/ledger"
	"github.com/osse101/QuestPlanner_Go/internal/level"
	"github.com/osse101/QuestPlanner_Go/internal/planfile"
	"github.com/osse101/QuestPlanner_Go/internal/projection"
)

const usage = `Usage: questcalc <command> [flags]

Commands:
  project   Project the date a target level is reached
  level     Convert between experience and network level

Run 'questcalc <command> -h' for command flags.
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	p := message.NewPrinter(language.English)
	switch args[0] {
	case "project":
		return runProject(args[1:], out, p, now)
	case "level":
		return runLevel(args[1:], out, p)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprintf(out, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func runProject(args []string, out io.Writer, p *message.Printer, now func() time.Time) error {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	fs.SetOutput(out)
	planPath := fs.String("plan", "", "plan file (YAML or JSON)")
	xp := fs.Float64("xp", -1, "current network experience; overrides the plan file")
	target := fs.Int("target", -1, "target level; overrides the plan file")
	daily := fs.Float64("daily", 0, "daily quest experience, used without a plan file")
	weekly := fs.Float64("weekly", 0, "weekly quest experience, used without a plan file")
	challenges := fs.String("challenges", "", "bonus daily challenges per day; overrides the plan file")
	weekday := fs.String("reset-day", projection.DefaultResetWeekday.String(), "weekday weekly quests reset")
	tz := fs.String("tz", projection.DefaultTimeZone, "time zone of the reset calendar")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := projection.NewConfig(*weekday, *tz, projection.DefaultMaxDays)
	if err != nil {
		return err
	}

	var in projection.Input
	var summary ledger.Summary
	if *planPath != "" {
		f, err := planfile.Load(*planPath)
		if err != nil {
			return err
		}
		bonus := f.DailyChallenges
		if *challenges != "" {
			bonus = ledger.ParseBonusCount(*challenges)
		}
		summary = ledger.Summarize(f.Selection(), bonus)
		if f.CurrentXP != nil {
			in.CurrentXP = *f.CurrentXP
		}
		in.TargetLevel = f.TargetLevel
		if in.Start, err = f.StartDate(cfg.Location); err != nil {
			return err
		}
	} else {
		summary = ledger.Summarize(ledger.NewSelection(), ledger.ParseBonusCount(*challenges))
		summary.DailyXP += max(*daily, 0)
		summary.WeeklyXP += max(*weekly, 0)
	}
	if *xp >= 0 {
		in.CurrentXP = *xp
	}
	if *target >= 0 {
		in.TargetLevel = *target
	}
	in.DailyXP = summary.DailyXP
	in.WeeklyXP = summary.WeeklyXP

	result, err := projection.NewSimulator(cfg, projection.WithClock(now)).Project(in)
	if err != nil {
		return err
	}
	printProjection(out, p, summary, result)
	return nil
}

func printProjection(out io.Writer, p *message.Printer, summary ledger.Summary, result domain.Projection) {
	fmt.Fprintln(out, p.Sprintf("Daily XP:      %.0f", summary.DailyXP))
	fmt.Fprintln(out, p.Sprintf("Weekly XP:     %.0f", summary.WeeklyXP))
	fmt.Fprintln(out, p.Sprintf("Current level: %d", result.CurrentLevel))

	switch result.Outcome {
	case domain.OutcomeNoTarget:
		fmt.Fprintln(out, "No target level set")
	case domain.OutcomeAlreadyReached:
		fmt.Fprintln(out, p.Sprintf("Level %d already reached", result.TargetLevel))
	case domain.OutcomeUnreachable:
		fmt.Fprintln(out, p.Sprintf("Level %d is not reachable with this selection", result.TargetLevel))
	case domain.OutcomeReached:
		fmt.Fprintln(out, p.Sprintf("Level %d (%.0f XP) reached on %s after %d days",
			result.TargetLevel, result.RequiredXP, result.CompletionDate.Format(time.DateOnly), result.Days))
		if len(result.Milestones) > 0 {
			fmt.Fprintln(out, "Milestones:")
			for _, m := range result.Milestones {
				fmt.Fprintln(out, p.Sprintf("  %s  level %d", m.Date.Format(time.DateOnly), m.Level))
			}
		}
	}
}

func runLevel(args []string, out io.Writer, p *message.Printer) error {
	fs := flag.NewFlagSet("level", flag.ContinueOnError)
	fs.SetOutput(out)
	xp := fs.Float64("xp", -1, "experience to convert to a level")
	lvl := fs.Int("level", -1, "level to convert to experience")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *xp >= 0:
		current, toNext := level.GetXPProgress(*xp)
		fmt.Fprintln(out, p.Sprintf("%.0f XP is level %d, %.0f XP to level %d", *xp, current, toNext, current+1))
	case *lvl >= 0:
		fmt.Fprintln(out, p.Sprintf("Level %d requires %.0f XP", *lvl, level.GetXPForLevel(*lvl)))
	default:
		fmt.Fprintln(out, "one of -xp or -level is required")
		fs.PrintDefaults()
		return errUsage
	}
	return nil
}
