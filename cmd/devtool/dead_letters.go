package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/event"
)

type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "dead-letters"
}

func (c *DeadLettersCommand) Description() string {
	return "Summarize events the publisher gave up on [path]"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path := getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl")
	if len(args) > 0 {
		path = args[0]
	}
	PrintHeader("Dead letters in " + path)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		PrintSuccess("No dead-letter log, nothing was dropped")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintSuccess("Dead-letter log is empty")
		return nil
	}

	byType := make(map[event.Type]int)
	for _, e := range entries {
		byType[e.Event.Type]++
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	PrintWarning("%d undelivered events", len(entries))
	for _, t := range types {
		fmt.Printf("  %-22s %d\n", t, byType[event.Type(t)])
	}

	last := entries[len(entries)-1]
	fmt.Printf("Latest: %s %s after %d attempts: %s\n",
		last.Timestamp.Format(time.RFC3339), last.Event.Type, last.Attempts, last.LastError)
	return nil
}
