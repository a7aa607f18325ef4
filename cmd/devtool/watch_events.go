package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type WatchEventsCommand struct{}

func (c *WatchEventsCommand) Name() string {
	return "watch-events"
}

func (c *WatchEventsCommand) Description() string {
	return "Trigger a catalog refresh and print the SSE stream [seconds] [types]"
}

func (c *WatchEventsCommand) Run(args []string) error {
	PrintHeader("Watching planner events...")

	duration := 15 * time.Second
	if len(args) > 0 {
		d, err := time.ParseDuration(args[0] + "s")
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[0], err)
		}
		duration = d
	}

	url := apiBaseURL() + "/api/v1/events"
	if len(args) > 1 {
		url += "?types=" + args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream returned %d", resp.StatusCode)
	}
	PrintSuccess("Connected to %s", url)

	go triggerRefresh(ctx)

	scanner := bufio.NewScanner(resp.Body)
	count := 0
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			count++
			PrintInfo("%s", strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			fmt.Println("  " + strings.TrimPrefix(line, "data: "))
		}
	}

	if ctx.Err() == nil {
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	PrintSuccess("Received %d events", count)
	return nil
}

// triggerRefresh asks the service to reload its catalog so a catalog.refreshed event arrives
func triggerRefresh(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL()+"/api/v1/admin/cache/refresh", nil)
	if err != nil {
		return
	}
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		PrintWarning("Refresh trigger failed: %v", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		PrintWarning("Refresh trigger returned %d", resp.StatusCode)
	}
}
