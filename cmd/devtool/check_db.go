package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Wait until the configured database accepts connections [attempts]"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking database...")

	maxAttempts := 30
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("attempts must be a positive integer, got %q", args[0])
		}
		maxAttempts = n
	}
	retryInterval := 2 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := connect()
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = pool.Ping(ctx)
			cancel()
			pool.Close()
			if err == nil {
				PrintSuccess("Database is ready")
				return nil
			}
		}
		lastErr = err

		fmt.Printf("Database not ready (%d/%d): %v\n", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(retryInterval)
		}
	}

	return fmt.Errorf("database not ready after %d attempts: %w", maxAttempts, lastErr)
}
