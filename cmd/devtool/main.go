// Command devtool bundles developer tasks: migrations, database and service checks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry(
		&CheckDBCommand{},
		&MigrateCommand{},
		&HealthCheckCommand{},
		&WatchEventsCommand{},
		&DeadLettersCommand{},
	)

	if len(os.Args) < 2 {
		registry.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}

// getEnv reads an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// apiBaseURL is the running service devtool talks to
func apiBaseURL() string {
	return getEnv("API_URL", fmt.Sprintf("http://localhost:%s", getEnv("PORT", "8080")))
}
