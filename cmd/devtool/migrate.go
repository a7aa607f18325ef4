package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestPlanner_Go/internal/config"
	"github.com/osse101/QuestPlanner_Go/internal/database"
)

const migrateTimeout = 2 * time.Minute

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply, roll back or list embedded migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	pool, err := connect()
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Schema up to date")
	case "down":
		PrintHeader("Rolling back last migration")
		if err := database.RollbackLast(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Rolled back")
	case "status":
		PrintHeader("Migration status")
		states, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		for _, s := range states {
			if s.Applied {
				PrintSuccess("%05d %s (applied %s)", s.Version, s.File, s.AppliedAt.Format(time.RFC3339))
			} else {
				PrintWarning("%05d %s (pending)", s.Version, s.File)
			}
		}
	default:
		return fmt.Errorf("unknown subcommand %q: want up, down or status", args[0])
	}
	return nil
}

// connect opens a small pool using the service's DB_* settings
func connect() (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.DatabaseEnabled() {
		return nil, fmt.Errorf("DB_HOST is not set")
	}
	return database.NewPool(cfg.GetDBConnString(), 2, time.Minute, 10*time.Minute)
}
