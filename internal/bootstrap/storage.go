package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestPlanner_Go/internal/config"
	"github.com/osse101/QuestPlanner_Go/internal/database"
	"github.com/osse101/QuestPlanner_Go/internal/database/postgres"
	"github.com/osse101/QuestPlanner_Go/internal/memory"
	"github.com/osse101/QuestPlanner_Go/internal/repository"
)

// Storage is the selected plan repository and, for PostgreSQL, its pool.
type Storage struct {
	Plans repository.Plan
	// Pool is nil for in-memory storage
	Pool *pgxpool.Pool
}

// ReadinessPool returns the pool for readiness checks as an untyped nil when
// plans live in memory.
func (s *Storage) ReadinessPool() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// InitializeStorage connects to PostgreSQL and applies migrations when a
// database is configured, and falls back to the in-memory repository otherwise.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if !cfg.DatabaseEnabled() {
		slog.Warn(LogMsgUsingMemory)
		return &Storage{Plans: memory.NewPlanRepository()}, nil
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBConnMaxIdle, cfg.DBConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, MigrationTimeout)
	defer cancel()
	if err := database.Migrate(migrateCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	slog.Info(LogMsgUsingPostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return &Storage{
		Plans: postgres.NewPlanRepository(pool),
		Pool:  pool,
	}, nil
}
