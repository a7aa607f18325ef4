package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/catalog"
	"github.com/osse101/QuestPlanner_Go/internal/scheduler"
	"github.com/osse101/QuestPlanner_Go/internal/worker"
)

// Background holds the worker pool and scheduler that keep the catalog warm.
type Background struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// SyncCatalog loads the quest catalog once before the server starts. A failure
// is logged and not returned; requests load the catalog on demand instead.
func SyncCatalog(ctx context.Context, cache *catalog.Cache) {
	slog.Info(LogMsgSyncingCatalog)
	start := time.Now()

	warmCtx, cancel := context.WithTimeout(ctx, CatalogWarmupTimeout)
	defer cancel()

	if err := cache.Refresh(warmCtx, catalog.SourceScheduler); err != nil {
		slog.Warn(LogMsgCatalogSyncFailed, "error", err)
		return
	}

	stats := cache.Stats()
	slog.Info(LogMsgCatalogSynced,
		"cached_at", stats.CatalogCachedAt,
		"duration", time.Since(start))
}

// StartCatalogRefresh runs the catalog refresh job on the worker pool every interval.
func StartCatalogRefresh(cache *catalog.Cache, workers int, interval time.Duration) *Background {
	pool := worker.NewPool(workers, WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameCatalogRefresh, interval, catalog.NewRefreshJob(cache), false)
	slog.Info(LogMsgCatalogRefreshSched, "interval", interval, "workers", workers)

	return &Background{Pool: pool, Scheduler: sched}
}

// Stop stops scheduling and waits for running jobs
func (b *Background) Stop() {
	b.Scheduler.Stop()
	b.Pool.Stop()
}
