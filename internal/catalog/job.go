package catalog

import "context"

// RefreshJob reloads the catalog on a schedule so requests rarely pay for a miss
type RefreshJob struct {
	cache *Cache
}

// NewRefreshJob creates a refresh job for the scheduler
func NewRefreshJob(cache *Cache) *RefreshJob {
	return &RefreshJob{cache: cache}
}

// Process implements worker.Job
func (j *RefreshJob) Process(ctx context.Context) error {
	return j.cache.Refresh(ctx, SourceScheduler)
}
