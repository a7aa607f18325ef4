package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/worker"
)

// Enqueuer accepts jobs for execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler enqueues jobs on fixed intervals
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval.
// With runNow the job is also enqueued immediately, e.g. to warm caches at startup.
// A tick is skipped when the pool queue is full.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, runNow bool) {
	if runNow {
		s.enqueue(name, job)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()

	slog.Info(LogMsgJobScheduled, "job", name, "interval", interval, "run_now", runNow)
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.pool.Enqueue(job) {
		slog.Warn(LogMsgTickSkipped, "job", name)
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
