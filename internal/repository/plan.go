package repository

import (
	"context"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// Plan persists saved calculator inputs. Implementations key plans by domain.NormalizeUsername
// and return domain.ErrPlanNotFound for unknown usernames.
type Plan interface {
	GetPlan(ctx context.Context, username string) (*domain.Plan, error)
	// UpsertPlan creates or replaces the plan and returns the stored copy with timestamps set
	UpsertPlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error)
	DeletePlan(ctx context.Context, username string) error
	CountPlans(ctx context.Context) (int, error)
}
