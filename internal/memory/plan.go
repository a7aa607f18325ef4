// Package memory provides in-process repositories used when no database is configured.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/repository"
)

var _ repository.Plan = (*PlanRepository)(nil)

// PlanRepository stores plans in a map
type PlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.Plan
	now   func() time.Time
}

// NewPlanRepository creates an empty repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{
		plans: make(map[string]domain.Plan),
		now:   time.Now,
	}
}

// GetPlan returns a copy of the stored plan
func (r *PlanRepository) GetPlan(_ context.Context, username string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[domain.NormalizeUsername(username)]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return clonePlan(p), nil
}

// UpsertPlan stores the plan, keeping the original creation time on replace
func (r *PlanRepository) UpsertPlan(_ context.Context, plan domain.Plan) (*domain.Plan, error) {
	key := plan.Key()
	if key == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	plan.Quests = slices.Clone(plan.Quests)
	plan.CreatedAt = now
	if existing, ok := r.plans[key]; ok {
		plan.CreatedAt = existing.CreatedAt
	}
	plan.UpdatedAt = now
	r.plans[key] = plan

	return clonePlan(plan), nil
}

// DeletePlan removes the plan
func (r *PlanRepository) DeletePlan(_ context.Context, username string) error {
	key := domain.NormalizeUsername(username)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[key]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.plans, key)
	return nil
}

// CountPlans returns the number of stored plans
func (r *PlanRepository) CountPlans(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plans), nil
}

func clonePlan(p domain.Plan) *domain.Plan {
	p.Quests = slices.Clone(p.Quests)
	if p.Quests == nil {
		p.Quests = []domain.QuestRef{}
	}
	return &p
}
