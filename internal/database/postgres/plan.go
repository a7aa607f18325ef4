package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/repository"
)

var _ repository.Plan = (*PlanRepository)(nil)

// PlanRepository implements the plan repository for PostgreSQL
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetPlan loads the plan saved for a username
func (r *PlanRepository) GetPlan(ctx context.Context, username string) (*domain.Plan, error) {
	var (
		plan   domain.Plan
		quests []byte
	)
	err := r.db.QueryRow(ctx, queryGetPlan, domain.NormalizeUsername(username)).Scan(
		&plan.Username, &plan.TargetLevel, &plan.DailyChallenges, &quests, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlan, errors.Join(domain.ErrDatabaseError, err))
	}

	if err := json.Unmarshal(quests, &plan.Quests); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeQuests, err)
	}
	if plan.Quests == nil {
		plan.Quests = []domain.QuestRef{}
	}
	return &plan, nil
}

// UpsertPlan creates or replaces the plan for its username
func (r *PlanRepository) UpsertPlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	key := plan.Key()
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	if plan.Quests == nil {
		plan.Quests = []domain.QuestRef{}
	}

	quests, err := json.Marshal(plan.Quests)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeQuests, err)
	}

	err = r.db.QueryRow(ctx, queryUpsertPlan,
		key, plan.Username, plan.TargetLevel, plan.DailyChallenges, quests,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPlan, errors.Join(domain.ErrDatabaseError, err))
	}
	return &plan, nil
}

// DeletePlan removes the plan for a username
func (r *PlanRepository) DeletePlan(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, queryDeletePlan, domain.NormalizeUsername(username))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePlan, errors.Join(domain.ErrDatabaseError, err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// CountPlans returns the number of saved plans
func (r *PlanRepository) CountPlans(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, queryCountPlans).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountPlans, errors.Join(domain.ErrDatabaseError, err))
	}
	return n, nil
}
