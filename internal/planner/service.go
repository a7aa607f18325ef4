// Package planner combines the quest catalog, the ledger and the simulator into projections.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/event"
	"github.com/osse101/QuestPlanner_Go/internal/ledger"
	"github.com/osse101/QuestPlanner_Go/internal/level"
	"github.com/osse101/QuestPlanner_Go/internal/logger"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
	"github.com/osse101/QuestPlanner_Go/internal/projection"
	"github.com/osse101/QuestPlanner_Go/internal/repository"
	"github.com/osse101/QuestPlanner_Go/internal/telemetry"
)

// Catalog supplies quests and player snapshots
type Catalog interface {
	GetQuests(ctx context.Context) ([]domain.Game, error)
	GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error)
}

// Service defines the planner operations
type Service interface {
	GetCatalog(ctx context.Context) ([]domain.Game, error)
	GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error)
	Project(ctx context.Context, req ProjectionRequest) (*Report, error)
	SavePlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error)
	GetPlan(ctx context.Context, username string) (*domain.Plan, error)
	DeletePlan(ctx context.Context, username string) error
	ProjectPlan(ctx context.Context, username string) (*Report, error)
}

// Report is a projection together with the inputs it was derived from
type Report struct {
	Player     *domain.PlayerProgress `json:"player,omitempty"`
	CurrentXP  float64                `json:"current_xp"`
	Quests     []domain.Quest         `json:"quests"`
	Summary    ledger.Summary         `json:"summary"`
	Projection domain.Projection      `json:"projection"`
}

type service struct {
	catalog   Catalog
	plans     repository.Plan
	simulator *projection.Simulator
	publisher event.Publisher
	tracer    trace.Tracer
}

// NewService creates a planner. publisher may be nil.
func NewService(catalog Catalog, plans repository.Plan, simulator *projection.Simulator, publisher event.Publisher) Service {
	return &service{
		catalog:   catalog,
		plans:     plans,
		simulator: simulator,
		publisher: publisher,
		tracer:    telemetry.Tracer(),
	}
}

// GetCatalog returns every game with its quests
func (s *service) GetCatalog(ctx context.Context) ([]domain.Game, error) {
	games, err := s.catalog.GetQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadCatalog, err)
	}
	return games, nil
}

// GetPlayer returns the player's current progress
func (s *service) GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	player, err := s.catalog.GetPlayer(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadPlayer, err)
	}
	return player, nil
}

// Project resolves the request against the catalog and simulates progression
func (s *service) Project(ctx context.Context, req ProjectionRequest) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, SpanProject, trace.WithAttributes(
		attribute.String(AttrUsername, req.Username),
		attribute.Int(AttrQuestCount, len(req.Quests)),
	))
	defer span.End()

	report, err := s.project(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int(AttrTargetLevel, report.Projection.TargetLevel),
		attribute.String(AttrOutcome, string(report.Projection.Outcome)),
		attribute.Int(AttrDays, report.Projection.Days),
	)
	return report, nil
}

func (s *service) project(ctx context.Context, req ProjectionRequest) (*Report, error) {
	log := logger.FromContext(ctx)
	report := &Report{}

	switch {
	case req.CurrentXP != nil:
		report.CurrentXP = *req.CurrentXP
	case strings.TrimSpace(req.Username) != "":
		player, err := s.GetPlayer(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		report.Player = player
		report.CurrentXP = player.XP
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgExperienceSourceRequired)
	}

	quests, err := s.resolveQuests(ctx, req.Quests)
	if err != nil {
		return nil, err
	}

	sel := ledger.NewSelection(quests...)
	report.Quests = sel.Quests()
	report.Summary = ledger.Summarize(sel, ledger.ParseBonusCount(string(req.DailyChallenges)))

	in := projection.Input{
		CurrentXP:   report.CurrentXP,
		TargetLevel: level.ParseLevel(string(req.TargetLevel)),
		DailyXP:     report.Summary.DailyXP,
		WeeklyXP:    report.Summary.WeeklyXP,
	}
	if req.Start != nil {
		in.Start = *req.Start
	}

	started := time.Now()
	report.Projection, err = s.simulator.Project(in)
	metrics.ProjectionDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToProject, errors.Join(domain.ErrInvalidInput, err))
	}
	metrics.SelectedQuests.Observe(float64(sel.Len()))

	log.Debug(LogMsgProjectionComputed,
		"outcome", report.Projection.Outcome,
		"target_level", report.Projection.TargetLevel,
		"days", report.Projection.Days)

	s.publish(ctx, event.NewProjectionComputedEvent(req.Username, report.Projection, report.Summary.DailyXP, report.Summary.WeeklyXP))
	return report, nil
}

// resolveQuests maps references onto catalog quests. The catalog is only fetched
// when there is something to resolve.
func (s *service) resolveQuests(ctx context.Context, refs []domain.QuestRef) ([]domain.Quest, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	ctx, span := s.tracer.Start(ctx, SpanResolve)
	defer span.End()

	games, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	quests := make([]domain.Quest, 0, len(refs))
	for _, ref := range refs {
		q, ok := domain.FindQuest(games, ref)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, ref.Key())
		}
		quests = append(quests, q)
	}
	return quests, nil
}

// SavePlan stores the plan. Quest references are checked against the catalog when it is reachable.
func (s *service) SavePlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	ctx, span := s.tracer.Start(ctx, SpanSavePlan, trace.WithAttributes(
		attribute.String(AttrUsername, plan.Username),
		attribute.Int(AttrQuestCount, len(plan.Quests)),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	plan.Username = strings.TrimSpace(plan.Username)
	if plan.Username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	if plan.TargetLevel < 0 || plan.DailyChallenges < 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.resolveQuests(ctx, plan.Quests); err != nil {
		if errors.Is(err, domain.ErrQuestNotFound) {
			return nil, err
		}
		log.Warn(LogMsgPlanCatalogCheckSkip, "username", plan.Username, "error", err)
	}

	saved, err := s.plans.UpsertPlan(ctx, plan)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	log.Info(LogMsgPlanSaved, "username", saved.Username, "quests", len(saved.Quests))
	s.publish(ctx, event.NewPlanSavedEvent(*saved))
	return saved, nil
}

// GetPlan returns the plan saved for username
func (s *service) GetPlan(ctx context.Context, username string) (*domain.Plan, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	return s.plans.GetPlan(ctx, username)
}

// DeletePlan removes the plan saved for username
func (s *service) DeletePlan(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	if err := s.plans.DeletePlan(ctx, username); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgPlanDeleted, "username", username)
	s.publish(ctx, event.NewPlanDeletedEvent(username))
	return nil
}

// ProjectPlan projects a saved plan from the player's current profile
func (s *service) ProjectPlan(ctx context.Context, username string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, SpanProjectPlan, trace.WithAttributes(
		attribute.String(AttrUsername, username),
	))
	defer span.End()

	plan, err := s.GetPlan(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.Project(ctx, ProjectionRequest{
		Username:        plan.Username,
		TargetLevel:     IntInput(plan.TargetLevel),
		DailyChallenges: FloatInput(plan.DailyChallenges),
		Quests:          plan.Quests,
	})
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}
