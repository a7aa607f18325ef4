package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestPlanner_Go/internal/catalog"
	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

// MockPlannerService mocks planner.Service
type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) GetCatalog(ctx context.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Game), args.Error(1)
}

func (m *MockPlannerService) GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerProgress), args.Error(1)
}

func (m *MockPlannerService) Project(ctx context.Context, req planner.ProjectionRequest) (*planner.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.Report), args.Error(1)
}

func (m *MockPlannerService) SavePlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlannerService) GetPlan(ctx context.Context, username string) (*domain.Plan, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlannerService) DeletePlan(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockPlannerService) ProjectPlan(ctx context.Context, username string) (*planner.Report, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.Report), args.Error(1)
}

// MockCacheAdmin mocks CacheAdmin
type MockCacheAdmin struct {
	mock.Mock
}

func (m *MockCacheAdmin) Stats() catalog.Stats {
	args := m.Called()
	return args.Get(0).(catalog.Stats)
}

func (m *MockCacheAdmin) Refresh(ctx context.Context, source string) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockCacheAdmin) Clear() {
	m.Called()
}
