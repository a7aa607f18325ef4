package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/ledger"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

func testReport() *planner.Report {
	completed := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	return &planner.Report{
		CurrentXP: 0,
		Quests:    []domain.Quest{},
		Summary:   ledger.Summary{DailyXP: ledger.FixedDailyBonusXP, DailyChallenges: 1},
		Projection: domain.Projection{
			Outcome:        domain.OutcomeReached,
			TargetLevel:    1,
			RequiredXP:     10000,
			CompletionDate: &completed,
			Days:           3,
			Milestones:     []domain.Milestone{{Date: completed, Level: 1}},
		},
	}
}

func TestHandleProjection(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockPlannerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success With Lenient Numbers",
			body: `{"current_xp":0,"target_level":"1","daily_challenges":1}`,
			setupMock: func(m *MockPlannerService) {
				m.On("Project", mock.Anything, mock.MatchedBy(func(req planner.ProjectionRequest) bool {
					return req.TargetLevel == "1" && req.DailyChallenges == "1" && *req.CurrentXP == 0
				})).Return(testReport(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"outcome":"reached"`,
		},
		{
			name:           "Malformed JSON",
			body:           `{"target_level":`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Target Level Object",
			body:           `{"current_xp":0,"target_level":{}}`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Negative Current XP",
			body:           `{"current_xp":-5,"target_level":1}`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"current_xp"`,
		},
		{
			name:           "Username Too Long",
			body:           `{"username":"` + strings.Repeat("a", 17) + `","target_level":1}`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"username"`,
		},
		{
			name: "Quest Not Found",
			body: `{"current_xp":0,"target_level":1,"quests":[{"game":"Bed Wars","name":"Nope"}]}`,
			setupMock: func(m *MockPlannerService) {
				m.On("Project", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: Bed Wars/Nope", domain.ErrQuestNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgQuestNotFoundError,
		},
		{
			name: "Missing Experience Source",
			body: `{"target_level":1}`,
			setupMock: func(m *MockPlannerService) {
				m.On("Project", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: username or current_xp is required", domain.ErrInvalidInput))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
		{
			name: "Database Error Hidden",
			body: `{"current_xp":0,"target_level":1}`,
			setupMock: func(m *MockPlannerService) {
				m.On("Project", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: connection reset by peer 10.0.0.5", domain.ErrDatabaseError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPlannerService{}
			tt.setupMock(svc)

			req := httptest.NewRequest("POST", "/api/v1/projection", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			HandleProjection(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "10.0.0.5")
			svc.AssertExpectations(t)
		})
	}
}
