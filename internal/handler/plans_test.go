package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// withUsername attaches a chi route context carrying the {username} param
func withUsername(r *http.Request, username string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testPlan() *domain.Plan {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	return &domain.Plan{
		Username:        "Notch",
		TargetLevel:     100,
		DailyChallenges: 3,
		Quests:          []domain.QuestRef{{Game: "Bed Wars", Name: "Daily Win"}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestPlanHandler_HandleGetPlan(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockPlannerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "Success",
			username: "Notch",
			setupMock: func(m *MockPlannerService) {
				m.On("GetPlan", mock.Anything, "Notch").Return(testPlan(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"target_level":100`,
		},
		{
			name:     "Not Found",
			username: "Ghost",
			setupMock: func(m *MockPlannerService) {
				m.On("GetPlan", mock.Anything, "Ghost").Return(nil, domain.ErrPlanNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPlanNotFoundError,
		},
		{
			name:           "Invalid Username",
			username:       "bad name!",
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidUsernameParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPlannerService{}
			tt.setupMock(svc)
			h := NewPlanHandler(svc)

			req := withUsername(httptest.NewRequest("GET", "/api/v1/plans/x", nil), tt.username)
			w := httptest.NewRecorder()

			h.HandleGetPlan(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestPlanHandler_HandleSavePlan(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockPlannerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: `{"target_level":100,"daily_challenges":3,"quests":[{"game":"Bed Wars","name":"Daily Win"}]}`,
			setupMock: func(m *MockPlannerService) {
				m.On("SavePlan", mock.Anything, mock.MatchedBy(func(p domain.Plan) bool {
					return p.Username == "Notch" && p.TargetLevel == 100 && p.DailyChallenges == 3 && len(p.Quests) == 1
				})).Return(testPlan(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"Notch"`,
		},
		{
			name:           "Negative Target",
			body:           `{"target_level":-1}`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"target_level"`,
		},
		{
			name:           "Quest Without Name",
			body:           `{"target_level":5,"quests":[{"game":"Bed Wars"}]}`,
			setupMock:      func(m *MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"quests[0].name"`,
		},
		{
			name: "Unknown Quest",
			body: `{"target_level":5,"quests":[{"game":"Bed Wars","name":"Nope"}]}`,
			setupMock: func(m *MockPlannerService) {
				m.On("SavePlan", mock.Anything, mock.Anything).Return(nil, domain.ErrQuestNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgQuestNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPlannerService{}
			tt.setupMock(svc)
			h := NewPlanHandler(svc)

			req := withUsername(httptest.NewRequest("PUT", "/api/v1/plans/Notch", bytes.NewBufferString(tt.body)), "Notch")
			w := httptest.NewRecorder()

			h.HandleSavePlan(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestPlanHandler_HandleDeletePlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockPlannerService{}
		svc.On("DeletePlan", mock.Anything, "Notch").Return(nil)

		w := httptest.NewRecorder()
		NewPlanHandler(svc).HandleDeletePlan(w, withUsername(httptest.NewRequest("DELETE", "/", nil), "Notch"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgPlanDeletedSuccess)
		svc.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := &MockPlannerService{}
		svc.On("DeletePlan", mock.Anything, "Ghost").Return(domain.ErrPlanNotFound)

		w := httptest.NewRecorder()
		NewPlanHandler(svc).HandleDeletePlan(w, withUsername(httptest.NewRequest("DELETE", "/", nil), "Ghost"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestPlanHandler_HandleProjectPlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockPlannerService{}
		svc.On("ProjectPlan", mock.Anything, "Notch").Return(testReport(), nil)

		w := httptest.NewRecorder()
		NewPlanHandler(svc).HandleProjectPlan(w, withUsername(httptest.NewRequest("GET", "/", nil), "Notch"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"days":3`)
		svc.AssertExpectations(t)
	})

	t.Run("Player Lookup Rate Limited", func(t *testing.T) {
		svc := &MockPlannerService{}
		svc.On("ProjectPlan", mock.Anything, "Notch").Return(nil, domain.ErrUpstreamRateLimited)

		w := httptest.NewRecorder()
		NewPlanHandler(svc).HandleProjectPlan(w, withUsername(httptest.NewRequest("GET", "/", nil), "Notch"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		svc.AssertExpectations(t)
	})
}
