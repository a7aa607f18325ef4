package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/database"
)

// readinessTimeout bounds the database ping
const readinessTimeout = 2 * time.Second

// Storage backends reported by /readyz
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status  string  `json:"status"`
	Storage string  `json:"storage,omitempty"`
	PingMS  float64 `json:"ping_ms,omitempty"`
	Message string  `json:"message,omitempty"`
}

// HandleHealthz reports that the process is serving
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	ok := HealthResponse{Status: HealthStatusOK}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ok)
	}
}

// HandleReadyz pings the plan database. A nil pool means plans live in memory,
// which is always ready.
// @Summary Readiness check
// @Description Reports the plan storage backend and whether it answers
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPool == nil {
			respondJSON(w, http.StatusOK, HealthResponse{
				Status:  HealthStatusOK,
				Storage: StorageMemory,
				Message: HealthMsgMemoryStorage,
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		started := time.Now()
		err := dbPool.Ping(ctx)
		took := float64(time.Since(started).Microseconds()) / 1000
		if err != nil {
			slog.Error("Readiness ping failed", "error", err, "ping_ms", took)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  HealthStatusUnavailable,
				Storage: StoragePostgres,
				Message: HealthMsgDatabaseFailed,
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK, Storage: StoragePostgres, PingMS: took})
	}
}
