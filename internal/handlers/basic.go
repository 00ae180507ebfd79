package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ragbot/internal/workers"
)

// HealthResponse is returned by the liveness endpoints
type HealthResponse struct {
	Message string                `json:"message"`
	Status  string                `json:"status"`
	Workers []workers.WorkerStats `json:"workers,omitempty"`
}

// WorkerStatsSource reports the state of the background workers
type WorkerStatsSource interface {
	GetAllStats() []workers.WorkerStats
}

// HealthCheckHandler godoc
// @Summary Liveness check
// @Description Reports that the server is up, with background worker statistics
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthCheckHandler(pool WorkerStatsSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Message: "Server is healthy",
			Status:  "success",
		}
		if pool != nil {
			response.Workers = pool.GetAllStats()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// HealthChecker is anything whose backend can be checked for reachability
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LLMHealthHandler godoc
// @Summary LLM health check
// @Description Reports whether the configured language model backend is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /llm/health [get]
func LLMHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		response := HealthResponse{Message: "LLM backend is reachable", Status: "success"}
		if err := checker.HealthCheck(ctx); err != nil {
			status = http.StatusServiceUnavailable
			response = HealthResponse{Message: "LLM backend unavailable: " + err.Error(), Status: "error"}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}
}
