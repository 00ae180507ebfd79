package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ragbot/internal/models"
)

// AnalyticsReader serves usage statistics
type AnalyticsReader interface {
	BotStats(ctx context.Context, botID string, days int) (*models.BotStats, error)
	GlobalStats(ctx context.Context, days int) (*models.GlobalStats, error)
	PopularQuestions(ctx context.Context, botID string, limit int) ([]models.PopularQuestion, error)
	Keywords(ctx context.Context, botID string, limit int) ([]models.KeywordWeight, error)
	Cleanup(ctx context.Context, daysToKeep int) (int, error)
}

// AnalyticsHandler handles HTTP requests for analytics
type AnalyticsHandler struct {
	responder
	analytics AnalyticsReader
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics AnalyticsReader, logger *log.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		responder: responder{logger: logger},
		analytics: analytics,
	}
}

type BotStatsResponse struct {
	Stats *models.BotStats `json:"stats"`
}

type PopularQuestionsResponse struct {
	PopularQuestions []models.PopularQuestion `json:"popular_questions"`
	Total            int                      `json:"total"`
}

type KeywordsResponse struct {
	Keywords []models.KeywordWeight `json:"keywords"`
	Total    int                    `json:"total"`
}

type CleanupResponse struct {
	Message        string `json:"message"`
	RecordsRemoved int    `json:"records_removed"`
	DaysKept       int    `json:"days_kept"`
}

// BotStats summarises one bot
// @Summary Bot statistics
// @Tags analytics
// @Produce json
// @Param bot_id path string true "Bot ID"
// @Param days query int false "Period in days (1..365)" default(7)
// @Success 200 {object} BotStatsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/bot/{bot_id} [get]
func (h *AnalyticsHandler) BotStats(w http.ResponseWriter, r *http.Request) {
	days, err := rangeParam(r, "days", 7, 1, 365)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.analytics.BotStats(r.Context(), mux.Vars(r)["bot_id"], days)
	if err != nil {
		h.sendServiceError(w, "Bot stats", err)
		return
	}
	h.sendJSON(w, http.StatusOK, BotStatsResponse{Stats: stats})
}

// GlobalStats summarises all bots
// @Summary Global statistics
// @Tags analytics
// @Produce json
// @Param days query int false "Period in days (1..365)" default(30)
// @Success 200 {object} models.GlobalStats
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/global [get]
func (h *AnalyticsHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	days, err := rangeParam(r, "days", 30, 1, 365)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.analytics.GlobalStats(r.Context(), days)
	if err != nil {
		h.sendServiceError(w, "Global stats", err)
		return
	}
	h.sendJSON(w, http.StatusOK, stats)
}

// PopularQuestions lists the most asked questions
// @Summary Popular questions
// @Tags analytics
// @Produce json
// @Param bot_id query string false "Bot ID"
// @Param limit query int false "Max groups (1..50)" default(10)
// @Success 200 {object} PopularQuestionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/popular-questions [get]
func (h *AnalyticsHandler) PopularQuestions(w http.ResponseWriter, r *http.Request) {
	limit, err := rangeParam(r, "limit", 10, 1, 50)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	popular, err := h.analytics.PopularQuestions(r.Context(), r.URL.Query().Get("bot_id"), limit)
	if err != nil {
		h.sendServiceError(w, "Popular questions", err)
		return
	}
	h.sendJSON(w, http.StatusOK, PopularQuestionsResponse{PopularQuestions: popular, Total: len(popular)})
}

// Keywords returns word-cloud weights for recent questions
// @Summary Question keywords
// @Tags analytics
// @Produce json
// @Param bot_id query string false "Bot ID"
// @Param limit query int false "Max keywords (1..200)" default(50)
// @Success 200 {object} KeywordsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/keywords [get]
func (h *AnalyticsHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	limit, err := rangeParam(r, "limit", 50, 1, 200)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	keywords, err := h.analytics.Keywords(r.Context(), r.URL.Query().Get("bot_id"), limit)
	if err != nil {
		h.sendServiceError(w, "Keywords", err)
		return
	}
	h.sendJSON(w, http.StatusOK, KeywordsResponse{Keywords: keywords, Total: len(keywords)})
}

// Cleanup deletes old analytics records
// @Summary Clean up analytics
// @Tags analytics
// @Produce json
// @Param days_to_keep query int false "Days to keep (30..365)" default(90)
// @Success 200 {object} CleanupResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/cleanup [delete]
func (h *AnalyticsHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	days, err := rangeParam(r, "days_to_keep", 90, 30, 365)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.analytics.Cleanup(r.Context(), days)
	if err != nil {
		h.sendServiceError(w, "Cleanup", err)
		return
	}
	h.sendJSON(w, http.StatusOK, CleanupResponse{
		Message:        "Analytics cleaned up",
		RecordsRemoved: removed,
		DaysKept:       days,
	})
}
