package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ragbot/internal/models"
)

// BotManager manages the bot registry
type BotManager interface {
	Create(ctx context.Context, req *models.BotCreate) (*models.BotConfig, error)
	Get(ctx context.Context, botID string) (*models.BotConfig, error)
	List(ctx context.Context, activeOnly bool) ([]*models.BotConfig, error)
	Update(ctx context.Context, botID string, update *models.BotUpdate) (*models.BotConfig, error)
	Delete(ctx context.Context, botID string) error
	Presets() map[string]string
}

// BotHandler handles HTTP requests for bot operations
type BotHandler struct {
	responder
	bots BotManager
}

// NewBotHandler creates a new bot handler
func NewBotHandler(bots BotManager, logger *log.Logger) *BotHandler {
	return &BotHandler{
		responder: responder{logger: logger},
		bots:      bots,
	}
}

// BotListResponse represents a list of bots
type BotListResponse struct {
	Bots  []*models.BotConfig `json:"bots"`
	Count int                 `json:"count"`
}

// CreateBot registers a new bot
// @Summary Create bot
// @Description Register a bot. Fields left out take their defaults.
// @Tags bots
// @Accept json
// @Produce json
// @Param request body models.BotCreate true "Bot definition"
// @Success 201 {object} models.BotConfig
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/bots [post]
func (h *BotHandler) CreateBot(w http.ResponseWriter, r *http.Request) {
	var req models.BotCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	bot, err := h.bots.Create(r.Context(), &req)
	if err != nil {
		h.sendServiceError(w, "Create bot", err)
		return
	}
	h.sendJSON(w, http.StatusCreated, bot)
}

// ListBots lists registered bots
// @Summary List bots
// @Tags bots
// @Produce json
// @Param active_only query bool false "Only active bots" default(false)
// @Success 200 {object} BotListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/bots [get]
func (h *BotHandler) ListBots(w http.ResponseWriter, r *http.Request) {
	bots, err := h.bots.List(r.Context(), h.getBoolQueryParam(r, "active_only", false))
	if err != nil {
		h.sendServiceError(w, "List bots", err)
		return
	}
	h.sendJSON(w, http.StatusOK, BotListResponse{Bots: bots, Count: len(bots)})
}

// GetBot returns one bot
// @Summary Get bot
// @Tags bots
// @Produce json
// @Param bot_id path string true "Bot ID"
// @Success 200 {object} models.BotConfig
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bots/{bot_id} [get]
func (h *BotHandler) GetBot(w http.ResponseWriter, r *http.Request) {
	bot, err := h.bots.Get(r.Context(), mux.Vars(r)["bot_id"])
	if err != nil {
		h.sendServiceError(w, "Get bot", err)
		return
	}
	h.sendJSON(w, http.StatusOK, bot)
}

// UpdateBot applies a partial update
// @Summary Update bot
// @Description Only the fields present in the body change
// @Tags bots
// @Accept json
// @Produce json
// @Param bot_id path string true "Bot ID"
// @Param request body models.BotUpdate true "Fields to change"
// @Success 200 {object} models.BotConfig
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bots/{bot_id} [put]
func (h *BotHandler) UpdateBot(w http.ResponseWriter, r *http.Request) {
	var update models.BotUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	bot, err := h.bots.Update(r.Context(), mux.Vars(r)["bot_id"], &update)
	if err != nil {
		h.sendServiceError(w, "Update bot", err)
		return
	}
	h.sendJSON(w, http.StatusOK, bot)
}

// DeleteBot removes a bot
// @Summary Delete bot
// @Description The default bot cannot be deleted. Documents stay registered.
// @Tags bots
// @Produce json
// @Param bot_id path string true "Bot ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bots/{bot_id} [delete]
func (h *BotHandler) DeleteBot(w http.ResponseWriter, r *http.Request) {
	botID := mux.Vars(r)["bot_id"]
	if err := h.bots.Delete(r.Context(), botID); err != nil {
		h.sendServiceError(w, "Delete bot", err)
		return
	}
	h.sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bot " + botID + " deleted",
	})
}

// PresetPrompts lists the built-in system prompts
// @Summary Preset prompts
// @Tags bots
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/bots/presets/prompts [get]
func (h *BotHandler) PresetPrompts(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.bots.Presets())
}
