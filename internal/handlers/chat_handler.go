package handlers

import (
	"context"
	"encoding/json"
	"iter"
	"log"
	"net/http"
	"strconv"
	"strings"

	"ragbot/internal/models"
	"ragbot/internal/streaming"
)

const (
	defaultDebugK = 5
	maxDebugK     = 20
)

// ChatAnswerer answers questions for a bot
type ChatAnswerer interface {
	Answer(ctx context.Context, question, botID string) (*models.AnswerResult, error)
	AnswerStream(ctx context.Context, question, botID string) iter.Seq[models.StreamEvent]
	CheckStrictMode(ctx context.Context, question, botID string) (*models.StrictModeCheck, error)
}

// RetrievalInspector exposes raw retrieval results for threshold tuning
type RetrievalInspector interface {
	Inspect(ctx context.Context, query, botID string, k int, threshold *float64) (*models.RetrievalInspection, error)
}

// ChatHandler handles HTTP requests for the chat endpoints
type ChatHandler struct {
	responder
	chat      ChatAnswerer
	inspector RetrievalInspector
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatAnswerer, inspector RetrievalInspector, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		responder: responder{logger: logger},
		chat:      chat,
		inspector: inspector,
	}
}

// decodeChatRequest parses the body and applies the default bot
func (h *ChatHandler) decodeChatRequest(w http.ResponseWriter, r *http.Request) (*models.ChatRequest, bool) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if strings.TrimSpace(req.Question) == "" {
		h.sendError(w, http.StatusBadRequest, "Question is required")
		return nil, false
	}
	if req.BotID == "" {
		req.BotID = models.DefaultBotID
	}
	return &req, true
}

// Chat answers a question in one response
// @Summary Ask a bot
// @Description Answer a question from the bot's documents. A strict bot without relevant documents returns its fallback text.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Question and bot"
// @Success 200 {object} models.AnswerResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	result, err := h.chat.Answer(r.Context(), req.Question, req.BotID)
	if err != nil {
		h.sendServiceError(w, "Chat", err)
		return
	}
	h.sendJSON(w, http.StatusOK, result)
}

// ChatStream answers a question as Server-Sent Events
// @Summary Ask a bot with streaming
// @Description Streams metadata, then text chunks, then done. Failures end the stream with a single error event.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body models.ChatRequest true "Question and bot"
// @Success 200 {string} string "SSE frames"
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/chat/stream [post]
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	sw, err := streaming.NewWriter(w)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := sw.Stream(h.chat.AnswerStream(r.Context(), req.Question, req.BotID)); err != nil {
		h.logger.Printf("⚠️  Stream to %s ended early: %v", r.RemoteAddr, err)
	}
}

// DebugRetrieval shows the raw retrieval results for a query
// @Summary Inspect retrieval
// @Description Unfiltered nearest chunks for a query with per-chunk threshold verdicts and a suggested threshold
// @Tags chat
// @Produce json
// @Param query query string true "Query text"
// @Param bot_id query string false "Bot ID" default(default)
// @Param threshold query number false "Similarity threshold (0..1)"
// @Param k query int false "Number of chunks (1..20)" default(5)
// @Success 200 {object} models.RetrievalInspection
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/chat/debug-retrieval [get]
func (h *ChatHandler) DebugRetrieval(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	if strings.TrimSpace(query) == "" {
		h.sendError(w, http.StatusBadRequest, "Query is required")
		return
	}
	botID := q.Get("bot_id")
	if botID == "" {
		botID = models.DefaultBotID
	}

	k, err := rangeParam(r, "k", defaultDebugK, 1, maxDebugK)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	var threshold *float64
	if raw := q.Get("threshold"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 1 {
			h.sendError(w, http.StatusBadRequest, "threshold: must be a number between 0 and 1")
			return
		}
		threshold = &value
	}

	inspection, err := h.inspector.Inspect(r.Context(), query, botID, k, threshold)
	if err != nil {
		h.sendServiceError(w, "Retrieval", err)
		return
	}
	h.sendJSON(w, http.StatusOK, inspection)
}

// TestStrictMode runs a question and reports whether the bot fell back
// @Summary Check strict mode
// @Description Answers a question and reports whether the fallback was used, with short source previews
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Question and bot"
// @Success 200 {object} models.StrictModeCheck
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/chat/test-strict-mode [post]
func (h *ChatHandler) TestStrictMode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	check, err := h.chat.CheckStrictMode(r.Context(), req.Question, req.BotID)
	if err != nil {
		h.sendServiceError(w, "Strict mode check", err)
		return
	}
	h.sendJSON(w, http.StatusOK, check)
}
