package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"ragbot/internal/handlers"
)

const apiPrefix = "/api/v1"

// Handlers holds every handler the router serves
type Handlers struct {
	Home             http.HandlerFunc
	Health           http.HandlerFunc
	LLMHealth        http.HandlerFunc
	MethodNotAllowed http.HandlerFunc

	Chat      *handlers.ChatHandler
	Bots      *handlers.BotHandler
	Documents *handlers.DocumentHandler
	Analytics *handlers.AnalyticsHandler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	if h.MethodNotAllowed != nil {
		router.MethodNotAllowedHandler = h.MethodNotAllowed
	}

	// Health endpoints
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if h.LLMHealth != nil {
		router.HandleFunc("/llm/health", h.LLMHealth).Methods(http.MethodGet)
	}

	// API routes sit on the root router so a method mismatch reaches MethodNotAllowedHandler
	api := func(path string, handler http.HandlerFunc, method string) {
		router.HandleFunc(apiPrefix+path, handler).Methods(method)
	}

	if h.Chat != nil {
		api("/chat", h.Chat.Chat, http.MethodPost)
		api("/chat/stream", h.Chat.ChatStream, http.MethodPost)
		api("/chat/debug-retrieval", h.Chat.DebugRetrieval, http.MethodGet)
		api("/chat/test-strict-mode", h.Chat.TestStrictMode, http.MethodPost)
	}

	if h.Bots != nil {
		api("/bots/presets/prompts", h.Bots.PresetPrompts, http.MethodGet)
		api("/bots", h.Bots.CreateBot, http.MethodPost)
		api("/bots", h.Bots.ListBots, http.MethodGet)
		api("/bots/{bot_id}", h.Bots.GetBot, http.MethodGet)
		api("/bots/{bot_id}", h.Bots.UpdateBot, http.MethodPut)
		api("/bots/{bot_id}", h.Bots.DeleteBot, http.MethodDelete)
	}

	if h.Documents != nil {
		api("/documents/upload", h.Documents.UploadDocument, http.MethodPost)
		api("/documents", h.Documents.ListDocuments, http.MethodGet)
		api("/documents/{document_id}", h.Documents.DeleteDocument, http.MethodDelete)
		api("/documents/{document_id}/move", h.Documents.MoveDocument, http.MethodPatch)
	}

	if h.Analytics != nil {
		api("/analytics/bot/{bot_id}", h.Analytics.BotStats, http.MethodGet)
		api("/analytics/global", h.Analytics.GlobalStats, http.MethodGet)
		api("/analytics/popular-questions", h.Analytics.PopularQuestions, http.MethodGet)
		api("/analytics/keywords", h.Analytics.Keywords, http.MethodGet)
		api("/analytics/cleanup", h.Analytics.Cleanup, http.MethodDelete)
	}

	// Main routes
	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
}
