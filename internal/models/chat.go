package models

// ChatMessage represents a single message in a conversation
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest represents the incoming chat request from the widget or dashboard
type ChatRequest struct {
	Question string `json:"question"`         // The user question
	BotID    string `json:"bot_id,omitempty"` // Bot to answer with (default: "default")
}

// RetrievedFragment is a scored piece of document text returned by retrieval.
// Created per query and never persisted.
type RetrievedFragment struct {
	Text       string                 `json:"text"`
	Metadata   map[string]interface{} `json:"metadata"`
	Distance   float64                `json:"distance"`
	Similarity float64                `json:"similarity"`
}

// BotSnapshot is the subset of BotConfig echoed back with an answer
type BotSnapshot struct {
	BotID        string  `json:"bot_id"`
	Name         string  `json:"name"`
	Temperature  float64 `json:"temperature"`
	StrictMode   bool    `json:"strict_mode"`
	Threshold    float64 `json:"threshold"`
	SourcesFound int     `json:"sources_found"`
}

// AnswerResult is the non-streaming chat response
type AnswerResult struct {
	Answer    string              `json:"answer"`
	Sources   []RetrievedFragment `json:"sources"`
	BotConfig BotSnapshot         `json:"bot_config"`
	Warning   string              `json:"warning,omitempty"`
}

// IsFallback reports whether the answer is the bot's fallback text
func (r *AnswerResult) IsFallback() bool {
	return r.Warning != ""
}

// GenerationOptions are per-request sampling parameters passed to the LLM
type GenerationOptions struct {
	Temperature float64
	MaxTokens   int // 0 means provider default
}
