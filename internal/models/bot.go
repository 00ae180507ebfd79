package models

import (
	"time"
)

const (
	// DefaultBotID is the bot seeded on first start and used when a request omits bot_id
	DefaultBotID = "default"

	DefaultTemperature        = 0.7
	DefaultRetrievalK         = 4
	DefaultRetrievalThreshold = 0.3
	DefaultMaxSources         = 5
	DefaultFallbackResponse   = "Sorry, I don't have information about that in my knowledge base."
)

// BotConfig is the full configuration of one chatbot tenant.
// Every field carries a concrete value; defaults are applied by DefaultBotConfig
// when a bot is created or decoded, never at the point of use.
type BotConfig struct {
	BotID              string                 `json:"bot_id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description,omitempty"`
	SystemPrompt       string                 `json:"system_prompt"`
	Temperature        float64                `json:"temperature"`
	MaxTokens          *int                   `json:"max_tokens,omitempty"`
	RetrievalK         int                    `json:"retrieval_k"`
	RetrievalThreshold float64                `json:"retrieval_threshold"`
	StrictMode         bool                   `json:"strict_mode"`
	FallbackResponse   string                 `json:"fallback_response"`
	MaxSources         int                    `json:"max_sources"`
	Active             bool                   `json:"active"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// DefaultBotConfig returns a bot with every tunable set to its default
func DefaultBotConfig(botID, name string) BotConfig {
	now := time.Now().UTC()
	return BotConfig{
		BotID:              botID,
		Name:               name,
		SystemPrompt:       PresetPrompts[PresetRAGStrict],
		Temperature:        DefaultTemperature,
		RetrievalK:         DefaultRetrievalK,
		RetrievalThreshold: DefaultRetrievalThreshold,
		StrictMode:         true,
		FallbackResponse:   DefaultFallbackResponse,
		MaxSources:         DefaultMaxSources,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Validate checks field ranges
func (b *BotConfig) Validate() error {
	if b.BotID == "" {
		return &ValidationError{Field: "bot_id", Message: "bot ID is required"}
	}
	if b.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if b.Temperature < 0 || b.Temperature > 2 {
		return &ValidationError{Field: "temperature", Message: "must be between 0 and 2"}
	}
	if b.RetrievalK < 1 || b.RetrievalK > 20 {
		return &ValidationError{Field: "retrieval_k", Message: "must be between 1 and 20"}
	}
	if b.RetrievalThreshold < 0 || b.RetrievalThreshold > 1 {
		return &ValidationError{Field: "retrieval_threshold", Message: "must be between 0 and 1"}
	}
	if b.MaxSources < 1 || b.MaxSources > 20 {
		return &ValidationError{Field: "max_sources", Message: "must be between 1 and 20"}
	}
	if b.MaxTokens != nil && *b.MaxTokens <= 0 {
		return &ValidationError{Field: "max_tokens", Message: "must be positive"}
	}
	return nil
}

// Snapshot returns the subset of the config echoed back with every answer
func (b *BotConfig) Snapshot(sourcesFound int) BotSnapshot {
	return BotSnapshot{
		BotID:        b.BotID,
		Name:         b.Name,
		Temperature:  b.Temperature,
		StrictMode:   b.StrictMode,
		Threshold:    b.RetrievalThreshold,
		SourcesFound: sourcesFound,
	}
}

// BotCreate is the payload for registering a bot. Nil fields take defaults.
type BotCreate struct {
	BotID              string                 `json:"bot_id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description,omitempty"`
	SystemPrompt       *string                `json:"system_prompt,omitempty"`
	Temperature        *float64               `json:"temperature,omitempty"`
	MaxTokens          *int                   `json:"max_tokens,omitempty"`
	RetrievalK         *int                   `json:"retrieval_k,omitempty"`
	RetrievalThreshold *float64               `json:"retrieval_threshold,omitempty"`
	StrictMode         *bool                  `json:"strict_mode,omitempty"`
	FallbackResponse   *string                `json:"fallback_response,omitempty"`
	MaxSources         *int                   `json:"max_sources,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// ToConfig builds a full BotConfig from the create payload
func (c *BotCreate) ToConfig() BotConfig {
	bot := DefaultBotConfig(c.BotID, c.Name)
	bot.Description = c.Description
	bot.Metadata = c.Metadata
	bot.MaxTokens = c.MaxTokens
	if c.SystemPrompt != nil && *c.SystemPrompt != "" {
		bot.SystemPrompt = *c.SystemPrompt
	}
	if c.Temperature != nil {
		bot.Temperature = *c.Temperature
	}
	if c.RetrievalK != nil {
		bot.RetrievalK = *c.RetrievalK
	}
	if c.RetrievalThreshold != nil {
		bot.RetrievalThreshold = *c.RetrievalThreshold
	}
	if c.StrictMode != nil {
		bot.StrictMode = *c.StrictMode
	}
	if c.FallbackResponse != nil && *c.FallbackResponse != "" {
		bot.FallbackResponse = *c.FallbackResponse
	}
	if c.MaxSources != nil {
		bot.MaxSources = *c.MaxSources
	}
	return bot
}

// BotUpdate is a partial update; only non-nil fields are applied
type BotUpdate struct {
	Name               *string                `json:"name,omitempty"`
	Description        *string                `json:"description,omitempty"`
	SystemPrompt       *string                `json:"system_prompt,omitempty"`
	Temperature        *float64               `json:"temperature,omitempty"`
	MaxTokens          *int                   `json:"max_tokens,omitempty"`
	RetrievalK         *int                   `json:"retrieval_k,omitempty"`
	RetrievalThreshold *float64               `json:"retrieval_threshold,omitempty"`
	StrictMode         *bool                  `json:"strict_mode,omitempty"`
	FallbackResponse   *string                `json:"fallback_response,omitempty"`
	MaxSources         *int                   `json:"max_sources,omitempty"`
	Active             *bool                  `json:"active,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// Apply writes the set fields of the update onto bot
func (u *BotUpdate) Apply(bot *BotConfig) {
	if u.Name != nil {
		bot.Name = *u.Name
	}
	if u.Description != nil {
		bot.Description = *u.Description
	}
	if u.SystemPrompt != nil {
		bot.SystemPrompt = *u.SystemPrompt
	}
	if u.Temperature != nil {
		bot.Temperature = *u.Temperature
	}
	if u.MaxTokens != nil {
		bot.MaxTokens = u.MaxTokens
	}
	if u.RetrievalK != nil {
		bot.RetrievalK = *u.RetrievalK
	}
	if u.RetrievalThreshold != nil {
		bot.RetrievalThreshold = *u.RetrievalThreshold
	}
	if u.StrictMode != nil {
		bot.StrictMode = *u.StrictMode
	}
	if u.FallbackResponse != nil {
		bot.FallbackResponse = *u.FallbackResponse
	}
	if u.MaxSources != nil {
		bot.MaxSources = *u.MaxSources
	}
	if u.Active != nil {
		bot.Active = *u.Active
	}
	if u.Metadata != nil {
		bot.Metadata = u.Metadata
	}
	bot.UpdatedAt = time.Now().UTC()
}
