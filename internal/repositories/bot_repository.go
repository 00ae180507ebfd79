package repositories

import (
	"context"
	"errors"

	"ragbot/internal/models"
)

// BotRepository defines the interface for the bot configuration registry
type BotRepository interface {
	Create(ctx context.Context, bot *models.BotConfig) error
	Get(ctx context.Context, botID string) (*models.BotConfig, error)
	List(ctx context.Context, activeOnly bool) ([]*models.BotConfig, error)
	Update(ctx context.Context, bot *models.BotConfig) error
	Delete(ctx context.Context, botID string) error
	Exists(ctx context.Context, botID string) (bool, error)

	// EnsureDefault seeds the default bot when it does not exist yet
	EnsureDefault(ctx context.Context) error

	Ping(ctx context.Context) error
}

var (
	ErrBotNotFound      = errors.New("bot not found")
	ErrBotAlreadyExists = errors.New("bot already exists")
)

// BotRepositoryError represents errors from the bot repository
type BotRepositoryError struct {
	Operation string
	BotID     string
	Err       error
	Message   string
}

func (e *BotRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.Operation
	if e.BotID != "" {
		prefix += " (bot: " + e.BotID + ")"
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *BotRepositoryError) Unwrap() error {
	return e.Err
}

// NewBotRepositoryError creates a new bot repository error
func NewBotRepositoryError(operation, botID string, err error, message string) *BotRepositoryError {
	return &BotRepositoryError{
		Operation: operation,
		BotID:     botID,
		Err:       err,
		Message:   message,
	}
}

func BotNotFoundError(botID string) error {
	return NewBotRepositoryError("get_bot", botID, ErrBotNotFound, "bot not found: "+botID)
}

func BotAlreadyExistsError(botID string) error {
	return NewBotRepositoryError("create_bot", botID, ErrBotAlreadyExists, "bot already exists: "+botID)
}
