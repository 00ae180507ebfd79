package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

// ErrDefaultBotProtected is returned when deleting the seeded default bot
var ErrDefaultBotProtected = errors.New("the default bot cannot be deleted")

// BotService manages the bot registry
type BotService struct {
	botRepo repositories.BotRepository
	docRepo repositories.DocumentRepository
	logger  *log.Logger
}

// NewBotService creates a new bot service
func NewBotService(botRepo repositories.BotRepository, docRepo repositories.DocumentRepository, logger *log.Logger) *BotService {
	return &BotService{
		botRepo: botRepo,
		docRepo: docRepo,
		logger:  logger,
	}
}

// Create registers a bot; unset fields take their defaults
func (s *BotService) Create(ctx context.Context, req *models.BotCreate) (*models.BotConfig, error) {
	bot := req.ToConfig()
	if err := s.botRepo.Create(ctx, &bot); err != nil {
		return nil, err
	}
	s.logger.Printf("✅ Bot created: %s (%s)", bot.BotID, bot.Name)
	return &bot, nil
}

// Get returns one bot
func (s *BotService) Get(ctx context.Context, botID string) (*models.BotConfig, error) {
	return s.botRepo.Get(ctx, botID)
}

// List returns all bots, optionally only the active ones
func (s *BotService) List(ctx context.Context, activeOnly bool) ([]*models.BotConfig, error) {
	return s.botRepo.List(ctx, activeOnly)
}

// Update applies a partial update and stores the result
func (s *BotService) Update(ctx context.Context, botID string, update *models.BotUpdate) (*models.BotConfig, error) {
	bot, err := s.botRepo.Get(ctx, botID)
	if err != nil {
		return nil, err
	}

	update.Apply(bot)
	if err := s.botRepo.Update(ctx, bot); err != nil {
		return nil, err
	}
	s.logger.Printf("Bot updated: %s", botID)
	return bot, nil
}

// Delete removes a bot's configuration. Its documents stay in the registry
// and can be moved to another bot.
func (s *BotService) Delete(ctx context.Context, botID string) error {
	if botID == models.DefaultBotID {
		return ErrDefaultBotProtected
	}

	if err := s.botRepo.Delete(ctx, botID); err != nil {
		return err
	}

	if s.docRepo != nil {
		count, err := s.docRepo.CountByBot(ctx, botID)
		if err != nil {
			s.logger.Printf("Failed to count documents of deleted bot %s (non-critical): %v", botID, err)
		} else if count > 0 {
			s.logger.Printf("⚠️  Bot %s deleted with %d documents still assigned", botID, count)
		}
	}

	s.logger.Printf("Bot deleted: %s", botID)
	return nil
}

// EnsureDefault seeds the default bot
func (s *BotService) EnsureDefault(ctx context.Context) error {
	if err := s.botRepo.EnsureDefault(ctx); err != nil {
		return fmt.Errorf("failed to seed default bot: %w", err)
	}
	return nil
}

// Presets returns the built-in system prompts keyed by preset name
func (s *BotService) Presets() map[string]string {
	out := make(map[string]string, len(models.PresetPrompts))
	for name, prompt := range models.PresetPrompts {
		out[name] = prompt
	}
	return out
}
