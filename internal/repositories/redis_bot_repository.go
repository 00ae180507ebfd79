package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"ragbot/internal/models"
)

const (
	botKeyPrefix = "bot:"
	botIndexKey  = "bots:index"
)

// RedisBotRepository implements BotRepository using Redis.
// Each bot is a JSON document under bot:{id}; bots:index holds every id.
type RedisBotRepository struct {
	client *redis.Client
}

// NewRedisBotRepository creates a new Redis-based bot registry
func NewRedisBotRepository(client *redis.Client) *RedisBotRepository {
	return &RedisBotRepository{client: client}
}

// Create stores a new bot, rejecting duplicate ids
func (r *RedisBotRepository) Create(ctx context.Context, bot *models.BotConfig) error {
	if err := bot.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	bot.CreatedAt = now
	bot.UpdatedAt = now

	botJSON, err := json.Marshal(bot)
	if err != nil {
		return NewBotRepositoryError("create", bot.BotID, err, "failed to marshal bot")
	}

	// SETNX makes the duplicate check and the write a single step
	created, err := r.client.SetNX(ctx, botKeyPrefix+bot.BotID, botJSON, 0).Result()
	if err != nil {
		return NewBotRepositoryError("create", bot.BotID, err, "")
	}
	if !created {
		return BotAlreadyExistsError(bot.BotID)
	}

	if err := r.client.SAdd(ctx, botIndexKey, bot.BotID).Err(); err != nil {
		return NewBotRepositoryError("create", bot.BotID, err, "failed to index bot")
	}
	return nil
}

// Get loads a bot. Fields absent from the stored JSON take their defaults.
func (r *RedisBotRepository) Get(ctx context.Context, botID string) (*models.BotConfig, error) {
	botJSON, err := r.client.Get(ctx, botKeyPrefix+botID).Result()
	if err == redis.Nil {
		return nil, BotNotFoundError(botID)
	}
	if err != nil {
		return nil, NewBotRepositoryError("get", botID, err, "")
	}
	return decodeBot(botID, []byte(botJSON))
}

// List returns all bots ordered by id
func (r *RedisBotRepository) List(ctx context.Context, activeOnly bool) ([]*models.BotConfig, error) {
	ids, err := r.client.SMembers(ctx, botIndexKey).Result()
	if err != nil {
		return nil, NewBotRepositoryError("list", "", err, "")
	}
	if len(ids) == 0 {
		return []*models.BotConfig{}, nil
	}
	sort.Strings(ids)

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, botKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, NewBotRepositoryError("list", "", err, "failed to execute batch get")
	}

	bots := make([]*models.BotConfig, 0, len(ids))
	for i, cmd := range cmds {
		botJSON, err := cmd.Result()
		if err == redis.Nil {
			// stale index entry
			continue
		}
		if err != nil {
			return nil, NewBotRepositoryError("list", ids[i], err, "")
		}
		bot, err := decodeBot(ids[i], []byte(botJSON))
		if err != nil {
			return nil, err
		}
		if activeOnly && !bot.Active {
			continue
		}
		bots = append(bots, bot)
	}
	return bots, nil
}

// Update overwrites an existing bot
func (r *RedisBotRepository) Update(ctx context.Context, bot *models.BotConfig) error {
	if err := bot.Validate(); err != nil {
		return err
	}

	botJSON, err := json.Marshal(bot)
	if err != nil {
		return NewBotRepositoryError("update", bot.BotID, err, "failed to marshal bot")
	}

	// XX only writes when the key already exists
	ok, err := r.client.SetXX(ctx, botKeyPrefix+bot.BotID, botJSON, 0).Result()
	if err != nil {
		return NewBotRepositoryError("update", bot.BotID, err, "")
	}
	if !ok {
		return BotNotFoundError(bot.BotID)
	}
	return nil
}

// Delete removes a bot from the registry
func (r *RedisBotRepository) Delete(ctx context.Context, botID string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, botKeyPrefix+botID)
	pipe.SRem(ctx, botIndexKey, botID)
	if _, err := pipe.Exec(ctx); err != nil {
		return NewBotRepositoryError("delete", botID, err, "failed to execute transaction")
	}
	if del.Val() == 0 {
		return BotNotFoundError(botID)
	}
	return nil
}

// Exists checks if a bot exists
func (r *RedisBotRepository) Exists(ctx context.Context, botID string) (bool, error) {
	n, err := r.client.Exists(ctx, botKeyPrefix+botID).Result()
	if err != nil {
		return false, NewBotRepositoryError("exists", botID, err, "")
	}
	return n > 0, nil
}

// EnsureDefault seeds the default bot with the strict RAG preset
func (r *RedisBotRepository) EnsureDefault(ctx context.Context) error {
	bot := models.DefaultBotConfig(models.DefaultBotID, "Default assistant")
	bot.Description = "General purpose bot answering strictly from its documents"

	err := r.Create(ctx, &bot)
	if err != nil && !errors.Is(err, ErrBotAlreadyExists) {
		return err
	}
	return nil
}

// Ping checks if Redis is alive
func (r *RedisBotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// decodeBot applies defaults first so that older records missing newer fields stay valid
func decodeBot(botID string, data []byte) (*models.BotConfig, error) {
	bot := models.DefaultBotConfig(botID, "")
	if err := json.Unmarshal(data, &bot); err != nil {
		return nil, NewBotRepositoryError("decode", botID, err, "failed to unmarshal bot")
	}
	return &bot, nil
}
