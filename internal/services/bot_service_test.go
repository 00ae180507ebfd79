package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

func setupTestBotService(t *testing.T) (*BotService, *repositories.RedisDocumentRepository) {
	client := setupTestRedisClient(t)
	docRepo := repositories.NewRedisDocumentRepository(client)
	return NewBotService(repositories.NewRedisBotRepository(client), docRepo, testLogger()), docRepo
}

func TestBotService_CreateAppliesDefaults(t *testing.T) {
	svc, _ := setupTestBotService(t)
	ctx := context.Background()
	threshold := 0.6

	bot, err := svc.Create(ctx, &models.BotCreate{BotID: "sales", Name: "Sales", RetrievalThreshold: &threshold})
	require.NoError(t, err)

	assert.Equal(t, 0.6, bot.RetrievalThreshold)
	assert.Equal(t, models.DefaultTemperature, bot.Temperature)
	assert.Equal(t, models.DefaultRetrievalK, bot.RetrievalK)
	assert.Equal(t, models.DefaultMaxSources, bot.MaxSources)
	assert.True(t, bot.StrictMode)
	assert.True(t, bot.Active)
	assert.Equal(t, models.PresetPrompts[models.PresetRAGStrict], bot.SystemPrompt)

	_, err = svc.Create(ctx, &models.BotCreate{BotID: "sales", Name: "Again"})
	assert.ErrorIs(t, err, repositories.ErrBotAlreadyExists)
}

func TestBotService_CreateRejectsInvalid(t *testing.T) {
	svc, _ := setupTestBotService(t)
	k := 50

	_, err := svc.Create(context.Background(), &models.BotCreate{BotID: "x", Name: "X", RetrievalK: &k})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "retrieval_k", vErr.Field)
}

func TestBotService_UpdateIsPartial(t *testing.T) {
	svc, _ := setupTestBotService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &models.BotCreate{BotID: "help", Name: "Help", Description: "desk"})
	require.NoError(t, err)

	strict := false
	temp := 0.1
	updated, err := svc.Update(ctx, "help", &models.BotUpdate{StrictMode: &strict, Temperature: &temp})
	require.NoError(t, err)
	assert.False(t, updated.StrictMode)
	assert.Equal(t, 0.1, updated.Temperature)
	assert.Equal(t, "desk", updated.Description)

	stored, err := svc.Get(ctx, "help")
	require.NoError(t, err)
	assert.False(t, stored.StrictMode)

	_, err = svc.Update(ctx, "ghost", &models.BotUpdate{})
	assert.ErrorIs(t, err, repositories.ErrBotNotFound)
}

func TestBotService_Delete(t *testing.T) {
	svc, docRepo := setupTestBotService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefault(ctx))
	_, err := svc.Create(ctx, &models.BotCreate{BotID: "temp", Name: "Temp"})
	require.NoError(t, err)
	require.NoError(t, docRepo.Register(ctx, &models.Document{
		ID: "d1", BotID: "temp", Filename: "a.txt", Status: models.DocumentStatusCompleted,
	}))

	assert.ErrorIs(t, svc.Delete(ctx, models.DefaultBotID), ErrDefaultBotProtected)

	require.NoError(t, svc.Delete(ctx, "temp"))
	_, err = svc.Get(ctx, "temp")
	assert.ErrorIs(t, err, repositories.ErrBotNotFound)

	docs, err := docRepo.ListByBot(ctx, "temp")
	require.NoError(t, err)
	assert.Len(t, docs, 1, "documents outlive their bot")
}

func TestBotService_ListActiveOnly(t *testing.T) {
	svc, _ := setupTestBotService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &models.BotCreate{BotID: "on", Name: "On"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.BotCreate{BotID: "off", Name: "Off"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Update(ctx, "off", &models.BotUpdate{Active: &inactive})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "on", active[0].BotID)
}

func TestBotService_PresetsReturnsCopy(t *testing.T) {
	svc, _ := setupTestBotService(t)

	presets := svc.Presets()
	assert.Len(t, presets, len(models.PresetPrompts))
	presets[models.PresetLegal] = "changed"
	assert.NotEqual(t, "changed", models.PresetPrompts[models.PresetLegal])
}
