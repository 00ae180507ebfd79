package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/models"
)

func TestRedisAnalyticsRepository_RecordCapsToMax(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRedisAnalyticsRepository(client, 5)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, repo.Record(ctx, &models.Interaction{BotID: "b1", Question: fmt.Sprintf("q%d", i), Success: true}))
	}

	all, err := repo.InteractionsSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "q3", all[0].Question, "oldest entries are trimmed")
	assert.Equal(t, "q7", all[4].Question)
	assert.NotEmpty(t, all[0].ID)
	assert.False(t, all[0].Timestamp.IsZero())
}

func TestRedisAnalyticsRepository_RecentInteractions(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRedisAnalyticsRepository(client, 100)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Record(ctx, &models.Interaction{BotID: "b1", Question: fmt.Sprintf("q%d", i)}))
	}

	recent, err := repo.RecentInteractions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "q2", recent[0].Question)
	assert.Equal(t, "q3", recent[1].Question)

	none, err := repo.RecentInteractions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisAnalyticsRepository_DeleteBefore(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRedisAnalyticsRepository(client, 100)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Record(ctx, &models.Interaction{BotID: "b1", Question: "old", Timestamp: now.AddDate(0, 0, -100)}))
	require.NoError(t, repo.Record(ctx, &models.Interaction{BotID: "b1", Question: "new", Timestamp: now.AddDate(0, 0, -1)}))
	require.NoError(t, repo.RecordUpload(ctx, &models.DocumentUpload{BotID: "b1", Filename: "old.md", Timestamp: now.AddDate(0, 0, -95)}))
	require.NoError(t, repo.RecordUpload(ctx, &models.DocumentUpload{BotID: "b1", Filename: "new.md"}))

	removed, err := repo.DeleteBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := repo.InteractionsSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Question)

	uploads, err := repo.UploadsSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "new.md", uploads[0].Filename)

	removed, err = repo.DeleteBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRedisAnalyticsRepository_ConcurrentRecord(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRedisAnalyticsRepository(client, 1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			botID := fmt.Sprintf("bot-%d", i%3)
			assert.NoError(t, repo.Record(ctx, &models.Interaction{BotID: botID, Question: "q"}))
		}(i)
	}
	wg.Wait()

	all, err := repo.InteractionsSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
