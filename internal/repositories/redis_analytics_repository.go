package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ragbot/internal/models"
)

const (
	interactionsKey = "analytics:interactions"
	uploadsKey      = "analytics:uploads"

	DefaultMaxInteractions = 10000
	maxCleanupRetries      = 5
)

// RedisAnalyticsRepository keeps analytics in two capped Redis lists.
// RPUSH keeps arrival order; LTRIM keeps only the newest maxRecords entries.
type RedisAnalyticsRepository struct {
	client     *redis.Client
	maxRecords int64
}

// NewRedisAnalyticsRepository creates a Redis analytics store capped to maxRecords per list
func NewRedisAnalyticsRepository(client *redis.Client, maxRecords int) *RedisAnalyticsRepository {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxInteractions
	}
	return &RedisAnalyticsRepository{
		client:     client,
		maxRecords: int64(maxRecords),
	}
}

// Record appends one interaction
func (r *RedisAnalyticsRepository) Record(ctx context.Context, interaction *models.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now().UTC()
	}
	return r.push(ctx, "record_interaction", interactionsKey, interaction)
}

// RecordUpload appends one document upload
func (r *RedisAnalyticsRepository) RecordUpload(ctx context.Context, upload *models.DocumentUpload) error {
	if upload.Timestamp.IsZero() {
		upload.Timestamp = time.Now().UTC()
	}
	return r.push(ctx, "record_upload", uploadsKey, upload)
}

func (r *RedisAnalyticsRepository) push(ctx context.Context, op, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return NewAnalyticsRepositoryError(op, err, "failed to marshal record")
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -r.maxRecords, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return NewAnalyticsRepositoryError(op, err, "")
	}
	return nil
}

// InteractionsSince returns interactions newer than since, oldest first
func (r *RedisAnalyticsRepository) InteractionsSince(ctx context.Context, since time.Time) ([]*models.Interaction, error) {
	all, err := r.interactions(ctx, 0, -1)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Interaction, 0, len(all))
	for _, in := range all {
		if in.Timestamp.After(since) {
			out = append(out, in)
		}
	}
	return out, nil
}

// RecentInteractions returns the newest n interactions, oldest first
func (r *RedisAnalyticsRepository) RecentInteractions(ctx context.Context, n int) ([]*models.Interaction, error) {
	if n <= 0 {
		return []*models.Interaction{}, nil
	}
	return r.interactions(ctx, -int64(n), -1)
}

func (r *RedisAnalyticsRepository) interactions(ctx context.Context, start, stop int64) ([]*models.Interaction, error) {
	raw, err := r.client.LRange(ctx, interactionsKey, start, stop).Result()
	if err != nil {
		return nil, NewAnalyticsRepositoryError("list_interactions", err, "")
	}

	out := make([]*models.Interaction, 0, len(raw))
	for _, item := range raw {
		var in models.Interaction
		if err := json.Unmarshal([]byte(item), &in); err != nil {
			// skip corrupt entries
			continue
		}
		out = append(out, &in)
	}
	return out, nil
}

// UploadsSince returns uploads newer than since, oldest first
func (r *RedisAnalyticsRepository) UploadsSince(ctx context.Context, since time.Time) ([]*models.DocumentUpload, error) {
	raw, err := r.client.LRange(ctx, uploadsKey, 0, -1).Result()
	if err != nil {
		return nil, NewAnalyticsRepositoryError("list_uploads", err, "")
	}

	out := make([]*models.DocumentUpload, 0, len(raw))
	for _, item := range raw {
		var up models.DocumentUpload
		if err := json.Unmarshal([]byte(item), &up); err != nil {
			continue
		}
		if up.Timestamp.After(since) {
			out = append(out, &up)
		}
	}
	return out, nil
}

// DeleteBefore drops records older than cutoff from both lists
func (r *RedisAnalyticsRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for _, key := range []string{interactionsKey, uploadsKey} {
		n, err := r.rewriteNewerThan(ctx, key, cutoff)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

// rewriteNewerThan rewrites a list keeping only entries with a timestamp after cutoff.
// WATCH aborts the rewrite if a concurrent RPUSH lands in between; it is then retried.
func (r *RedisAnalyticsRepository) rewriteNewerThan(ctx context.Context, key string, cutoff time.Time) (int, error) {
	var removed int

	txf := func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}

		keep := make([]interface{}, 0, len(raw))
		for _, item := range raw {
			var stamped struct {
				Timestamp time.Time `json:"timestamp"`
			}
			if err := json.Unmarshal([]byte(item), &stamped); err != nil {
				continue
			}
			if stamped.Timestamp.After(cutoff) {
				keep = append(keep, item)
			}
		}
		removed = len(raw) - len(keep)
		if removed == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(keep) > 0 {
				pipe.RPush(ctx, key, keep...)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxCleanupRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return removed, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return 0, NewAnalyticsRepositoryError("delete_before", err, "")
	}
	return 0, NewAnalyticsRepositoryError("delete_before", redis.TxFailedErr, "cleanup kept conflicting with writers")
}
