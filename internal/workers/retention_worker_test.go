package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCleaner records every Cleanup call
type fakeCleaner struct {
	mu      sync.Mutex
	calls   []int
	removed int
	err     error
	panics  bool
}

func (c *fakeCleaner) Cleanup(ctx context.Context, daysToKeep int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, daysToKeep)
	if c.panics {
		panic("cleanup exploded")
	}
	return c.removed, c.err
}

func (c *fakeCleaner) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func setupTestRetentionWorker(cleaner AnalyticsCleaner, interval time.Duration) *RetentionWorker {
	config := DefaultWorkerConfig("retention-test")
	config.Interval = interval
	return NewRetentionWorker(RetentionWorkerConfig{
		WorkerConfig: config,
		DaysToKeep:   90,
		Cleaner:      cleaner,
	})
}

func TestRetentionWorker_RunOnce(t *testing.T) {
	cleaner := &fakeCleaner{removed: 4}
	worker := setupTestRetentionWorker(cleaner, time.Hour)

	require.NoError(t, worker.RunOnce(context.Background()))

	assert.Equal(t, []int{90}, cleaner.calls)
	stats := worker.Stats()
	assert.Equal(t, int64(1), stats.RunsSucceeded)
	assert.Equal(t, int64(0), stats.RunsFailed)
}

func TestRetentionWorker_RunOnceFailure(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("redis down")}
	worker := setupTestRetentionWorker(cleaner, time.Hour)

	err := worker.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.Equal(t, int64(1), worker.Stats().RunsFailed)
}

func TestRetentionWorker_RecoversFromPanic(t *testing.T) {
	cleaner := &fakeCleaner{panics: true}
	worker := setupTestRetentionWorker(cleaner, time.Hour)

	err := worker.RunOnce(context.Background())
	assert.IsType(t, &WorkerPanicError{}, err)
	assert.Equal(t, int64(1), worker.Stats().RunsFailed)
}

func TestRetentionWorker_StartRunsPeriodically(t *testing.T) {
	cleaner := &fakeCleaner{}
	worker := setupTestRetentionWorker(cleaner, 10*time.Millisecond)

	require.NoError(t, worker.Start(context.Background()))
	assert.True(t, worker.IsRunning())

	assert.Eventually(t, func() bool {
		return cleaner.callCount() >= 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, worker.Stop(context.Background()))
	assert.False(t, worker.IsRunning())

	calls := cleaner.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, cleaner.callCount(), "no runs after Stop")
}

func TestRetentionWorker_StartTwice(t *testing.T) {
	worker := setupTestRetentionWorker(&fakeCleaner{}, time.Hour)

	require.NoError(t, worker.Start(context.Background()))
	t.Cleanup(func() { _ = worker.Stop(context.Background()) })

	err := worker.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestRetentionWorker_StartWithoutCleaner(t *testing.T) {
	worker := NewRetentionWorker(RetentionWorkerConfig{WorkerConfig: DefaultWorkerConfig("")})

	assert.Equal(t, "analytics-retention", worker.Name())
	assert.Error(t, worker.Start(context.Background()))
	assert.False(t, worker.IsRunning())
}

func TestRetentionWorker_StopWhenIdle(t *testing.T) {
	worker := setupTestRetentionWorker(&fakeCleaner{}, time.Hour)
	assert.NoError(t, worker.Stop(context.Background()))
}
