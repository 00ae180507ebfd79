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

func TestDefaultWorkerConfig(t *testing.T) {
	config := DefaultWorkerConfig("test-worker")

	assert.Equal(t, "test-worker", config.WorkerName)
	assert.Equal(t, time.Hour, config.Interval)
	assert.True(t, config.RunOnStart)
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
	assert.True(t, config.EnableRecovery)
}

func TestBaseWorker_IsRunning(t *testing.T) {
	worker := NewBaseWorker(DefaultWorkerConfig("test-worker"))

	assert.Equal(t, "test-worker", worker.Name())
	assert.False(t, worker.IsRunning())

	worker.setRunning(true)
	assert.True(t, worker.IsRunning())

	worker.setRunning(false)
	assert.False(t, worker.IsRunning())
}

func TestBaseWorker_Stats(t *testing.T) {
	worker := NewBaseWorker(DefaultWorkerConfig("test-worker"))

	stats := worker.Stats()
	assert.Equal(t, "test-worker", stats.WorkerName)
	assert.Equal(t, int64(0), stats.RunsTotal)
	assert.False(t, stats.IsRunning)
	assert.True(t, stats.LastRunTime.IsZero())

	worker.setRunning(true)

	startTime := time.Now()
	time.Sleep(10 * time.Millisecond)
	worker.recordRun(startTime, nil)

	startTime = time.Now()
	time.Sleep(10 * time.Millisecond)
	worker.recordRun(startTime, assert.AnError)

	stats = worker.Stats()
	assert.Equal(t, int64(2), stats.RunsTotal)
	assert.Equal(t, int64(1), stats.RunsSucceeded)
	assert.Equal(t, int64(1), stats.RunsFailed)
	assert.Greater(t, stats.AverageRunTime, time.Duration(0))
	assert.False(t, stats.LastRunTime.IsZero())
	assert.True(t, stats.IsRunning)
	assert.Greater(t, stats.Uptime, time.Duration(0))
}

func TestBaseWorker_ConcurrentAccess(t *testing.T) {
	worker := NewBaseWorker(DefaultWorkerConfig("concurrent-worker"))

	var wg sync.WaitGroup
	iterations := 100

	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.recordRun(time.Now(), nil)
		}()
	}
	wg.Wait()

	stats := worker.Stats()
	assert.Equal(t, int64(iterations), stats.RunsTotal)
	assert.Equal(t, int64(iterations), stats.RunsSucceeded)
}

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool()
	assert.Equal(t, 0, pool.Count())

	pool.AddWorker(NewMockWorker("worker-1"))
	pool.AddWorker(NewMockWorker("worker-2"))
	assert.Equal(t, 2, pool.Count())

	require.NoError(t, pool.StartAll(context.Background()))

	stats := pool.GetAllStats()
	require.Len(t, stats, 2)
	assert.Equal(t, "worker-1", stats[0].WorkerName)
	assert.Equal(t, "worker-2", stats[1].WorkerName)
	for _, s := range stats {
		assert.True(t, s.IsRunning)
	}

	require.NoError(t, pool.StopAll(context.Background()))
	for _, s := range pool.GetAllStats() {
		assert.False(t, s.IsRunning, s.WorkerName)
	}
}

func TestWorkerPool_StartAllFailure(t *testing.T) {
	pool := NewWorkerPool()
	failing := NewMockWorker("broken")
	failing.startErr = errors.New("no backend")
	pool.AddWorker(failing)

	err := pool.StartAll(context.Background())
	require.Error(t, err)

	var workerErr *WorkerError
	require.ErrorAs(t, err, &workerErr)
	assert.Equal(t, "broken", workerErr.WorkerName)
	assert.Equal(t, "broken:start: no backend", err.Error())
}

func TestWorkerPool_StopAllReturnsError(t *testing.T) {
	pool := NewWorkerPool()
	stuck := NewMockWorker("stuck")
	stuck.stopErr = errors.New("timeout")
	pool.AddWorker(stuck)
	pool.AddWorker(NewMockWorker("ok"))

	err := pool.StopAll(context.Background())
	assert.EqualError(t, err, "timeout")
}

func TestRecoverable(t *testing.T) {
	t.Run("normal execution", func(t *testing.T) {
		called := false
		task := Recoverable(func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.NoError(t, task(context.Background()))
		assert.True(t, called)
	})

	t.Run("panic recovery", func(t *testing.T) {
		task := Recoverable(func(ctx context.Context) error {
			panic("test panic")
		})

		err := task(context.Background())
		assert.IsType(t, &WorkerPanicError{}, err)
		assert.Equal(t, "worker panic: test panic", err.Error())
	})

	t.Run("error propagation", func(t *testing.T) {
		task := Recoverable(func(ctx context.Context) error {
			return assert.AnError
		})

		assert.Equal(t, assert.AnError, task(context.Background()))
	})
}

func TestWorkerError(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := NewWorkerError("worker-1", "start", nil, "custom message")
		assert.Equal(t, "custom message", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		err := NewWorkerError("worker-1", "cleanup", assert.AnError, "")
		assert.Contains(t, err.Error(), "worker-1:cleanup")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("minimal error", func(t *testing.T) {
		err := NewWorkerError("worker-1", "stop", nil, "")
		assert.Equal(t, "worker-1:stop: unknown error", err.Error())
	})
}

func TestWorkerPanicError(t *testing.T) {
	assert.Contains(t, (&WorkerPanicError{Panic: assert.AnError}).Error(), assert.AnError.Error())
	assert.Contains(t, (&WorkerPanicError{Panic: 123}).Error(), "unknown panic")
}

// MockWorker is a Worker with injectable start and stop failures
type MockWorker struct {
	name     string
	running  bool
	startErr error
	stopErr  error
	mu       sync.RWMutex
}

func NewMockWorker(name string) *MockWorker {
	return &MockWorker{name: name}
}

func (w *MockWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.startErr != nil {
		return w.startErr
	}
	w.running = true
	return nil
}

func (w *MockWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopErr != nil {
		return w.stopErr
	}
	w.running = false
	return nil
}

func (w *MockWorker) Name() string {
	return w.name
}

func (w *MockWorker) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *MockWorker) Stats() WorkerStats {
	return WorkerStats{WorkerName: w.name, IsRunning: w.IsRunning()}
}
