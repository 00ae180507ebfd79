package workers

import (
	"context"
	"sync"
	"time"
)

// Worker is a background task owned by the server
type Worker interface {
	Start(ctx context.Context) error

	// Stop waits for an in-flight run to finish or for ctx to expire
	Stop(ctx context.Context) error

	Name() string
	IsRunning() bool
	Stats() WorkerStats
}

// WorkerStats represents statistics about a worker
type WorkerStats struct {
	WorkerName     string        `json:"worker_name"`
	RunsTotal      int64         `json:"runs_total"`
	RunsSucceeded  int64         `json:"runs_succeeded"`
	RunsFailed     int64         `json:"runs_failed"`
	AverageRunTime time.Duration `json:"average_run_time"`
	LastRunTime    time.Time     `json:"last_run_time,omitempty"`
	Uptime         time.Duration `json:"uptime"`
	IsRunning      bool          `json:"is_running"`
}

// WorkerConfig holds configuration for periodic workers
type WorkerConfig struct {
	// WorkerName is a unique identifier for this worker instance
	WorkerName string

	// Interval is the time between two runs
	Interval time.Duration

	// RunOnStart triggers a run immediately instead of waiting one interval
	RunOnStart bool

	// ShutdownTimeout caps how long Stop waits for an in-flight run
	ShutdownTimeout time.Duration

	// EnableRecovery turns a panicking run into a failed run
	EnableRecovery bool
}

// DefaultWorkerConfig returns a worker configuration with sensible defaults
func DefaultWorkerConfig(workerName string) WorkerConfig {
	return WorkerConfig{
		WorkerName:      workerName,
		Interval:        time.Hour,
		RunOnStart:      true,
		ShutdownTimeout: 30 * time.Second,
		EnableRecovery:  true,
	}
}

// BaseWorker tracks running state and run statistics
type BaseWorker struct {
	config  WorkerConfig
	running bool
	mu      sync.RWMutex

	runsTotal     int64
	runsSucceeded int64
	runsFailed    int64
	totalRunTime  time.Duration
	startTime     time.Time
	lastRunTime   time.Time
	statsMu       sync.RWMutex
}

// NewBaseWorker creates a new base worker
func NewBaseWorker(config WorkerConfig) *BaseWorker {
	return &BaseWorker{
		config: config,
	}
}

// Name returns the worker's name
func (w *BaseWorker) Name() string {
	return w.config.WorkerName
}

// IsRunning returns whether the worker is currently running
func (w *BaseWorker) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *BaseWorker) setRunning(running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = running
	if running {
		w.startTime = time.Now()
	}
}

// Stats returns worker statistics
func (w *BaseWorker) Stats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	var avgRunTime time.Duration
	if w.runsTotal > 0 {
		avgRunTime = w.totalRunTime / time.Duration(w.runsTotal)
	}

	var uptime time.Duration
	if !w.startTime.IsZero() {
		uptime = time.Since(w.startTime)
	}

	return WorkerStats{
		WorkerName:     w.config.WorkerName,
		RunsTotal:      w.runsTotal,
		RunsSucceeded:  w.runsSucceeded,
		RunsFailed:     w.runsFailed,
		AverageRunTime: avgRunTime,
		LastRunTime:    w.lastRunTime,
		Uptime:         uptime,
		IsRunning:      w.IsRunning(),
	}
}

func (w *BaseWorker) recordRun(startTime time.Time, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.runsTotal++
	if err != nil {
		w.runsFailed++
	} else {
		w.runsSucceeded++
	}
	w.totalRunTime += time.Since(startTime)
	w.lastRunTime = time.Now()
}

// Config returns the worker configuration
func (w *BaseWorker) Config() WorkerConfig {
	return w.config
}

// WorkerPool starts and stops the server's workers together
type WorkerPool struct {
	workers []Worker
	mu      sync.RWMutex
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool() *WorkerPool {
	return &WorkerPool{
		workers: make([]Worker, 0),
	}
}

// AddWorker adds a worker to the pool
func (p *WorkerPool) AddWorker(worker Worker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.workers = append(p.workers, worker)
}

// StartAll starts all workers in the pool, stopping at the first failure
func (p *WorkerPool) StartAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, worker := range p.workers {
		if err := worker.Start(ctx); err != nil {
			return NewWorkerError(worker.Name(), "start", err, "")
		}
	}
	return nil
}

// StopAll stops all workers concurrently and returns the first error
func (p *WorkerPool) StopAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var wg sync.WaitGroup
	errChan := make(chan error, len(p.workers))

	for _, worker := range p.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Stop(ctx); err != nil {
				errChan <- err
			}
		}(worker)
	}

	wg.Wait()
	close(errChan)

	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}

// GetAllStats returns statistics for all workers
func (p *WorkerPool) GetAllStats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make([]WorkerStats, 0, len(p.workers))
	for _, worker := range p.workers {
		stats = append(stats, worker.Stats())
	}
	return stats
}

// Count returns the number of workers in the pool
func (p *WorkerPool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.workers)
}

// Task is one run of a periodic worker
type Task func(ctx context.Context) error

// Recoverable wraps a task so a panic is returned as a WorkerPanicError
func Recoverable(task Task) Task {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &WorkerPanicError{
					Panic: r,
				}
			}
		}()
		return task(ctx)
	}
}

// WorkerError represents a worker-specific error
type WorkerError struct {
	WorkerName string
	Operation  string
	Err        error
	Message    string
}

func (e *WorkerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.WorkerName + ":" + e.Operation
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// NewWorkerError creates a new worker error
func NewWorkerError(workerName, operation string, err error, message string) *WorkerError {
	return &WorkerError{
		WorkerName: workerName,
		Operation:  operation,
		Err:        err,
		Message:    message,
	}
}

// WorkerPanicError represents a panic raised inside a run
type WorkerPanicError struct {
	Panic interface{}
}

func (e *WorkerPanicError) Error() string {
	return "worker panic: " + formatPanic(e.Panic)
}

func formatPanic(p interface{}) string {
	switch v := p.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "unknown panic"
	}
}
