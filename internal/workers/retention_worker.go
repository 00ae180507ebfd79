package workers

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// AnalyticsCleaner deletes analytics records older than a number of days
type AnalyticsCleaner interface {
	Cleanup(ctx context.Context, daysToKeep int) (int, error)
}

// RetentionWorkerConfig configures the analytics retention worker
type RetentionWorkerConfig struct {
	WorkerConfig
	DaysToKeep int
	Cleaner    AnalyticsCleaner
	Logger     *log.Logger
}

// RetentionWorker periodically drops analytics older than the retention window
type RetentionWorker struct {
	*BaseWorker
	daysToKeep int
	cleaner    AnalyticsCleaner
	logger     *log.Logger

	cancel context.CancelFunc
	done   chan struct{}
	stopMu sync.Mutex
}

// NewRetentionWorker creates a new retention worker
func NewRetentionWorker(config RetentionWorkerConfig) *RetentionWorker {
	if config.WorkerName == "" {
		config.WorkerName = "analytics-retention"
	}
	if config.Interval <= 0 {
		config.Interval = DefaultWorkerConfig(config.WorkerName).Interval
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &RetentionWorker{
		BaseWorker: NewBaseWorker(config.WorkerConfig),
		daysToKeep: config.DaysToKeep,
		cleaner:    config.Cleaner,
		logger:     logger,
	}
}

// Start launches the cleanup loop; it runs until Stop or until ctx is cancelled
func (w *RetentionWorker) Start(ctx context.Context) error {
	w.stopMu.Lock()
	defer w.stopMu.Unlock()

	if w.IsRunning() {
		return NewWorkerError(w.Name(), "start", nil, "worker already running")
	}
	if w.cleaner == nil {
		return NewWorkerError(w.Name(), "start", nil, "no analytics cleaner configured")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.setRunning(true)

	w.logger.Printf("Starting %s (every %v, keeping %d days)", w.Name(), w.config.Interval, w.daysToKeep)
	go w.loop(loopCtx, w.done)
	return nil
}

// Stop cancels the loop and waits for an in-flight run
func (w *RetentionWorker) Stop(ctx context.Context) error {
	w.stopMu.Lock()
	defer w.stopMu.Unlock()

	if !w.IsRunning() {
		return nil
	}
	w.cancel()

	timeout := w.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultWorkerConfig(w.Name()).ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-w.done:
	case <-shutdownCtx.Done():
		return NewWorkerError(w.Name(), "stop", shutdownCtx.Err(), "")
	}

	w.setRunning(false)
	w.logger.Printf("%s stopped", w.Name())
	return nil
}

func (w *RetentionWorker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if w.config.RunOnStart {
		w.RunOnce(ctx)
	}

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs one cleanup and records its outcome
func (w *RetentionWorker) RunOnce(ctx context.Context) error {
	task := w.cleanup
	if w.config.EnableRecovery {
		task = Recoverable(task)
	}

	startTime := time.Now()
	err := task(ctx)
	w.recordRun(startTime, err)
	if err != nil {
		w.logger.Printf("❌ Analytics cleanup failed: %v", err)
	}
	return err
}

func (w *RetentionWorker) cleanup(ctx context.Context) error {
	removed, err := w.cleaner.Cleanup(ctx, w.daysToKeep)
	if err != nil {
		return NewWorkerError(w.Name(), "cleanup", err, "")
	}
	if removed > 0 {
		w.logger.Printf("✅ Removed %d analytics records older than %d days", removed, w.daysToKeep)
	}
	return nil
}
