package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/logger"
)

// ErrQueueFull is returned by Submit when the in-memory queue has no room.
// The task stays persisted as pending and is picked up on the next restart.
var ErrQueueFull = errors.New("task queue is full, try again later")

// ErrRunnerStopped is returned by Submit after Stop.
var ErrRunnerStopped = errors.New("task runner is stopped")

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks
	// If zero, defaults to 5 minutes
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner manages background task processing
type TaskRunner struct {
	store    TaskStore
	registry *Registry
	config   TaskRunnerConfig
	clock    clockwork.Clock
	logger   *slog.Logger

	taskChan chan Task
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewTaskRunner creates a new TaskRunner. Persisted tasks are restored
// through registry. A nil clock uses the real clock.
func NewTaskRunner(
	store TaskStore,
	registry *Registry,
	config TaskRunnerConfig,
	clock clockwork.Clock,
	log *slog.Logger,
) *TaskRunner {
	if config.StuckTaskCheckInterval <= 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	log = log.With(slog.String("component", "task_runner"))

	return &TaskRunner{
		store:    store,
		registry: registry,
		config:   config,
		clock:    clock,
		logger:   log,
		taskChan: make(chan Task, config.QueueSize),
		ctx:      logger.WithLogger(ctx, log),
		cancel:   cancel,
	}
}

// Submit persists task as pending and queues it for execution.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrRunnerStopped
	}

	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if !r.enqueue(task) {
		return ErrQueueFull
	}
	return nil
}

// Start restores unfinished tasks, then starts the workers and the stuck
// task monitor.
func (r *TaskRunner) Start() error {
	if err := r.Recover(r.ctx); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	r.logger.Info("task runner started",
		slog.Int("worker_count", r.config.WorkerCount),
		slog.Int("queue_size", r.config.QueueSize))
	return nil
}

// Stop cancels in-flight work and waits for the workers to exit. Queued
// tasks stay pending in the store.
func (r *TaskRunner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

// Recover requeues pending tasks and resets tasks left in processing by a
// previous run.
func (r *TaskRunner) Recover(ctx context.Context) error {
	pending, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	processing, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		slog.Int("pending_count", len(pending)),
		slog.Int("processing_count", len(processing)))

	for _, rec := range pending {
		r.requeue(ctx, rec, "")
	}
	for _, rec := range processing {
		r.requeue(ctx, rec, "reset after recovery")
	}
	return nil
}

// requeue restores rec and puts it back on the queue. A non-empty reason
// resets the stored status to pending first.
func (r *TaskRunner) requeue(ctx context.Context, rec Record, reason string) {
	log := r.logger.With(
		slog.String("task_id", rec.ID.String()),
		slog.String("task_type", rec.Type))

	task, err := r.registry.Restore(rec)
	if err != nil {
		log.Error("failed to restore task", slog.String("error", err.Error()))
		if updateErr := r.store.UpdateTaskStatus(ctx, rec.ID, TaskStatusFailed, err.Error()); updateErr != nil {
			log.Error("failed to mark unrestorable task as failed", slog.String("error", updateErr.Error()))
		}
		return
	}

	if reason != "" {
		if err := r.store.UpdateTaskStatus(ctx, rec.ID, TaskStatusPending, reason); err != nil {
			log.Error("failed to reset task status", slog.String("error", err.Error()))
			return
		}
	}

	if !r.enqueue(task) {
		log.Error("failed to requeue task, queue is full")
		return
	}
	log.Debug("requeued task")
}

func (r *TaskRunner) enqueue(task Task) bool {
	select {
	case r.taskChan <- task:
		return true
	default:
		return false
	}
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", slog.Int("worker_id", id))
	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", slog.Int("worker_id", id))
			return
		case task := <-r.taskChan:
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task, workerID int) {
	log := r.logger.With(
		slog.String("task_id", task.ID().String()),
		slog.String("task_type", task.Type()),
		slog.Int("worker_id", workerID))
	ctx := logger.WithLogger(r.ctx, log)

	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		log.Error("failed to update task status to processing", slog.String("error", err.Error()))
		return
	}

	log.Info("processing task")
	start := r.clock.Now()

	if err := task.Execute(ctx); err != nil {
		if ctx.Err() != nil {
			// Shutdown interrupted the task; leave it in processing so the
			// next start resets it.
			log.Warn("task interrupted by shutdown", slog.String("error", err.Error()))
			return
		}
		log.Error("task execution failed", slog.String("error", err.Error()))
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			log.Error("failed to update task status to failed", slog.String("error", updateErr.Error()))
		}
		return
	}

	log.Info("task completed successfully", slog.Duration("duration", r.clock.Since(start)))
	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); err != nil {
		log.Error("failed to update task status to completed", slog.String("error", err.Error()))
	}
}

// stuckTaskMonitor periodically resets tasks that have been in "processing"
// state for too long
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := r.clock.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.Chan():
			r.resetStuckTasks(r.ctx)
		}
	}
}

func (r *TaskRunner) resetStuckTasks(ctx context.Context) {
	stuck, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
	if err != nil {
		r.logger.Error("failed to check for stuck tasks", slog.String("error", err.Error()))
		return
	}
	if len(stuck) == 0 {
		return
	}

	r.logger.Info("found stuck tasks", slog.Int("count", len(stuck)))
	for _, rec := range stuck {
		r.requeue(ctx, rec, "reset after being stuck in processing state")
	}
}
