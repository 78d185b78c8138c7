package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
)

// TaskStatus is the lifecycle state stored in the tasks table.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task is one queued job. Payload is the JSON persisted alongside it so the
// runner can rebuild the job through a Factory after a restart.
type Task interface {
	ID() uuid.UUID
	Type() string
	Payload() []byte
	// Status is the state the task was created or restored in.
	Status() TaskStatus
	Execute(ctx context.Context) error
}

// Record is the persisted form of a task.
type Record struct {
	ID           uuid.UUID
	Type         string
	Payload      []byte
	Status       TaskStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskStore records task lifecycle so unfinished work survives a restart.
type TaskStore interface {
	SaveTask(ctx context.Context, task Task) error
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error
	// GetPendingTasks lists pending tasks oldest first.
	GetPendingTasks(ctx context.Context) ([]Record, error)
	// GetProcessingTasks lists processing tasks. A non-zero olderThan keeps
	// only those whose updated_at is at least that far in the past.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Record, error)
	WithTx(tx *sql.Tx) TaskStore
}

// Factory builds tasks of one type, either fresh from an event or restored
// from a persisted record.
type Factory interface {
	// Type is the task type produced by the factory. It matches the event
	// type the factory consumes.
	Type() string

	// FromEvent creates a new pending task.
	FromEvent(event *events.TaskRequestEvent) (Task, error)

	// Restore rebuilds a persisted task, keeping its ID.
	Restore(rec Record) (Task, error)
}
