package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vocabdeck/vocabdeck-api/internal/events"
)

// Submitter accepts tasks for background execution. *TaskRunner implements it.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler turns task request events into tasks using the
// factory registered for the event type, and submits them.
type TaskFactoryEventHandler struct {
	registry  *Registry
	submitter Submitter
	logger    *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses registry
// to create tasks and submits them to submitter.
func NewTaskFactoryEventHandler(registry *Registry, submitter Submitter, logger *slog.Logger) *TaskFactoryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskFactoryEventHandler{
		registry:  registry,
		submitter: submitter,
		logger:    logger.With(slog.String("component", "task_factory_event_handler")),
	}
}

// Subscribe registers h on emitter for every task type in the registry.
func (h *TaskFactoryEventHandler) Subscribe(emitter *events.InMemoryEventEmitter) {
	for _, t := range h.registry.Types() {
		emitter.Subscribe(t, h)
	}
}

// HandleEvent implements events.EventHandler
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	log := h.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))

	factory, err := h.registry.Factory(event.Type)
	if err != nil {
		log.Debug("ignoring event without task factory")
		return err
	}

	task, err := factory.FromEvent(event)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, task); err != nil {
		log.Error("failed to submit task",
			slog.String("task_id", task.ID().String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to submit task: %w", err)
	}

	log.Info("task created and submitted", slog.String("task_id", task.ID().String()))
	return nil
}

var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
