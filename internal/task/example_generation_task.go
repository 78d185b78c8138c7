package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// TaskTypeExampleGeneration fills in missing example sentences of a study set.
const TaskTypeExampleGeneration = events.TypeExampleGeneration

// Common errors
var (
	ErrNilExampleStore = errors.New("example store cannot be nil")
	ErrNilGenerator    = errors.New("generator cannot be nil")
	ErrEmptyStudySetID = errors.New("study set ID cannot be empty")
)

// ExampleStore is the slice of the vocabulary store the task needs.
type ExampleStore interface {
	ListMissingExamples(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error)
	UpdateExample(ctx context.Context, id uuid.UUID, example string) error
}

// ExampleGenerationTask asks the generator for example sentences for every
// record of a study set that has none, in batches of generation.MaxBatchSize.
type ExampleGenerationTask struct {
	id        uuid.UUID
	payload   events.ExampleGenerationPayload
	status    TaskStatus
	store     ExampleStore
	generator generation.ExampleGenerator
	logger    *slog.Logger
}

// ID returns the task's unique identifier
func (t *ExampleGenerationTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeExampleGeneration
func (t *ExampleGenerationTask) Type() string { return TaskTypeExampleGeneration }

// Status returns the status the task was created or restored with
func (t *ExampleGenerationTask) Status() TaskStatus { return t.status }

// StudySetID returns the study set the task fills in.
func (t *ExampleGenerationTask) StudySetID() uuid.UUID { return t.payload.StudySetID }

// Payload returns the JSON-encoded task payload
func (t *ExampleGenerationTask) Payload() []byte {
	data, err := json.Marshal(t.payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", slog.String("error", err.Error()))
		return []byte("{}")
	}
	return data
}

// Execute generates and stores the missing examples. Records deleted while
// the task runs are skipped.
func (t *ExampleGenerationTask) Execute(ctx context.Context) error {
	records, err := t.store.ListMissingExamples(ctx, t.payload.StudySetID)
	if err != nil {
		return fmt.Errorf("failed to list vocabulary without examples: %w", err)
	}
	if len(records) == 0 {
		t.logger.Info("no vocabulary missing examples")
		return nil
	}

	written := 0
	for start := 0; start < len(records); start += generation.MaxBatchSize {
		batch := records[start:min(start+generation.MaxBatchSize, len(records))]

		examples, err := t.generator.GenerateExamples(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to generate examples: %w", err)
		}

		n, err := t.applyExamples(ctx, batch, examples)
		written += n
		if err != nil {
			return err
		}
	}

	t.logger.Info("example generation finished",
		slog.Int("missing", len(records)),
		slog.Int("written", written))
	return nil
}

func (t *ExampleGenerationTask) applyExamples(ctx context.Context, batch []domain.Vocabulary, examples []generation.Example) (int, error) {
	wanted := make(map[uuid.UUID]bool, len(batch))
	for _, v := range batch {
		wanted[v.ID] = true
	}

	written := 0
	for _, ex := range examples {
		sentence := strings.TrimSpace(ex.Sentence)
		if !wanted[ex.VocabularyID] || sentence == "" || utf8.RuneCountInString(sentence) > domain.MaxExampleLength {
			continue
		}
		// A second example for the same record is ignored.
		wanted[ex.VocabularyID] = false

		err := t.store.UpdateExample(ctx, ex.VocabularyID, sentence)
		if errors.Is(err, store.ErrVocabularyNotFound) {
			t.logger.Debug("vocabulary removed before example was stored",
				slog.String("vocabulary_id", ex.VocabularyID.String()))
			continue
		}
		if err != nil {
			return written, fmt.Errorf("failed to store example: %w", err)
		}
		written++
	}
	return written, nil
}

// ExampleGenerationTaskFactory creates ExampleGenerationTasks.
type ExampleGenerationTaskFactory struct {
	store     ExampleStore
	generator generation.ExampleGenerator
	logger    *slog.Logger
}

// NewExampleGenerationTaskFactory creates a factory for example generation tasks.
func NewExampleGenerationTaskFactory(
	store ExampleStore,
	generator generation.ExampleGenerator,
	logger *slog.Logger,
) (*ExampleGenerationTaskFactory, error) {
	if store == nil {
		return nil, ErrNilExampleStore
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ExampleGenerationTaskFactory{
		store:     store,
		generator: generator,
		logger:    logger.With(slog.String("component", "example_generation_task_factory")),
	}, nil
}

// Type implements Factory
func (f *ExampleGenerationTaskFactory) Type() string { return TaskTypeExampleGeneration }

// FromEvent implements Factory
func (f *ExampleGenerationTaskFactory) FromEvent(event *events.TaskRequestEvent) (Task, error) {
	var payload events.ExampleGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := f.build(uuid.New(), payload, TaskStatusPending)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Restore implements Factory
func (f *ExampleGenerationTaskFactory) Restore(rec Record) (Task, error) {
	var payload events.ExampleGenerationPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := f.build(rec.ID, payload, rec.Status)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (f *ExampleGenerationTaskFactory) build(
	id uuid.UUID,
	payload events.ExampleGenerationPayload,
	status TaskStatus,
) (*ExampleGenerationTask, error) {
	if payload.StudySetID == uuid.Nil {
		return nil, ErrEmptyStudySetID
	}

	return &ExampleGenerationTask{
		id:        id,
		payload:   payload,
		status:    status,
		store:     f.store,
		generator: f.generator,
		logger: f.logger.With(
			slog.String("task_id", id.String()),
			slog.String("study_set_id", payload.StudySetID.String())),
	}, nil
}

var _ Factory = (*ExampleGenerationTaskFactory)(nil)
