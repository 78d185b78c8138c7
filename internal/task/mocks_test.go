package task

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memTaskStore is an in-memory TaskStore. The Fn fields override the
// default behavior when set.
type memTaskStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record
	history map[uuid.UUID][]TaskStatus

	SaveFn       func(ctx context.Context, task Task) error
	UpdateFn     func(ctx context.Context, id uuid.UUID, status TaskStatus, msg string) error
	ProcessingFn func(ctx context.Context, olderThan time.Duration) ([]Record, error)
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{
		records: make(map[uuid.UUID]*Record),
		history: make(map[uuid.UUID][]TaskStatus),
	}
}

func (s *memTaskStore) put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = &rec
}

func (s *memTaskStore) SaveTask(ctx context.Context, task Task) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, task)
	}
	s.put(Record{ID: task.ID(), Type: task.Type(), Payload: task.Payload(), Status: task.Status()})
	return nil
}

func (s *memTaskStore) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status TaskStatus, msg string) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, status, msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		rec.Status = status
		rec.ErrorMessage = msg
	}
	s.history[id] = append(s.history[id], status)
	return nil
}

func (s *memTaskStore) byStatus(status TaskStatus) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, rec := range s.records {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out
}

func (s *memTaskStore) GetPendingTasks(ctx context.Context) ([]Record, error) {
	return s.byStatus(TaskStatusPending), nil
}

func (s *memTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Record, error) {
	if s.ProcessingFn != nil {
		return s.ProcessingFn(ctx, olderThan)
	}
	return s.byStatus(TaskStatusProcessing), nil
}

func (s *memTaskStore) WithTx(tx *sql.Tx) TaskStore { return s }

func (s *memTaskStore) status(id uuid.UUID) TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		return rec.Status
	}
	return ""
}

func (s *memTaskStore) errorMessage(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		return rec.ErrorMessage
	}
	return ""
}

// funcTask is a Task whose Execute calls ExecuteFn.
type funcTask struct {
	id        uuid.UUID
	status    TaskStatus
	ExecuteFn func(ctx context.Context) error
}

const funcTaskType = "func"

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), status: TaskStatusPending, ExecuteFn: fn}
}

func (t *funcTask) ID() uuid.UUID      { return t.id }
func (t *funcTask) Type() string       { return funcTaskType }
func (t *funcTask) Payload() []byte    { return []byte(`{}`) }
func (t *funcTask) Status() TaskStatus { return t.status }

func (t *funcTask) Execute(ctx context.Context) error {
	if t.ExecuteFn == nil {
		return nil
	}
	return t.ExecuteFn(ctx)
}

// funcFactory restores funcTasks whose Execute calls ExecuteFn.
type funcFactory struct {
	ExecuteFn func(ctx context.Context) error
}

func (f *funcFactory) Type() string { return funcTaskType }

func (f *funcFactory) FromEvent(event *events.TaskRequestEvent) (Task, error) {
	return newFuncTask(f.ExecuteFn), nil
}

func (f *funcFactory) Restore(rec Record) (Task, error) {
	return &funcTask{id: rec.ID, status: rec.Status, ExecuteFn: f.ExecuteFn}, nil
}

// memExampleStore is an in-memory ExampleStore.
type memExampleStore struct {
	mu      sync.Mutex
	records []domain.Vocabulary

	ListErr   error
	UpdateErr map[uuid.UUID]error
}

func (s *memExampleStore) ListMissingExamples(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Vocabulary
	for _, v := range s.records {
		if v.StudySetID == studySetID && v.Example == "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *memExampleStore) UpdateExample(ctx context.Context, id uuid.UUID, example string) error {
	if err := s.UpdateErr[id]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Example = example
			return nil
		}
	}
	return store.ErrVocabularyNotFound
}

func (s *memExampleStore) example(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.records {
		if v.ID == id {
			return v.Example
		}
	}
	return ""
}
