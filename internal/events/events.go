package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TypeExampleGeneration asks for example sentences for a study set.
const TypeExampleGeneration = "example_generation"

// TaskRequestEvent carries a request for background work from a service to
// whichever task factory subscribed to Type. Payload stays raw JSON so this
// package never imports task.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExampleGenerationPayload is the payload of a TypeExampleGeneration event.
type ExampleGenerationPayload struct {
	StudySetID uuid.UUID `json:"study_set_id"`
	UserID     uuid.UUID `json:"user_id"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent marshals payload and stamps the event with a fresh ID.
func NewTaskRequestEvent(eventType string, payload any) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewExampleGenerationEvent builds a TypeExampleGeneration event.
func NewExampleGenerationEvent(studySetID, userID uuid.UUID) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(TypeExampleGeneration, ExampleGenerationPayload{
		StudySetID: studySetID,
		UserID:     userID,
	})
}

// EventHandler consumes events of the types it subscribed to.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskRequestEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	return f(ctx, event)
}

// EventEmitter is what services publish through. Delivery to handlers is
// the emitter's business.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
