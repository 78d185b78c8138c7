package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskRequestEvent(t *testing.T) {
	type testPayload struct {
		ID     uuid.UUID `json:"id"`
		Action string    `json:"action"`
	}
	payload := testPayload{ID: uuid.New(), Action: "test_action"}

	event, err := NewTaskRequestEvent("test_event", payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "test_event", event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded testPayload
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewTaskRequestEventUnmarshallablePayload(t *testing.T) {
	_, err := NewTaskRequestEvent("bad", make(chan int))
	assert.Error(t, err)
}

func TestNewExampleGenerationEvent(t *testing.T) {
	setID, userID := uuid.New(), uuid.New()

	event, err := NewExampleGenerationEvent(setID, userID)
	require.NoError(t, err)
	assert.Equal(t, TypeExampleGeneration, event.Type)

	var payload ExampleGenerationPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, setID, payload.StudySetID)
	assert.Equal(t, userID, payload.UserID)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *TaskRequestEvent
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *TaskRequestEvent
	h := HandlerFunc(func(ctx context.Context, event *TaskRequestEvent) error {
		got = event
		return nil
	})

	event, err := NewTaskRequestEvent("x", nil)
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)
}
