package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/api/shared"
	"github.com/vocabdeck/vocabdeck-api/internal/service/studysession"
)

// StudySessions runs server-side study sessions. *studysession.Manager
// implements it.
type StudySessions interface {
	Start(ctx context.Context, userID, studySetID uuid.UUID, mode string) (*studysession.Snapshot, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
	End(ctx context.Context, userID, sessionID uuid.UUID) error

	Flip(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
	Next(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
	Previous(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
	Swipe(ctx context.Context, userID, sessionID uuid.UUID, startX, endX float64) (*studysession.Snapshot, error)

	SelectAnswer(ctx context.Context, userID, sessionID uuid.UUID, option string) (*studysession.Snapshot, error)
	Advance(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)

	SelectTile(ctx context.Context, userID, sessionID uuid.UUID, tileID string) (*studysession.Snapshot, error)
	Restart(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
	Continue(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)
}

var _ StudySessions = (*studysession.Manager)(nil)

// SessionHandler serves study session routes.
type SessionHandler struct {
	sessions StudySessions
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions StudySessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionOp func(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error)

// StartSession handles POST /api/study-sets/{id}/sessions.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := h.sessions.Start(r.Context(), userID, studySetID, req.Mode)
	if err != nil {
		handleServiceError(w, r, err, "Failed to start study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, snapshotToResponse(snap))
}

// GetSession handles GET /api/sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Get)
}

// EndSession handles DELETE /api/sessions/{id}.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sessions.End(r.Context(), userID, sessionID); err != nil {
		handleServiceError(w, r, err, "Failed to end study session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Flip handles POST /api/sessions/{id}/flashcards/flip.
func (h *SessionHandler) Flip(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Flip)
}

// Next handles POST /api/sessions/{id}/flashcards/next.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Next)
}

// Previous handles POST /api/sessions/{id}/flashcards/previous.
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Previous)
}

// Swipe handles POST /api/sessions/{id}/flashcards/swipe.
func (h *SessionHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error) {
		return h.sessions.Swipe(ctx, userID, sessionID, req.StartX, req.EndX)
	})
}

// SelectAnswer handles POST /api/sessions/{id}/quiz/select.
func (h *SessionHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req SelectAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error) {
		return h.sessions.SelectAnswer(ctx, userID, sessionID, req.Option)
	})
}

// Advance handles POST /api/sessions/{id}/quiz/advance.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Advance)
}

// SelectTile handles POST /api/sessions/{id}/matching/select.
func (h *SessionHandler) SelectTile(w http.ResponseWriter, r *http.Request) {
	var req SelectTileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, userID, sessionID uuid.UUID) (*studysession.Snapshot, error) {
		return h.sessions.SelectTile(ctx, userID, sessionID, req.TileID)
	})
}

// Restart handles POST /api/sessions/{id}/matching/restart.
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Restart)
}

// Continue handles POST /api/sessions/{id}/matching/continue.
func (h *SessionHandler) Continue(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.sessions.Continue)
}

func (h *SessionHandler) run(w http.ResponseWriter, r *http.Request, op sessionOp) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	snap, err := op(r.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to update study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snapshotToResponse(snap))
}
