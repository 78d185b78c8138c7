package studysession

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/study"
)

// Session is one running study engine.
type Session struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	StudySetID uuid.UUID
	Mode       domain.StudyMode
	CreatedAt  time.Time

	mu         sync.Mutex
	lastAccess time.Time
	flashcards *study.Flashcards
	quiz       *study.Quiz
	matching   *study.Matching

	// The flashcard engine calls back from its timer goroutine, so the buffer
	// has its own lock.
	eventsMu      sync.Mutex
	notifications []study.Notification
	finished      bool
}

// Snapshot is the state of a session after an operation.
type Snapshot struct {
	ID            uuid.UUID
	StudySetID    uuid.UUID
	Mode          domain.StudyMode
	Result        string
	Finished      bool
	Flashcards    *study.FlashcardState
	Quiz          *study.QuizState
	Matching      *study.MatchingState
	Notifications []study.Notification
}

func (s *Session) notify(n study.Notification) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *Session) finish() {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	s.finished = true
}

// snapshot must be called with s.mu held. It drains buffered notifications.
func (s *Session) snapshot(result string) *Snapshot {
	snap := &Snapshot{
		ID:         s.ID,
		StudySetID: s.StudySetID,
		Mode:       s.Mode,
		Result:     result,
	}

	switch s.Mode {
	case domain.StudyModeFlashcards:
		st := s.flashcards.State()
		snap.Flashcards = &st
	case domain.StudyModeMultipleChoice:
		st := s.quiz.State()
		snap.Quiz = &st
	case domain.StudyModeMatching:
		st := s.matching.State()
		snap.Matching = &st
	}

	s.eventsMu.Lock()
	snap.Finished = s.finished
	snap.Notifications = s.notifications
	s.notifications = nil
	s.eventsMu.Unlock()

	if snap.Notifications == nil {
		snap.Notifications = []study.Notification{}
	}
	return snap
}

func (s *Session) close() {
	if s.flashcards != nil {
		s.flashcards.Stop()
	}
}
