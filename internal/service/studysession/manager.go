package studysession

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"
	"github.com/vocabdeck/vocabdeck-api/internal/config"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/study"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
)

// StudySetLoader loads a study set with its vocabulary on behalf of a user.
type StudySetLoader interface {
	GetStudySet(ctx context.Context, userID, studySetID uuid.UUID) (*service.StudySetDetail, error)
}

// Manager creates sessions and routes input to their engines.
type Manager struct {
	loader StudySetLoader
	cfg    config.StudyConfig
	clock  clockwork.Clock
	logger *slog.Logger

	// idleTTL bounds the time since a session's last access. The cache
	// itself never expires entries; lookup and sweepIdle enforce idleTTL
	// against clock.
	idleTTL  time.Duration
	sessions *expirable.LRU[uuid.UUID, *Session]
	newRand  func() study.Randomizer
}

// NewManager creates a Manager. A nil clock uses the real clock.
func NewManager(loader StudySetLoader, cfg config.StudyConfig, clock clockwork.Clock, logger *slog.Logger) *Manager {
	return newManager(loader, cfg, cfg.SessionTTL(), clock, logger)
}

func newManager(
	loader StudySetLoader,
	cfg config.StudyConfig,
	idleTTL time.Duration,
	clock clockwork.Clock,
	logger *slog.Logger,
) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		loader:  loader,
		cfg:     cfg,
		clock:   clock,
		idleTTL: idleTTL,
		logger:  logger.With(slog.String("component", "study_sessions")),
		newRand: study.NewRandomizer,
	}
	// A zero TTL disables wall-clock expiry; only capacity evicts.
	m.sessions = expirable.NewLRU[uuid.UUID, *Session](cfg.MaxSessions, m.onEvict, 0)
	return m
}

func (m *Manager) onEvict(id uuid.UUID, s *Session) {
	s.close()
	m.logger.Debug("study session evicted", slog.String("session_id", id.String()))
}

// Len returns the number of cached sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Start creates a session over the study set's vocabulary. An empty study set
// yields a session whose engine is in its empty state.
func (m *Manager) Start(ctx context.Context, userID, studySetID uuid.UUID, mode string) (*Snapshot, error) {
	studyMode, err := domain.ParseStudyMode(mode)
	if err != nil {
		return nil, errors.Join(ErrInvalidMode, err)
	}

	set, err := m.loader.GetStudySet(ctx, userID, studySetID)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		StudySetID: studySetID,
		Mode:       studyMode,
		CreatedAt:  now,
		lastAccess: now,
	}

	opts := []study.Option{
		study.WithRandomizer(m.newRand()),
		study.WithClock(m.clock),
		study.WithNotifier(s.notify),
		study.WithCompletion(s.finish),
		study.WithTransitionDelay(m.cfg.TransitionDelay()),
		study.WithSwipeThreshold(m.cfg.SwipeThreshold),
		study.WithPairLimit(m.cfg.MatchingPairLimit),
		study.WithOptionCount(m.cfg.QuizOptionCount),
	}
	switch studyMode {
	case domain.StudyModeFlashcards:
		s.flashcards = study.NewFlashcards(set.Vocabulary, opts...)
	case domain.StudyModeMultipleChoice:
		s.quiz = study.NewQuiz(set.Vocabulary, opts...)
	case domain.StudyModeMatching:
		s.matching = study.NewMatching(set.Vocabulary, opts...)
	}

	m.sweepIdle()
	m.sessions.Add(s.ID, s)
	m.logger.InfoContext(ctx, "study session started",
		slog.String("session_id", s.ID.String()),
		slog.String("study_set_id", studySetID.String()),
		slog.String("mode", string(studyMode)),
		slog.Int("vocabulary_count", len(set.Vocabulary)))

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot("started"), nil
}

// Get returns the current state of a session.
func (m *Manager) Get(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, "", func(*Session) (string, error) {
		return "state", nil
	})
}

// End stops and forgets a session.
func (m *Manager) End(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := m.lookup(userID, sessionID); err != nil {
		return err
	}
	m.sessions.Remove(sessionID)
	m.logger.DebugContext(ctx, "study session ended", slog.String("session_id", sessionID.String()))
	return nil
}

// Flip turns the current flashcard over.
func (m *Manager) Flip(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeFlashcards, func(s *Session) (string, error) {
		if s.flashcards.Flip() {
			return "flipped", nil
		}
		return "ignored", nil
	})
}

// Next requests the next flashcard.
func (m *Manager) Next(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeFlashcards, func(s *Session) (string, error) {
		return navigationResult(s.flashcards.Next()), nil
	})
}

// Previous requests the previous flashcard.
func (m *Manager) Previous(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeFlashcards, func(s *Session) (string, error) {
		return navigationResult(s.flashcards.Previous()), nil
	})
}

// Swipe resolves a horizontal drag into next, previous or flip. A drag that
// changed nothing reports "ignored".
func (m *Manager) Swipe(ctx context.Context, userID, sessionID uuid.UUID, startX, endX float64) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeFlashcards, func(s *Session) (string, error) {
		swipe := s.flashcards.Swipe(startX, endX)
		switch {
		case !swipe.Applied:
			return "ignored", nil
		case swipe.Navigation == study.NavigationCompleted:
			return "completed", nil
		default:
			return swipe.Gesture.String(), nil
		}
	})
}

// SelectAnswer picks an option of the current quiz question.
func (m *Manager) SelectAnswer(ctx context.Context, userID, sessionID uuid.UUID, option string) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeMultipleChoice, func(s *Session) (string, error) {
		if s.quiz.Select(option) {
			return "selected", nil
		}
		return "ignored", nil
	})
}

// Advance moves past the current quiz question or asks for a retry.
func (m *Manager) Advance(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeMultipleChoice, func(s *Session) (string, error) {
		switch s.quiz.Advance() {
		case study.AdvanceRetry:
			return "retry", nil
		case study.AdvanceNext:
			return "next", nil
		case study.AdvanceCompleted:
			return "completed", nil
		default:
			return "ignored", nil
		}
	})
}

// SelectTile selects a matching tile.
func (m *Manager) SelectTile(ctx context.Context, userID, sessionID uuid.UUID, tileID string) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeMatching, func(s *Session) (string, error) {
		switch s.matching.Select(tileID) {
		case study.SelectHeld:
			return "held", nil
		case study.SelectMatched:
			return "matched", nil
		case study.SelectMismatched:
			return "mismatched", nil
		default:
			return "ignored", nil
		}
	})
}

// Restart deals a fresh matching board.
func (m *Manager) Restart(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeMatching, func(s *Session) (string, error) {
		s.matching.Restart()
		return "restarted", nil
	})
}

// Continue leaves a completed matching board.
func (m *Manager) Continue(ctx context.Context, userID, sessionID uuid.UUID) (*Snapshot, error) {
	return m.do(userID, sessionID, domain.StudyModeMatching, func(s *Session) (string, error) {
		if s.matching.Continue() {
			return "continued", nil
		}
		return "ignored", nil
	})
}

// do runs fn on a session under its lock. An empty mode accepts any session.
func (m *Manager) do(userID, sessionID uuid.UUID, mode domain.StudyMode, fn func(*Session) (string, error)) (*Snapshot, error) {
	s, err := m.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != "" && s.Mode != mode {
		return nil, ErrWrongMode
	}

	result, err := fn(s)
	if err != nil {
		return nil, err
	}
	s.lastAccess = m.clock.Now()
	return s.snapshot(result), nil
}

// lookup finds a live session owned by userID.
func (m *Manager) lookup(userID, sessionID uuid.UUID) (*Session, error) {
	s, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if m.idle(s) {
		m.sessions.Remove(sessionID)
		return nil, ErrSessionNotFound
	}

	if s.UserID != userID {
		return nil, ErrSessionNotOwned
	}
	return s, nil
}

func (m *Manager) idle(s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return m.clock.Since(s.lastAccess) > m.idleTTL
}

// sweepIdle drops every session idle for longer than idleTTL.
func (m *Manager) sweepIdle() {
	for _, id := range m.sessions.Keys() {
		s, ok := m.sessions.Peek(id)
		if ok && m.idle(s) {
			m.sessions.Remove(id)
		}
	}
}

func navigationResult(r study.NavigationResult) string {
	switch r {
	case study.NavigationScheduled:
		return "scheduled"
	case study.NavigationCompleted:
		return "completed"
	default:
		return "ignored"
	}
}
