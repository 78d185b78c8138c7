package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/study"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
	"github.com/vocabdeck/vocabdeck-api/internal/service/studysession"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 expiry of the access token.
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse carries a new token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// FolderRequest is the body of folder create and update.
type FolderRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// VocabularyItem is one vocabulary row in requests and parse previews.
type VocabularyItem struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// CreateStudySetRequest creates a study set with an initial vocabulary list,
// given either as rows or as import text.
type CreateStudySetRequest struct {
	Name        string           `json:"name"                  validate:"required,max=200"`
	Description string           `json:"description"           validate:"max=2000"`
	FolderID    *uuid.UUID       `json:"folder_id,omitempty"`
	Vocabulary  []VocabularyItem `json:"vocabulary,omitempty"  validate:"max=5000"`
	ImportText  string           `json:"import_text,omitempty" validate:"max=1048576"`
}

// UpdateStudySetRequest updates study set metadata.
type UpdateStudySetRequest struct {
	Name        string     `json:"name"                validate:"required,max=200"`
	Description string     `json:"description"         validate:"max=2000"`
	FolderID    *uuid.UUID `json:"folder_id,omitempty"`
}

// ReplaceVocabularyRequest replaces a study set's vocabulary list.
type ReplaceVocabularyRequest struct {
	Vocabulary []VocabularyItem `json:"vocabulary" validate:"required,max=5000"`
}

// ParseRequest previews the import of text.
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParseResponse lists the entries parsed from an import preview.
type ParseResponse struct {
	Entries []VocabularyItem `json:"entries"`
	Count   int              `json:"count"`
}

// ImportResponse reports how many terms a file import added.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ExamplesResponse reports how many records are queued for example
// generation.
type ExamplesResponse struct {
	Pending int `json:"pending"`
}

// StudySetResponse is a study set with its vocabulary.
type StudySetResponse struct {
	domain.StudySet
	Vocabulary []domain.Vocabulary `json:"vocabulary"`
}

// VocabularyListResponse is a study set's vocabulary after replacement.
type VocabularyListResponse struct {
	Vocabulary []domain.Vocabulary `json:"vocabulary"`
}

// StartSessionRequest starts a study session.
type StartSessionRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// SwipeRequest carries the horizontal start and end of a swipe gesture.
type SwipeRequest struct {
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

// SelectAnswerRequest answers the current quiz question.
type SelectAnswerRequest struct {
	Option string `json:"option" validate:"required"`
}

// SelectTileRequest selects a matching tile.
type SelectTileRequest struct {
	TileID string `json:"tile_id" validate:"required"`
}

// SessionResponse is the state of a study session after an operation.
type SessionResponse struct {
	ID            uuid.UUID            `json:"id"`
	StudySetID    uuid.UUID            `json:"study_set_id"`
	Mode          domain.StudyMode     `json:"mode"`
	Result        string               `json:"result"`
	Finished      bool                 `json:"finished"`
	Flashcards    *FlashcardsView      `json:"flashcards,omitempty"`
	Quiz          *QuizView            `json:"quiz,omitempty"`
	Matching      *MatchingView        `json:"matching,omitempty"`
	Notifications []study.Notification `json:"notifications"`
}

// FlashcardsView is the navigator state. Card is omitted for an empty deck.
type FlashcardsView struct {
	Position  int       `json:"position"`
	Total     int       `json:"total"`
	Revealed  bool      `json:"revealed"`
	Pending   string    `json:"pending,omitempty"`
	Completed bool      `json:"completed"`
	Card      *CardView `json:"card,omitempty"`
}

// CardView is the current flashcard.
type CardView struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Example    string    `json:"example,omitempty"`
}

// QuizView is the quiz state.
type QuizView struct {
	Position     int      `json:"position"`
	Total        int      `json:"total"`
	Term         string   `json:"term,omitempty"`
	Example      string   `json:"example,omitempty"`
	Options      []string `json:"options"`
	Selected     string   `json:"selected,omitempty"`
	Answered     bool     `json:"answered"`
	Correct      bool     `json:"correct"`
	CorrectCount int      `json:"correct_count"`
	Completed    bool     `json:"completed"`
}

// MatchingView is the matching board.
type MatchingView struct {
	Tiles        []TileView `json:"tiles"`
	Selected     string     `json:"selected,omitempty"`
	MatchedPairs int        `json:"matched_pairs"`
	TotalPairs   int        `json:"total_pairs"`
	Completed    bool       `json:"completed"`
}

// TileView is one matching tile.
type TileView struct {
	ID      string `json:"id"`
	Side    string `json:"side"`
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func vocabularyInputs(items []VocabularyItem) []service.VocabularyInput {
	rows := make([]service.VocabularyInput, len(items))
	for i, item := range items {
		rows[i] = service.VocabularyInput{Term: item.Term, Definition: item.Definition, Example: item.Example}
	}
	return rows
}

func vocabularyItems(records []domain.Vocabulary) []VocabularyItem {
	items := make([]VocabularyItem, len(records))
	for i, v := range records {
		items[i] = VocabularyItem{Term: v.Term, Definition: v.Definition, Example: v.Example}
	}
	return items
}

func nonNilVocabulary(records []domain.Vocabulary) []domain.Vocabulary {
	if records == nil {
		return []domain.Vocabulary{}
	}
	return records
}

func studySetToResponse(detail *service.StudySetDetail) StudySetResponse {
	return StudySetResponse{
		StudySet:   detail.StudySet,
		Vocabulary: nonNilVocabulary(detail.Vocabulary),
	}
}

func pendingName(d study.Direction) string {
	switch d {
	case study.DirectionForward:
		return "next"
	case study.DirectionBackward:
		return "previous"
	default:
		return ""
	}
}

func snapshotToResponse(snap *studysession.Snapshot) SessionResponse {
	resp := SessionResponse{
		ID:            snap.ID,
		StudySetID:    snap.StudySetID,
		Mode:          snap.Mode,
		Result:        snap.Result,
		Finished:      snap.Finished,
		Notifications: snap.Notifications,
	}
	if resp.Notifications == nil {
		resp.Notifications = []study.Notification{}
	}

	if fc := snap.Flashcards; fc != nil {
		view := &FlashcardsView{
			Position:  fc.Position,
			Total:     fc.Total,
			Revealed:  fc.Revealed,
			Pending:   pendingName(fc.Pending),
			Completed: fc.Completed,
		}
		if fc.Card != nil {
			view.Card = &CardView{
				ID:         fc.Card.ID,
				Term:       fc.Card.Term,
				Definition: fc.Card.Definition,
				Example:    fc.Card.Example,
			}
		}
		resp.Flashcards = view
	}

	if q := snap.Quiz; q != nil {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		resp.Quiz = &QuizView{
			Position:     q.Position,
			Total:        q.Total,
			Term:         q.Term,
			Example:      q.Example,
			Options:      options,
			Selected:     q.Selected,
			Answered:     q.Answered,
			Correct:      q.Correct,
			CorrectCount: q.CorrectCount,
			Completed:    q.Completed,
		}
	}

	if m := snap.Matching; m != nil {
		tiles := make([]TileView, len(m.Tiles))
		for i, tile := range m.Tiles {
			tiles[i] = TileView{ID: tile.ID, Side: string(tile.Side), Text: tile.Text, Matched: tile.Matched}
		}
		resp.Matching = &MatchingView{
			Tiles:        tiles,
			Selected:     m.Selected,
			MatchedPairs: m.MatchedPairs,
			TotalPairs:   m.TotalPairs,
			Completed:    m.Completed,
		}
	}

	return resp
}
