package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Vocabulary validation errors.
var (
	ErrEmptyVocabularyID = errors.New("vocabulary ID cannot be empty")
	ErrEmptyTerm         = errors.New("term cannot be empty")
	ErrEmptyDefinition   = errors.New("definition cannot be empty")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
)

// Length limits, counted in runes.
const (
	MaxTermLength       = 500
	MaxDefinitionLength = 2000
	MaxExampleLength    = 2000
)

// Vocabulary is a single term/definition pair with an optional example
// sentence. Study engines treat it as read-only.
type Vocabulary struct {
	ID         uuid.UUID `json:"id"`
	StudySetID uuid.UUID `json:"study_set_id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Example    string    `json:"example"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewVocabulary trims its inputs, assigns a new ID and validates the result.
func NewVocabulary(studySetID uuid.UUID, term, definition, example string) (*Vocabulary, error) {
	now := time.Now().UTC()
	v := &Vocabulary{
		ID:         uuid.New(),
		StudySetID: studySetID,
		Term:       strings.TrimSpace(term),
		Definition: strings.TrimSpace(definition),
		Example:    strings.TrimSpace(example),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that the record can be studied and stored.
func (v *Vocabulary) Validate() error {
	if v.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyVocabularyID)
	}
	if strings.TrimSpace(v.Term) == "" {
		return NewValidationError("term", "is required", ErrEmptyTerm)
	}
	if strings.TrimSpace(v.Definition) == "" {
		return NewValidationError("definition", "is required", ErrEmptyDefinition)
	}
	if utf8.RuneCountInString(v.Term) > MaxTermLength {
		return NewValidationError("term", "is too long", ErrFieldTooLong)
	}
	if utf8.RuneCountInString(v.Definition) > MaxDefinitionLength {
		return NewValidationError("definition", "is too long", ErrFieldTooLong)
	}
	if utf8.RuneCountInString(v.Example) > MaxExampleLength {
		return NewValidationError("example", "is too long", ErrFieldTooLong)
	}
	return nil
}

// IsBlank reports whether the record lacks a term or a definition. Blank
// rows are dropped when a vocabulary list is replaced.
func (v *Vocabulary) IsBlank() bool {
	return strings.TrimSpace(v.Term) == "" || strings.TrimSpace(v.Definition) == ""
}
