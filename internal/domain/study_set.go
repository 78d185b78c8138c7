package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Study set and folder validation errors.
var (
	ErrEmptyStudySetID = errors.New("study set ID cannot be empty")
	ErrEmptyFolderID   = errors.New("folder ID cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
)

// Name and description limits, counted in runes.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
)

// StudySet is a named, user-owned collection of vocabulary records. A study
// set may be filed under one folder.
type StudySet struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	FolderID        *uuid.UUID `json:"folder_id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	VocabularyCount int        `json:"vocabulary_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewStudySet creates a validated study set owned by userID.
func NewStudySet(userID uuid.UUID, name, description string, folderID *uuid.UUID) (*StudySet, error) {
	now := time.Now().UTC()
	s := &StudySet{
		ID:          uuid.New(),
		UserID:      userID,
		FolderID:    folderID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the study set fields.
func (s *StudySet) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyStudySetID)
	}
	if s.UserID == uuid.Nil {
		return NewValidationError("user_id", "is required", ErrEmptyUserID)
	}
	if s.FolderID != nil && *s.FolderID == uuid.Nil {
		return NewValidationError("folder_id", "has invalid format", ErrInvalidID)
	}
	return validateNameAndDescription(s.Name, s.Description)
}

// Update replaces the editable fields and bumps UpdatedAt.
func (s *StudySet) Update(name, description string, folderID *uuid.UUID) error {
	updated := *s
	updated.Name = strings.TrimSpace(name)
	updated.Description = strings.TrimSpace(description)
	updated.FolderID = folderID
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*s = updated
	return nil
}

// IsOwnedBy reports whether userID owns the study set.
func (s *StudySet) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID == userID
}

func validateNameAndDescription(name, description string) error {
	if name == "" {
		return NewValidationError("name", "is required", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return NewValidationError("name", "is too long", ErrFieldTooLong)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return NewValidationError("description", "is too long", ErrFieldTooLong)
	}
	return nil
}
