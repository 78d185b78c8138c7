package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Folder is a named grouping of study sets.
type Folder struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFolder creates a validated folder owned by userID.
func NewFolder(userID uuid.UUID, name, description string) (*Folder, error) {
	now := time.Now().UTC()
	f := &Folder{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the folder fields.
func (f *Folder) Validate() error {
	if f.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyFolderID)
	}
	if f.UserID == uuid.Nil {
		return NewValidationError("user_id", "is required", ErrEmptyUserID)
	}
	return validateNameAndDescription(f.Name, f.Description)
}

// Rename replaces name and description and bumps UpdatedAt.
func (f *Folder) Rename(name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateNameAndDescription(name, description); err != nil {
		return err
	}

	f.Name = name
	f.Description = description
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether userID owns the folder.
func (f *Folder) IsOwnedBy(userID uuid.UUID) bool {
	return f.UserID == userID
}
