package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// StudySetFilter narrows StudySetStore.List.
type StudySetFilter struct {
	UserID uuid.UUID
	// FolderID restricts the result to one folder when set.
	FolderID *uuid.UUID
}

// StudySetStore defines the interface for study set persistence.
// Returned study sets carry VocabularyCount.
type StudySetStore interface {
	// Create saves a new study set.
	Create(ctx context.Context, set *domain.StudySet) error

	// GetByID retrieves a study set by ID.
	// Returns ErrStudySetNotFound if the study set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySet, error)

	// List returns the matching study sets, newest first.
	List(ctx context.Context, filter StudySetFilter) ([]domain.StudySet, error)

	// Update persists name, description and folder changes.
	// Returns ErrStudySetNotFound if the study set does not exist.
	Update(ctx context.Context, set *domain.StudySet) error

	// Delete removes a study set and its vocabulary.
	// Returns ErrStudySetNotFound if the study set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// UnlinkFolder clears folder_id on every study set in the folder and
	// reports how many were changed.
	UnlinkFolder(ctx context.Context, folderID uuid.UUID) (int64, error)

	// WithTx returns a StudySetStore bound to tx.
	WithTx(tx *sql.Tx) StudySetStore
}
