package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// FolderStore defines the interface for folder persistence.
type FolderStore interface {
	// Create saves a new folder.
	Create(ctx context.Context, folder *domain.Folder) error

	// GetByID retrieves a folder by ID.
	// Returns ErrFolderNotFound if the folder does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error)

	// ListByUser returns the user's folders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error)

	// Update persists name and description changes.
	// Returns ErrFolderNotFound if the folder does not exist.
	Update(ctx context.Context, folder *domain.Folder) error

	// Delete removes a folder. Study sets must be unlinked first.
	// Returns ErrFolderNotFound if the folder does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a FolderStore bound to tx.
	WithTx(tx *sql.Tx) FolderStore
}
