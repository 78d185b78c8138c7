package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// UserStore persists accounts. Passwords arrive already hashed.
type UserStore interface {
	// Create fails with ErrEmailExists when the address is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByEmail matches case-insensitively and returns ErrUserNotFound on a miss.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	WithTx(tx *sql.Tx) UserStore
}
