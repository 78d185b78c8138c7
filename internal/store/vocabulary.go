package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// VocabularyStore defines the interface for vocabulary persistence.
// Records are always returned ordered by position.
type VocabularyStore interface {
	// CreateMultiple inserts records in a single statement. An empty slice is
	// a no-op.
	CreateMultiple(ctx context.Context, records []domain.Vocabulary) error

	// ListByStudySet returns the study set's records.
	ListByStudySet(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error)

	// ListMissingExamples returns the study set's records with an empty example.
	ListMissingExamples(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error)

	// UpdateExample sets the example sentence of one record.
	// Returns ErrVocabularyNotFound if the record does not exist.
	UpdateExample(ctx context.Context, id uuid.UUID, example string) error

	// DeleteByStudySet removes every record of the study set.
	DeleteByStudySet(ctx context.Context, studySetID uuid.UUID) error

	// WithTx returns a VocabularyStore bound to tx.
	WithTx(tx *sql.Tx) VocabularyStore
}
