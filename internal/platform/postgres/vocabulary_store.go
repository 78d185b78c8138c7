package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

var vocabularyColumns = []string{
	"id", "study_set_id", "term", "definition", "example", "position", "created_at", "updated_at",
}

// insertBatchSize keeps a bulk insert well below PostgreSQL's 65535
// parameter limit.
const insertBatchSize = 1000

// PostgresVocabularyStore implements store.VocabularyStore.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a vocabulary store. A nil logger falls
// back to slog.Default.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

// CreateMultiple implements store.VocabularyStore.CreateMultiple
func (s *PostgresVocabularyStore) CreateMultiple(ctx context.Context, records []domain.Vocabulary) error {
	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))

		b := psql.Insert("vocabulary").Columns(vocabularyColumns...)
		for _, v := range records[start:end] {
			b = b.Values(v.ID, v.StudySetID, v.Term, v.Definition, v.Example, v.Position, v.CreatedAt, v.UpdatedAt)
		}

		if _, err := execBuilder(ctx, s.db, b); err != nil {
			s.logger.ErrorContext(ctx, "failed to insert vocabulary",
				slog.Int("count", end-start),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}
	return nil
}

// ListByStudySet implements store.VocabularyStore.ListByStudySet
func (s *PostgresVocabularyStore) ListByStudySet(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error) {
	return s.list(ctx, sq.Eq{"study_set_id": studySetID})
}

// ListMissingExamples implements store.VocabularyStore.ListMissingExamples
func (s *PostgresVocabularyStore) ListMissingExamples(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error) {
	return s.list(ctx, sq.And{
		sq.Eq{"study_set_id": studySetID},
		sq.Eq{"example": ""},
	})
}

// UpdateExample implements store.VocabularyStore.UpdateExample
func (s *PostgresVocabularyStore) UpdateExample(ctx context.Context, id uuid.UUID, example string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE vocabulary
		SET example = $1, updated_at = NOW()
		WHERE id = $2`, example, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrVocabularyNotFound)
}

// DeleteByStudySet implements store.VocabularyStore.DeleteByStudySet
func (s *PostgresVocabularyStore) DeleteByStudySet(ctx context.Context, studySetID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE study_set_id = $1`, studySetID)
	return MapError(err)
}

// WithTx implements store.VocabularyStore.WithTx
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{db: tx, logger: s.logger}
}

func (s *PostgresVocabularyStore) list(ctx context.Context, where sq.Sqlizer) ([]domain.Vocabulary, error) {
	query, args, err := psql.Select(vocabularyColumns...).
		From("vocabulary").
		Where(where).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list vocabulary", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.Vocabulary{}
	for rows.Next() {
		var v domain.Vocabulary
		err := rows.Scan(&v.ID, &v.StudySetID, &v.Term, &v.Definition, &v.Example, &v.Position,
			&v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return records, nil
}
