package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// studySetFolderFK is the default name postgres gives study_sets.folder_id's
// foreign key.
const studySetFolderFK = "study_sets_folder_id_fkey"

var studySetColumns = []string{
	"s.id", "s.user_id", "s.folder_id", "s.name", "s.description", "s.created_at", "s.updated_at",
	"(SELECT COUNT(*) FROM vocabulary v WHERE v.study_set_id = s.id) AS vocabulary_count",
}

// PostgresStudySetStore implements store.StudySetStore.
type PostgresStudySetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySetStore creates a study set store. A nil logger falls back
// to slog.Default.
func NewPostgresStudySetStore(db store.DBTX, logger *slog.Logger) *PostgresStudySetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySetStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_set_store")),
	}
}

var _ store.StudySetStore = (*PostgresStudySetStore)(nil)

// Create implements store.StudySetStore.Create
func (s *PostgresStudySetStore) Create(ctx context.Context, set *domain.StudySet) error {
	_, err := execBuilder(ctx, s.db, psql.Insert("study_sets").
		Columns("id", "user_id", "folder_id", "name", "description", "created_at", "updated_at").
		Values(set.ID, set.UserID, nullUUID(set.FolderID), set.Name, set.Description, set.CreatedAt, set.UpdatedAt))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create study set",
			slog.String("study_set_id", set.ID.String()),
			slog.String("error", err.Error()))
		return mapStudySetWriteError(err)
	}
	return nil
}

// GetByID implements store.StudySetStore.GetByID
func (s *PostgresStudySetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySet, error) {
	query, args, err := psql.Select(studySetColumns...).
		From("study_sets s").
		Where(sq.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	set, err := scanStudySet(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err, store.ErrStudySetNotFound)
	}
	return set, nil
}

// List implements store.StudySetStore.List
func (s *PostgresStudySetStore) List(ctx context.Context, filter store.StudySetFilter) ([]domain.StudySet, error) {
	b := psql.Select(studySetColumns...).
		From("study_sets s").
		Where(sq.Eq{"s.user_id": filter.UserID}).
		OrderBy("s.created_at DESC", "s.id")
	if filter.FolderID != nil {
		b = b.Where(sq.Eq{"s.folder_id": *filter.FolderID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list study sets", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sets := []domain.StudySet{}
	for rows.Next() {
		set, err := scanStudySet(rows)
		if err != nil {
			return nil, MapError(err)
		}
		sets = append(sets, *set)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return sets, nil
}

// Update implements store.StudySetStore.Update
func (s *PostgresStudySetStore) Update(ctx context.Context, set *domain.StudySet) error {
	n, err := execBuilder(ctx, s.db, psql.Update("study_sets").
		Set("name", set.Name).
		Set("description", set.Description).
		Set("folder_id", nullUUID(set.FolderID)).
		Set("updated_at", set.UpdatedAt).
		Where(sq.Eq{"id": set.ID}))
	if err != nil {
		return mapStudySetWriteError(err)
	}
	if n == 0 {
		return store.ErrStudySetNotFound
	}
	return nil
}

// Delete implements store.StudySetStore.Delete
func (s *PostgresStudySetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM study_sets WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrStudySetNotFound)
}

// UnlinkFolder implements store.StudySetStore.UnlinkFolder
func (s *PostgresStudySetStore) UnlinkFolder(ctx context.Context, folderID uuid.UUID) (int64, error) {
	n, err := execBuilder(ctx, s.db, psql.Update("study_sets").
		Set("folder_id", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"folder_id": folderID}))
	if err != nil {
		return 0, MapError(err)
	}

	s.logger.DebugContext(ctx, "unlinked study sets from folder",
		slog.String("folder_id", folderID.String()),
		slog.Int64("count", n))
	return n, nil
}

// WithTx implements store.StudySetStore.WithTx
func (s *PostgresStudySetStore) WithTx(tx *sql.Tx) store.StudySetStore {
	return &PostgresStudySetStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudySet(row rowScanner) (*domain.StudySet, error) {
	var (
		set      domain.StudySet
		folderID uuid.NullUUID
	)
	err := row.Scan(&set.ID, &set.UserID, &folderID, &set.Name, &set.Description,
		&set.CreatedAt, &set.UpdatedAt, &set.VocabularyCount)
	if err != nil {
		return nil, err
	}
	if folderID.Valid {
		id := folderID.UUID
		set.FolderID = &id
	}
	return &set, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// mapStudySetWriteError reports a folder deleted between the ownership check
// and the write as ErrFolderNotFound.
func mapStudySetWriteError(err error) error {
	if IsForeignKeyViolation(err, studySetFolderFK) {
		return fmt.Errorf("%w: %w", store.ErrFolderNotFound, err)
	}
	return MapError(err)
}
