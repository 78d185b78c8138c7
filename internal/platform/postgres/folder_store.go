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

var folderColumns = []string{"id", "user_id", "name", "description", "created_at", "updated_at"}

// PostgresFolderStore implements store.FolderStore.
type PostgresFolderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFolderStore creates a folder store. A nil logger falls back to
// slog.Default.
func NewPostgresFolderStore(db store.DBTX, logger *slog.Logger) *PostgresFolderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFolderStore{
		db:     db,
		logger: logger.With(slog.String("component", "folder_store")),
	}
}

var _ store.FolderStore = (*PostgresFolderStore)(nil)

// Create implements store.FolderStore.Create
func (s *PostgresFolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	_, err := execBuilder(ctx, s.db, psql.Insert("folders").
		Columns(folderColumns...).
		Values(folder.ID, folder.UserID, folder.Name, folder.Description, folder.CreatedAt, folder.UpdatedAt))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create folder",
			slog.String("folder_id", folder.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.FolderStore.GetByID
func (s *PostgresFolderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	query, args, err := psql.Select(folderColumns...).From("folders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var f domain.Folder
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&f.ID, &f.UserID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err, store.ErrFolderNotFound)
	}
	return &f, nil
}

// ListByUser implements store.FolderStore.ListByUser
func (s *PostgresFolderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error) {
	query, args, err := psql.Select(folderColumns...).
		From("folders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list folders", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	folders := []domain.Folder{}
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return folders, nil
}

// Update implements store.FolderStore.Update
func (s *PostgresFolderStore) Update(ctx context.Context, folder *domain.Folder) error {
	n, err := execBuilder(ctx, s.db, psql.Update("folders").
		Set("name", folder.Name).
		Set("description", folder.Description).
		Set("updated_at", folder.UpdatedAt).
		Where(sq.Eq{"id": folder.ID}))
	if err != nil {
		return MapError(err)
	}
	if n == 0 {
		return store.ErrFolderNotFound
	}
	return nil
}

// Delete implements store.FolderStore.Delete
func (s *PostgresFolderStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrFolderNotFound)
}

// WithTx implements store.FolderStore.WithTx
func (s *PostgresFolderStore) WithTx(tx *sql.Tx) store.FolderStore {
	return &PostgresFolderStore{db: tx, logger: s.logger}
}
