package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// FolderService manages a user's folders.
type FolderService interface {
	CreateFolder(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Folder, error)
	GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error)
	ListFolders(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error)
	UpdateFolder(ctx context.Context, userID, folderID uuid.UUID, name, description string) (*domain.Folder, error)

	// DeleteFolder unlinks the folder's study sets and deletes the folder in
	// one transaction. The study sets themselves are kept.
	DeleteFolder(ctx context.Context, userID, folderID uuid.UUID) error
}

type folderService struct {
	folders   store.FolderStore
	studySets store.StudySetStore
	db        store.TxBeginner
	logger    *slog.Logger
}

// NewFolderService creates a FolderService.
func NewFolderService(
	folders store.FolderStore,
	studySets store.StudySetStore,
	db store.TxBeginner,
	logger *slog.Logger,
) FolderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &folderService{
		folders:   folders,
		studySets: studySets,
		db:        db,
		logger:    logger.With(slog.String("component", "folder_service")),
	}
}

func (s *folderService) CreateFolder(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Folder, error) {
	folder, err := domain.NewFolder(userID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		s.logger.ErrorContext(ctx, "failed to create folder", slog.String("error", err.Error()))
		return nil, NewServiceError("create_folder", "failed to save folder", err)
	}
	return folder, nil
}

func (s *folderService) GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error) {
	return ownedFolder(ctx, s.folders, userID, folderID)
}

func (s *folderService) ListFolders(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error) {
	folders, err := s.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_folders", "failed to list folders", err)
	}
	return folders, nil
}

func (s *folderService) UpdateFolder(
	ctx context.Context,
	userID, folderID uuid.UUID,
	name, description string,
) (*domain.Folder, error) {
	folder, err := ownedFolder(ctx, s.folders, userID, folderID)
	if err != nil {
		return nil, err
	}

	if err := folder.Rename(name, description); err != nil {
		return nil, err
	}
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, NewServiceError("update_folder", "failed to save folder", err)
	}
	return folder, nil
}

func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		folders := s.folders.WithTx(tx)

		if _, err := ownedFolder(ctx, folders, userID, folderID); err != nil {
			return err
		}

		unlinked, err := s.studySets.WithTx(tx).UnlinkFolder(ctx, folderID)
		if err != nil {
			return NewServiceError("delete_folder", "failed to unlink study sets", err)
		}
		if err := folders.Delete(ctx, folderID); err != nil {
			return NewServiceError("delete_folder", "failed to delete folder", err)
		}

		s.logger.InfoContext(ctx, "folder deleted",
			slog.String("folder_id", folderID.String()),
			slog.Int64("unlinked_study_sets", unlinked))
		return nil
	})
}

// ownedFolder loads a folder and checks that userID owns it.
func ownedFolder(ctx context.Context, folders store.FolderStore, userID, folderID uuid.UUID) (*domain.Folder, error) {
	folder, err := folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, NewServiceError("get_folder", "failed to retrieve folder", err)
	}
	if !folder.IsOwnedBy(userID) {
		return nil, ErrNotOwned
	}
	return folder, nil
}
