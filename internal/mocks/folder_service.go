package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
)

// MockFolderService implements service.FolderService. Methods without an Fn
// return Err.
type MockFolderService struct {
	CreateFolderFn func(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Folder, error)
	GetFolderFn    func(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error)
	ListFoldersFn  func(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error)
	UpdateFolderFn func(ctx context.Context, userID, folderID uuid.UUID, name, description string) (*domain.Folder, error)
	DeleteFolderFn func(ctx context.Context, userID, folderID uuid.UUID) error

	Err error
}

var _ service.FolderService = (*MockFolderService)(nil)

func (m *MockFolderService) CreateFolder(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Folder, error) {
	if m.CreateFolderFn != nil {
		return m.CreateFolderFn(ctx, userID, name, description)
	}
	return nil, m.Err
}

func (m *MockFolderService) GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error) {
	if m.GetFolderFn != nil {
		return m.GetFolderFn(ctx, userID, folderID)
	}
	return nil, m.Err
}

func (m *MockFolderService) ListFolders(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error) {
	if m.ListFoldersFn != nil {
		return m.ListFoldersFn(ctx, userID)
	}
	return nil, m.Err
}

func (m *MockFolderService) UpdateFolder(
	ctx context.Context,
	userID, folderID uuid.UUID,
	name, description string,
) (*domain.Folder, error) {
	if m.UpdateFolderFn != nil {
		return m.UpdateFolderFn(ctx, userID, folderID, name, description)
	}
	return nil, m.Err
}

func (m *MockFolderService) DeleteFolder(ctx context.Context, userID, folderID uuid.UUID) error {
	if m.DeleteFolderFn != nil {
		return m.DeleteFolderFn(ctx, userID, folderID)
	}
	return m.Err
}
