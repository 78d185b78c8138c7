package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

func TestFolderService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	folders := new(MockFolderStore)
	svc := NewFolderService(folders, new(MockStudySetStore), nil, discardLogger)

	folders.On("Create", mock.Anything, mock.Anything).Return(nil)
	folder, err := svc.CreateFolder(ctx, userID, "  Languages ", "")
	require.NoError(t, err)
	assert.Equal(t, "Languages", folder.Name)

	_, err = svc.CreateFolder(ctx, userID, "   ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	folders.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	folders.On("Update", mock.Anything, folder).Return(nil)
	updated, err := svc.UpdateFolder(ctx, userID, folder.ID, "Spanish", "verbs")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", updated.Name)

	_, err = svc.UpdateFolder(ctx, uuid.New(), folder.ID, "Mine", "")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestFolderService_GetFolderNotFound(t *testing.T) {
	folders := new(MockFolderStore)
	id := uuid.New()
	folders.On("GetByID", mock.Anything, id).Return(nil, store.ErrFolderNotFound)
	svc := NewFolderService(folders, new(MockStudySetStore), nil, discardLogger)

	_, err := svc.GetFolder(context.Background(), uuid.New(), id)
	assert.Equal(t, ErrFolderNotFound, err)
}

func TestFolderService_DeleteFolder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	folder := &domain.Folder{ID: uuid.New(), UserID: userID, Name: "Languages"}

	t.Run("unlinks study sets then deletes", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		folders := new(MockFolderStore)
		sets := new(MockStudySetStore)
		svc := NewFolderService(folders, sets, db, discardLogger)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		folders.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
		unlink := sets.On("UnlinkFolder", mock.Anything, folder.ID).Return(int64(2), nil)
		folders.On("Delete", mock.Anything, folder.ID).Return(nil).NotBefore(unlink)

		require.NoError(t, svc.DeleteFolder(ctx, userID, folder.ID))
		folders.AssertExpectations(t)
		sets.AssertExpectations(t)
	})

	t.Run("other user's folder is rolled back untouched", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		folders := new(MockFolderStore)
		sets := new(MockStudySetStore)
		svc := NewFolderService(folders, sets, db, discardLogger)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		folders.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)

		err := svc.DeleteFolder(ctx, uuid.New(), folder.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
		sets.AssertNotCalled(t, "UnlinkFolder", mock.Anything, mock.Anything)
	})
}
