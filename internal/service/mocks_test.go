package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTxDB returns a sqlmock database for code that runs store.RunInTransaction.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore { return m }

type MockFolderStore struct{ mock.Mock }

func (m *MockFolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	return m.Called(ctx, folder).Error(0)
}

func (m *MockFolderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Folder, error) {
	args := m.Called(ctx, userID)
	folders, _ := args.Get(0).([]domain.Folder)
	return folders, args.Error(1)
}

func (m *MockFolderStore) Update(ctx context.Context, folder *domain.Folder) error {
	return m.Called(ctx, folder).Error(0)
}

func (m *MockFolderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFolderStore) WithTx(*sql.Tx) store.FolderStore { return m }

type MockStudySetStore struct{ mock.Mock }

func (m *MockStudySetStore) Create(ctx context.Context, set *domain.StudySet) error {
	return m.Called(ctx, set).Error(0)
}

func (m *MockStudySetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySet), args.Error(1)
}

func (m *MockStudySetStore) List(ctx context.Context, filter store.StudySetFilter) ([]domain.StudySet, error) {
	args := m.Called(ctx, filter)
	sets, _ := args.Get(0).([]domain.StudySet)
	return sets, args.Error(1)
}

func (m *MockStudySetStore) Update(ctx context.Context, set *domain.StudySet) error {
	return m.Called(ctx, set).Error(0)
}

func (m *MockStudySetStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStudySetStore) UnlinkFolder(ctx context.Context, folderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, folderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudySetStore) WithTx(*sql.Tx) store.StudySetStore { return m }

type MockVocabularyStore struct{ mock.Mock }

func (m *MockVocabularyStore) CreateMultiple(ctx context.Context, records []domain.Vocabulary) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockVocabularyStore) ListByStudySet(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error) {
	args := m.Called(ctx, studySetID)
	records, _ := args.Get(0).([]domain.Vocabulary)
	return records, args.Error(1)
}

func (m *MockVocabularyStore) ListMissingExamples(ctx context.Context, studySetID uuid.UUID) ([]domain.Vocabulary, error) {
	args := m.Called(ctx, studySetID)
	records, _ := args.Get(0).([]domain.Vocabulary)
	return records, args.Error(1)
}

func (m *MockVocabularyStore) UpdateExample(ctx context.Context, id uuid.UUID, example string) error {
	return m.Called(ctx, id, example).Error(0)
}

func (m *MockVocabularyStore) DeleteByStudySet(ctx context.Context, studySetID uuid.UUID) error {
	return m.Called(ctx, studySetID).Error(0)
}

func (m *MockVocabularyStore) WithTx(*sql.Tx) store.VocabularyStore { return m }

type MockEventEmitter struct{ mock.Mock }

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	return m.Called(ctx, event).Error(0)
}

// plainHasher stores passwords with a fixed prefix.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}
