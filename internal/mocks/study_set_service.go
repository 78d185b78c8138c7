package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
)

// MockStudySetService implements service.StudySetService. Methods without an
// Fn return Err.
type MockStudySetService struct {
	CreateStudySetFn func(ctx context.Context, userID uuid.UUID, in service.CreateStudySetInput) (*service.StudySetDetail, error)
	GetStudySetFn    func(ctx context.Context, userID, studySetID uuid.UUID) (*service.StudySetDetail, error)
	ListStudySetsFn  func(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]domain.StudySet, error)
	UpdateStudySetFn func(
		ctx context.Context,
		userID, studySetID uuid.UUID,
		in service.UpdateStudySetInput,
	) (*domain.StudySet, error)
	DeleteStudySetFn    func(ctx context.Context, userID, studySetID uuid.UUID) error
	ReplaceVocabularyFn func(
		ctx context.Context,
		userID, studySetID uuid.UUID,
		rows []service.VocabularyInput,
	) ([]domain.Vocabulary, error)
	ImportVocabularyFn func(ctx context.Context, userID, studySetID uuid.UUID, text string) (int, error)
	RequestExamplesFn  func(ctx context.Context, userID, studySetID uuid.UUID) (int, error)

	Err error
}

var _ service.StudySetService = (*MockStudySetService)(nil)

func (m *MockStudySetService) CreateStudySet(
	ctx context.Context,
	userID uuid.UUID,
	in service.CreateStudySetInput,
) (*service.StudySetDetail, error) {
	if m.CreateStudySetFn != nil {
		return m.CreateStudySetFn(ctx, userID, in)
	}
	return nil, m.Err
}

func (m *MockStudySetService) GetStudySet(
	ctx context.Context,
	userID, studySetID uuid.UUID,
) (*service.StudySetDetail, error) {
	if m.GetStudySetFn != nil {
		return m.GetStudySetFn(ctx, userID, studySetID)
	}
	return nil, m.Err
}

func (m *MockStudySetService) ListStudySets(
	ctx context.Context,
	userID uuid.UUID,
	folderID *uuid.UUID,
) ([]domain.StudySet, error) {
	if m.ListStudySetsFn != nil {
		return m.ListStudySetsFn(ctx, userID, folderID)
	}
	return nil, m.Err
}

func (m *MockStudySetService) UpdateStudySet(
	ctx context.Context,
	userID, studySetID uuid.UUID,
	in service.UpdateStudySetInput,
) (*domain.StudySet, error) {
	if m.UpdateStudySetFn != nil {
		return m.UpdateStudySetFn(ctx, userID, studySetID, in)
	}
	return nil, m.Err
}

func (m *MockStudySetService) DeleteStudySet(ctx context.Context, userID, studySetID uuid.UUID) error {
	if m.DeleteStudySetFn != nil {
		return m.DeleteStudySetFn(ctx, userID, studySetID)
	}
	return m.Err
}

func (m *MockStudySetService) ReplaceVocabulary(
	ctx context.Context,
	userID, studySetID uuid.UUID,
	rows []service.VocabularyInput,
) ([]domain.Vocabulary, error) {
	if m.ReplaceVocabularyFn != nil {
		return m.ReplaceVocabularyFn(ctx, userID, studySetID, rows)
	}
	return nil, m.Err
}

func (m *MockStudySetService) ImportVocabulary(
	ctx context.Context,
	userID, studySetID uuid.UUID,
	text string,
) (int, error) {
	if m.ImportVocabularyFn != nil {
		return m.ImportVocabularyFn(ctx, userID, studySetID, text)
	}
	return 0, m.Err
}

func (m *MockStudySetService) RequestExamples(ctx context.Context, userID, studySetID uuid.UUID) (int, error) {
	if m.RequestExamplesFn != nil {
		return m.RequestExamplesFn(ctx, userID, studySetID)
	}
	return 0, m.Err
}
