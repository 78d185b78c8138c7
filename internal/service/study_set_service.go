package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/vocabimport"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// VocabularyInput is one row of a vocabulary list as entered by a user.
type VocabularyInput struct {
	Term       string
	Definition string
	Example    string
}

// CreateStudySetInput describes a new study set. When ImportText is set it is
// parsed and takes precedence over Vocabulary.
type CreateStudySetInput struct {
	Name        string
	Description string
	FolderID    *uuid.UUID
	Vocabulary  []VocabularyInput
	ImportText  string
}

// UpdateStudySetInput holds the editable study set metadata.
type UpdateStudySetInput struct {
	Name        string
	Description string
	FolderID    *uuid.UUID
}

// StudySetDetail is a study set together with its vocabulary in position
// order.
type StudySetDetail struct {
	domain.StudySet
	Vocabulary []domain.Vocabulary `json:"vocabulary"`
}

// StudySetService manages study sets and their vocabulary.
type StudySetService interface {
	CreateStudySet(ctx context.Context, userID uuid.UUID, in CreateStudySetInput) (*StudySetDetail, error)
	GetStudySet(ctx context.Context, userID, studySetID uuid.UUID) (*StudySetDetail, error)

	// ListStudySets returns the user's study sets, newest first, optionally
	// restricted to one folder.
	ListStudySets(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]domain.StudySet, error)

	UpdateStudySet(ctx context.Context, userID, studySetID uuid.UUID, in UpdateStudySetInput) (*domain.StudySet, error)
	DeleteStudySet(ctx context.Context, userID, studySetID uuid.UUID) error

	// ReplaceVocabulary swaps the whole vocabulary list. Rows without a term
	// or definition are dropped; ErrEmptyVocabulary is returned when nothing
	// is left.
	ReplaceVocabulary(ctx context.Context, userID, studySetID uuid.UUID, rows []VocabularyInput) ([]domain.Vocabulary, error)

	// ImportVocabulary parses text and appends the records after the existing
	// ones. It returns the number of records added.
	ImportVocabulary(ctx context.Context, userID, studySetID uuid.UUID, text string) (int, error)

	// RequestExamples queues background generation of example sentences for
	// records without one and returns how many records are missing examples.
	RequestExamples(ctx context.Context, userID, studySetID uuid.UUID) (int, error)
}

type studySetService struct {
	studySets  store.StudySetStore
	vocabulary store.VocabularyStore
	folders    store.FolderStore
	emitter    events.EventEmitter
	db         store.TxBeginner
	logger     *slog.Logger
}

// NewStudySetService creates a StudySetService. A nil emitter disables
// RequestExamples.
func NewStudySetService(
	studySets store.StudySetStore,
	vocabulary store.VocabularyStore,
	folders store.FolderStore,
	emitter events.EventEmitter,
	db store.TxBeginner,
	logger *slog.Logger,
) StudySetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &studySetService{
		studySets:  studySets,
		vocabulary: vocabulary,
		folders:    folders,
		emitter:    emitter,
		db:         db,
		logger:     logger.With(slog.String("component", "study_set_service")),
	}
}

func (s *studySetService) CreateStudySet(ctx context.Context, userID uuid.UUID, in CreateStudySetInput) (*StudySetDetail, error) {
	if err := s.checkFolder(ctx, userID, in.FolderID); err != nil {
		return nil, err
	}

	set, err := domain.NewStudySet(userID, in.Name, in.Description, in.FolderID)
	if err != nil {
		return nil, err
	}

	var records []domain.Vocabulary
	if strings.TrimSpace(in.ImportText) != "" {
		records, err = vocabimport.ParseInto(set.ID, in.ImportText)
	} else {
		records, err = buildVocabulary(set.ID, in.Vocabulary)
	}
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.studySets.WithTx(tx).Create(ctx, set); err != nil {
			return err
		}
		return s.vocabulary.WithTx(tx).CreateMultiple(ctx, records)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create study set", slog.String("error", err.Error()))
		return nil, NewServiceError("create_study_set", "failed to save study set", err)
	}

	s.logger.InfoContext(ctx, "study set created",
		slog.String("study_set_id", set.ID.String()),
		slog.Int("vocabulary_count", len(records)))

	set.VocabularyCount = len(records)
	return &StudySetDetail{StudySet: *set, Vocabulary: records}, nil
}

func (s *studySetService) GetStudySet(ctx context.Context, userID, studySetID uuid.UUID) (*StudySetDetail, error) {
	set, err := ownedStudySet(ctx, s.studySets, userID, studySetID)
	if err != nil {
		return nil, err
	}

	records, err := s.vocabulary.ListByStudySet(ctx, studySetID)
	if err != nil {
		return nil, NewServiceError("get_study_set", "failed to load vocabulary", err)
	}
	return &StudySetDetail{StudySet: *set, Vocabulary: records}, nil
}

func (s *studySetService) ListStudySets(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]domain.StudySet, error) {
	if err := s.checkFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	sets, err := s.studySets.List(ctx, store.StudySetFilter{UserID: userID, FolderID: folderID})
	if err != nil {
		return nil, NewServiceError("list_study_sets", "failed to list study sets", err)
	}
	return sets, nil
}

func (s *studySetService) UpdateStudySet(
	ctx context.Context,
	userID, studySetID uuid.UUID,
	in UpdateStudySetInput,
) (*domain.StudySet, error) {
	set, err := ownedStudySet(ctx, s.studySets, userID, studySetID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolder(ctx, userID, in.FolderID); err != nil {
		return nil, err
	}

	if err := set.Update(in.Name, in.Description, in.FolderID); err != nil {
		return nil, err
	}
	if err := s.studySets.Update(ctx, set); err != nil {
		return nil, NewServiceError("update_study_set", "failed to save study set", err)
	}
	return set, nil
}

func (s *studySetService) DeleteStudySet(ctx context.Context, userID, studySetID uuid.UUID) error {
	if _, err := ownedStudySet(ctx, s.studySets, userID, studySetID); err != nil {
		return err
	}
	if err := s.studySets.Delete(ctx, studySetID); err != nil {
		return NewServiceError("delete_study_set", "failed to delete study set", err)
	}
	return nil
}

func (s *studySetService) ReplaceVocabulary(
	ctx context.Context,
	userID, studySetID uuid.UUID,
	rows []VocabularyInput,
) ([]domain.Vocabulary, error) {
	set, err := ownedStudySet(ctx, s.studySets, userID, studySetID)
	if err != nil {
		return nil, err
	}

	records, err := buildVocabulary(studySetID, rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyVocabulary
	}

	set.UpdatedAt = time.Now().UTC()
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabulary.WithTx(tx)
		if err := vocab.DeleteByStudySet(ctx, studySetID); err != nil {
			return err
		}
		if err := vocab.CreateMultiple(ctx, records); err != nil {
			return err
		}
		return s.studySets.WithTx(tx).Update(ctx, set)
	})
	if err != nil {
		return nil, NewServiceError("replace_vocabulary", "failed to save vocabulary", err)
	}
	return records, nil
}

func (s *studySetService) ImportVocabulary(ctx context.Context, userID, studySetID uuid.UUID, text string) (int, error) {
	if _, err := ownedStudySet(ctx, s.studySets, userID, studySetID); err != nil {
		return 0, err
	}

	records, err := vocabimport.ParseInto(studySetID, text)
	if err != nil {
		return 0, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabulary.WithTx(tx)
		existing, err := vocab.ListByStudySet(ctx, studySetID)
		if err != nil {
			return err
		}

		next := 0
		for _, v := range existing {
			next = max(next, v.Position+1)
		}
		for i := range records {
			records[i].Position = next + i
		}
		return vocab.CreateMultiple(ctx, records)
	})
	if err != nil {
		return 0, NewServiceError("import_vocabulary", "failed to save imported vocabulary", err)
	}

	s.logger.InfoContext(ctx, "vocabulary imported",
		slog.String("study_set_id", studySetID.String()),
		slog.Int("count", len(records)))
	return len(records), nil
}

func (s *studySetService) RequestExamples(ctx context.Context, userID, studySetID uuid.UUID) (int, error) {
	if s.emitter == nil {
		return 0, ErrExamplesUnavailable
	}
	if _, err := ownedStudySet(ctx, s.studySets, userID, studySetID); err != nil {
		return 0, err
	}

	missing, err := s.vocabulary.ListMissingExamples(ctx, studySetID)
	if err != nil {
		return 0, NewServiceError("request_examples", "failed to load vocabulary", err)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	event, err := events.NewExampleGenerationEvent(studySetID, userID)
	if err != nil {
		return 0, NewServiceError("request_examples", "failed to create event", err)
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit example generation event",
			slog.String("study_set_id", studySetID.String()),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
		return 0, NewServiceError("request_examples", "failed to emit event", err)
	}

	s.logger.InfoContext(ctx, "example generation requested",
		slog.String("study_set_id", studySetID.String()),
		slog.Int("missing", len(missing)))
	return len(missing), nil
}

// checkFolder verifies that folderID, when set, names a folder owned by userID.
func (s *studySetService) checkFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) error {
	if folderID == nil {
		return nil
	}
	_, err := ownedFolder(ctx, s.folders, userID, *folderID)
	return err
}

// ownedStudySet loads a study set and checks that userID owns it.
func ownedStudySet(ctx context.Context, sets store.StudySetStore, userID, studySetID uuid.UUID) (*domain.StudySet, error) {
	set, err := sets.GetByID(ctx, studySetID)
	if err != nil {
		return nil, NewServiceError("get_study_set", "failed to retrieve study set", err)
	}
	if !set.IsOwnedBy(userID) {
		return nil, ErrNotOwned
	}
	return set, nil
}

// buildVocabulary turns user rows into records with consecutive positions,
// skipping rows without a term or definition.
func buildVocabulary(studySetID uuid.UUID, rows []VocabularyInput) ([]domain.Vocabulary, error) {
	records := make([]domain.Vocabulary, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Term) == "" || strings.TrimSpace(row.Definition) == "" {
			continue
		}
		v, err := domain.NewVocabulary(studySetID, row.Term, row.Definition, row.Example)
		if err != nil {
			return nil, err
		}
		v.Position = len(records)
		records = append(records, *v)
	}
	return records, nil
}
