package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vocabdeck/vocabdeck-api/internal/api/shared"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/vocabimport"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/logger"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
)

// MaxImportFileBytes limits uploaded vocabulary files.
const MaxImportFileBytes = 1 << 20

// importFormField is the multipart field holding the uploaded file.
const importFormField = "file"

// StudySetHandler serves /api/study-sets and /api/vocabulary.
type StudySetHandler struct {
	studySets service.StudySetService
}

// NewStudySetHandler creates a StudySetHandler.
func NewStudySetHandler(studySets service.StudySetService) *StudySetHandler {
	return &StudySetHandler{studySets: studySets}
}

// ListStudySets handles GET /api/study-sets with an optional folder_id
// query parameter.
func (h *StudySetHandler) ListStudySets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folderID, err := getQueryUUID(r, "folder_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	sets, err := h.studySets.ListStudySets(r.Context(), userID, folderID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to list study sets")
		return
	}
	if sets == nil {
		sets = []domain.StudySet{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sets)
}

// CreateStudySet handles POST /api/study-sets.
func (h *StudySetHandler) CreateStudySet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateStudySetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.studySets.CreateStudySet(r.Context(), userID, service.CreateStudySetInput{
		Name:        req.Name,
		Description: req.Description,
		FolderID:    req.FolderID,
		Vocabulary:  vocabularyInputs(req.Vocabulary),
		ImportText:  req.ImportText,
	})
	if err != nil {
		handleServiceError(w, r, err, "Failed to create study set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, studySetToResponse(detail))
}

// GetStudySet handles GET /api/study-sets/{id}.
func (h *StudySetHandler) GetStudySet(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.studySets.GetStudySet(r.Context(), userID, studySetID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to get study set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, studySetToResponse(detail))
}

// UpdateStudySet handles PUT /api/study-sets/{id}.
func (h *StudySetHandler) UpdateStudySet(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateStudySetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set, err := h.studySets.UpdateStudySet(r.Context(), userID, studySetID, service.UpdateStudySetInput{
		Name:        req.Name,
		Description: req.Description,
		FolderID:    req.FolderID,
	})
	if err != nil {
		handleServiceError(w, r, err, "Failed to update study set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// DeleteStudySet handles DELETE /api/study-sets/{id}.
func (h *StudySetHandler) DeleteStudySet(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.studySets.DeleteStudySet(r.Context(), userID, studySetID); err != nil {
		handleServiceError(w, r, err, "Failed to delete study set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceVocabulary handles PUT /api/study-sets/{id}/vocabulary.
func (h *StudySetHandler) ReplaceVocabulary(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReplaceVocabularyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	records, err := h.studySets.ReplaceVocabulary(r.Context(), userID, studySetID, vocabularyInputs(req.Vocabulary))
	if err != nil {
		handleServiceError(w, r, err, "Failed to update vocabulary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, VocabularyListResponse{Vocabulary: nonNilVocabulary(records)})
}

// ImportVocabulary handles POST /api/study-sets/{id}/import, a multipart
// upload of a .txt file in the import line format.
func (h *StudySetHandler) ImportVocabulary(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	text, err := readImportFile(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	imported, err := h.studySets.ImportVocabulary(r.Context(), userID, studySetID, text)
	if err != nil {
		handleServiceError(w, r, err, "Failed to import vocabulary")
		return
	}

	logger.FromContextOrDefault(r.Context()).Info("vocabulary imported",
		slog.String("study_set_id", studySetID.String()),
		slog.Int("imported", imported))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{Imported: imported})
}

// RequestExamples handles POST /api/study-sets/{id}/examples. Generation runs
// in the background so the response is 202.
func (h *StudySetHandler) RequestExamples(w http.ResponseWriter, r *http.Request) {
	userID, studySetID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	pending, err := h.studySets.RequestExamples(r.Context(), userID, studySetID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to request example sentences")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, ExamplesResponse{Pending: pending})
}

// ParseVocabulary handles POST /api/vocabulary/parse. Nothing is stored.
func (h *StudySetHandler) ParseVocabulary(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req ParseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	records, err := vocabimport.Parse(req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ParseResponse{
		Entries: vocabularyItems(records),
		Count:   len(records),
	})
}

// readImportFile returns the text of the uploaded .txt file.
func readImportFile(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportFileBytes+64<<10)
	if err := r.ParseMultipartForm(MaxImportFileBytes); err != nil {
		return "", domain.NewValidationError("file", "could not be read", err)
	}

	file, header, err := r.FormFile(importFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", ErrMissingFile
		}
		return "", domain.NewValidationError("file", "could not be read", err)
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		return "", ErrUnsupportedFile
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImportFileBytes+1))
	if err != nil {
		return "", domain.NewValidationError("file", "could not be read", err)
	}
	if len(data) > MaxImportFileBytes {
		return "", domain.NewValidationError("file", "is too large", domain.ErrValidation)
	}
	return string(data), nil
}
