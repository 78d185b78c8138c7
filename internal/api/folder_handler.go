package api

import (
	"net/http"

	"github.com/vocabdeck/vocabdeck-api/internal/api/shared"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
)

// FolderHandler serves /api/folders.
type FolderHandler struct {
	folders service.FolderService
}

// NewFolderHandler creates a FolderHandler.
func NewFolderHandler(folders service.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// ListFolders handles GET /api/folders.
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folders, err := h.folders.ListFolders(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to list folders")
		return
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, folders)
}

// CreateFolder handles POST /api/folders.
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req FolderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	folder, err := h.folders.CreateFolder(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, r, err, "Failed to create folder")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, folder)
}

// GetFolder handles GET /api/folders/{id}.
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	folder, err := h.folders.GetFolder(r.Context(), userID, folderID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to get folder")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, folder)
}

// UpdateFolder handles PUT /api/folders/{id}.
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req FolderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	folder, err := h.folders.UpdateFolder(r.Context(), userID, folderID, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, r, err, "Failed to update folder")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/folders/{id}. Study sets in the folder
// are kept and become unfiled.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.folders.DeleteFolder(r.Context(), userID, folderID); err != nil {
		handleServiceError(w, r, err, "Failed to delete folder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
