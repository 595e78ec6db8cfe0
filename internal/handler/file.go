package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"docshelf/internal/config"
	"docshelf/internal/domain"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	"docshelf/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	files  docsysRepo.FileRepository
	logger *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(files docsysRepo.FileRepository, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		logger: logger,
	}
}

func validateFileUpdate(update *docsysRepo.FileUpdate) error {
	if update.Name == nil && !update.FolderID.Present {
		return fmt.Errorf("%w: name or folderId is required", domain.ErrValidation)
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	err := validation.ValidateStruct(update,
		validation.Field(&update.Name,
			validation.NilOrNotEmpty,
			validation.RuneLength(1, config.MaxFileNameLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ListFiles lists the files of a folder, or every file of the scope
// GET /api/files?folderId=&isPublic=
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	scope, err := queryScope(r)
	if err != nil {
		handleError(w, err)
		return
	}
	folderID, err := queryID(r, "folderId")
	if err != nil {
		handleError(w, err)
		return
	}

	files, err := h.files.ListFiles(r.Context(), folderID, scope)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// UpdateFile renames and/or moves a file; "folderId": null moves it to root
// PUT /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "File ID")
	if !ok {
		return
	}

	var update docsysRepo.FileUpdate
	if err := httputil.ParseJSON(w, r, &update); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateFileUpdate(&update); err != nil {
		handleError(w, err)
		return
	}

	file, err := h.files.UpdateFile(r.Context(), id, update)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("file updated", "id", id, "folder_id", file.FolderID, "request_id", httputil.GetRequestID(r))

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "File ID")
	if !ok {
		return
	}

	if err := h.files.DeleteFile(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("file deleted", "id", id, "request_id", httputil.GetRequestID(r))

	httputil.RespondJSON(w, http.StatusOK, nil)
}
