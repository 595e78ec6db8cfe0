package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"docshelf/internal/config"
	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	"docshelf/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folders docsysRepo.FolderRepository
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders docsysRepo.FolderRepository, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folders: folders,
		logger:  logger,
	}
}

// CreateFolderRequest is the body of POST /folders
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
}

func (req *CreateFolderRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// UpdateFolderRequest is the body of PUT /folders/{id}.
// Name renames; a present parentId (null = root) moves.
type UpdateFolderRequest struct {
	Name     *string                  `json:"name"`
	ParentID docsysRepo.OptionalInt64 `json:"parentId"`
}

func (req *UpdateFolderRequest) validate() error {
	if req.Name == nil && !req.ParentID.Present {
		return fmt.Errorf("%w: name or parentId is required", domain.ErrValidation)
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ListFolders lists the folders of a scope, optionally only one parent's children
// GET /api/folders?parentId=&isPublic=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	scope, err := queryScope(r)
	if err != nil {
		handleError(w, err)
		return
	}
	parentID, err := queryID(r, "parentId")
	if err != nil {
		handleError(w, err)
		return
	}

	folders, err := h.folders.ListFolders(r.Context(), scope)
	if err != nil {
		handleError(w, err)
		return
	}

	if parentID != nil {
		children := make([]models.Folder, 0)
		for _, f := range folders {
			if f.ParentID != nil && *f.ParentID == *parentID {
				children = append(children, f)
			}
		}
		folders = children
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, err)
		return
	}

	folder, err := h.folders.CreateFolder(r.Context(), req.Name, req.ParentID, models.ScopeFromPublic(req.IsPublic))
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("folder created",
		"id", folder.ID,
		"parent_folder_id", folder.ParentID,
		"user_id", httputil.GetUserID(r),
		"request_id", httputil.GetRequestID(r),
	)

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder renames and/or moves a folder
// PUT /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var req UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, err)
		return
	}

	var folder *models.Folder
	var err error
	if req.Name != nil {
		if folder, err = h.folders.RenameFolder(r.Context(), id, *req.Name); err != nil {
			handleError(w, err)
			return
		}
	}
	if req.ParentID.Present {
		if folder, err = h.folders.MoveFolder(r.Context(), id, req.ParentID.Value); err != nil {
			handleError(w, err)
			return
		}
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and everything below it
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	if err := h.folders.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("folder deleted", "id", id, "request_id", httputil.GetRequestID(r))

	httputil.RespondJSON(w, http.StatusOK, nil)
}
