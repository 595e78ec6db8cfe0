package docsystem

import (
	"context"
	"log/slog"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
)

// Host is the view that owns the folder state a mutation acts on.
// The mutation service reads the current generation from it and asks it to
// reload after every successful storage call.
type Host interface {
	// Snapshot returns the current generation
	Snapshot() *Snapshot

	// SelectedFolderID returns the selected folder, nil for root
	SelectedFolderID() *int64

	// SelectFolder changes the selection
	SelectFolder(id *int64)

	// Refetch reloads the flat collections from the storage service
	Refetch(ctx context.Context) error
}

// MutationService validates folder and file intents locally, forwards them to
// the storage service and reloads the host on success. It never edits the
// tree in place.
type MutationService struct {
	storage docsysRepo.Storage
	host    Host
	logger  *slog.Logger
}

// NewMutationService creates a mutation service bound to one host.
func NewMutationService(storage docsysRepo.Storage, host Host, logger *slog.Logger) *MutationService {
	return &MutationService{
		storage: storage,
		host:    host,
		logger:  logger,
	}
}

// CreateFolder creates a folder under parentID (nil = root) in the host's scope.
func (s *MutationService) CreateFolder(ctx context.Context, name string, parentID *int64) (*models.Folder, error) {
	name, err := ValidateFolderName(name)
	if err != nil {
		return nil, err
	}

	scope := models.ScopePrivate
	if snap := s.host.Snapshot(); snap != nil {
		scope = snap.Scope
	}

	folder, err := s.storage.CreateFolder(ctx, name, parentID, scope)
	if err != nil {
		return nil, s.collaboratorFailure("createFolder", err)
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_folder_id", folder.ParentID,
		"scope", scope,
	)

	return folder, s.refetch(ctx)
}

// RenameFolder renames a folder.
func (s *MutationService) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	name, err := ValidateFolderName(name)
	if err != nil {
		return nil, err
	}

	folder, err := s.storage.RenameFolder(ctx, id, name)
	if err != nil {
		return nil, s.collaboratorFailure("renameFolder", err)
	}

	s.logger.Info("folder renamed", "id", id, "name", folder.Name)

	return folder, s.refetch(ctx)
}

// DeleteFolder deletes a folder; the storage service removes its contents.
// When the selection is the folder or lies below it, the selection is cleared.
func (s *MutationService) DeleteFolder(ctx context.Context, id int64) error {
	if err := s.storage.DeleteFolder(ctx, id); err != nil {
		return s.collaboratorFailure("deleteFolder", err)
	}

	s.logger.Info("folder deleted", "id", id)

	if selected := s.host.SelectedFolderID(); selected != nil {
		snap := s.host.Snapshot()
		if *selected == id || (snap != nil && snap.Index.IsDescendant(*selected, id)) {
			s.host.SelectFolder(nil)
			s.logger.Debug("selection cleared by delete", "selected_folder_id", *selected)
		}
	}

	return s.refetch(ctx)
}

// MoveFolder re-parents a folder (destID nil = root).
func (s *MutationService) MoveFolder(ctx context.Context, id int64, destID *int64) (*models.Folder, error) {
	snap := s.host.Snapshot()
	if folder, ok := snap.Folder(id); ok {
		req := MoveRequest{
			Kind:            MoveFolder,
			ID:              id,
			CurrentParentID: folder.ParentID,
			DestinationID:   destID,
		}
		if err := NewMoveValidator(snap.Index).Validate(req); err != nil {
			return nil, err
		}
	} else {
		// unknown source: only the self check is possible locally
		if destID != nil && *destID == id {
			return nil, domain.NewValidationError("destination", "cannot move folder into itself")
		}
		s.logger.Warn("moving folder missing from snapshot", "id", id)
	}

	folder, err := s.storage.MoveFolder(ctx, id, destID)
	if err != nil {
		return nil, s.collaboratorFailure("moveFolder", err)
	}

	s.logger.Info("folder moved", "id", id, "new_parent_id", destID)

	return folder, s.refetch(ctx)
}

// RenameFile renames a file without moving it.
func (s *MutationService) RenameFile(ctx context.Context, id int64, name string) (*models.File, error) {
	name, err := ValidateFileName(name)
	if err != nil {
		return nil, err
	}

	file, err := s.storage.UpdateFile(ctx, id, docsysRepo.FileUpdate{Name: &name})
	if err != nil {
		return nil, s.collaboratorFailure("updateFile", err)
	}

	s.logger.Info("file renamed", "id", id, "name", file.Name)

	return file, s.refetch(ctx)
}

// MoveFile moves a file to destID (nil = root).
func (s *MutationService) MoveFile(ctx context.Context, id int64, destID *int64) (*models.File, error) {
	snap := s.host.Snapshot()
	if current, ok := snap.File(id); ok {
		req := MoveRequest{
			Kind:            MoveFile,
			ID:              id,
			CurrentParentID: current.FolderID,
			DestinationID:   destID,
		}
		if err := NewMoveValidator(snap.Index).Validate(req); err != nil {
			return nil, err
		}
	} else {
		s.logger.Warn("moving file missing from snapshot", "id", id)
	}

	file, err := s.storage.UpdateFile(ctx, id, docsysRepo.FileUpdate{FolderID: docsysRepo.SetInt64(destID)})
	if err != nil {
		return nil, s.collaboratorFailure("updateFile", err)
	}

	s.logger.Info("file moved", "id", id, "folder_id", destID)

	return file, s.refetch(ctx)
}

// DeleteFile deletes a file.
func (s *MutationService) DeleteFile(ctx context.Context, id int64) error {
	if err := s.storage.DeleteFile(ctx, id); err != nil {
		return s.collaboratorFailure("deleteFile", err)
	}

	s.logger.Info("file deleted", "id", id)

	return s.refetch(ctx)
}

func (s *MutationService) collaboratorFailure(op string, err error) error {
	collabErr := domain.AsCollaboratorError(op, err)
	s.logger.Warn("storage call failed",
		"op", op,
		"status", collabErr.Status,
		"error", collabErr.UserMessage(),
	)
	return collabErr
}

// refetch reloads the host. The mutation has already been applied by the
// storage service, so a failure here is reported but not rolled back.
func (s *MutationService) refetch(ctx context.Context) error {
	if err := s.host.Refetch(ctx); err != nil {
		// the load error carries its own list op; report it as a refetch
		inner := domain.AsCollaboratorError("refetch", err)
		collabErr := &domain.CollaboratorError{
			Op:      "refetch",
			Status:  inner.Status,
			Message: inner.UserMessage(),
			Err:     err,
		}
		s.logger.Warn("refetch after mutation failed", "load_op", inner.Op, "error", collabErr.UserMessage())
		return collabErr
	}
	return nil
}
