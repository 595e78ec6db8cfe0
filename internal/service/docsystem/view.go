package docsystem

import (
	"context"
	"log/slog"

	models "docshelf/internal/domain/models/docsystem"

	"github.com/google/uuid"
)

// FolderView is the host-side state of one mounted folder view: the current
// generation, the selected folder and the expansion set. Reconciliation runs
// explicitly from Select and Apply. FolderView is not safe for concurrent use;
// hosts drive it from a single goroutine.
type FolderView struct {
	id        uuid.UUID
	loader    *Loader
	snapshot  *Snapshot
	selected  *int64
	expansion *ExpansionState
	logger    *slog.Logger
}

// NewFolderView creates an unloaded view. Call Refetch before reading it.
func NewFolderView(loader *Loader, logger *slog.Logger) *FolderView {
	id := uuid.New()
	return &FolderView{
		id:        id,
		loader:    loader,
		expansion: NewExpansionState(),
		logger:    logger.With("view_id", id.String()),
	}
}

// ID identifies the view instance in logs.
func (v *FolderView) ID() uuid.UUID {
	return v.id
}

// Loader returns the loader the view refetches with.
func (v *FolderView) Loader() *Loader {
	return v.loader
}

// Snapshot returns the current generation, nil before the first load.
func (v *FolderView) Snapshot() *Snapshot {
	return v.snapshot
}

// SelectedFolderID returns the selected folder, nil for root.
func (v *FolderView) SelectedFolderID() *int64 {
	return v.selected
}

// Expansion exposes the expansion set.
func (v *FolderView) Expansion() *ExpansionState {
	return v.expansion
}

// Refetch loads a new generation and applies it. On failure the previous
// generation stays in place.
func (v *FolderView) Refetch(ctx context.Context) error {
	snap, err := v.loader.Load(ctx)
	if err != nil {
		return err
	}
	v.Apply(snap)
	return nil
}

// Apply installs a new generation and reconciles the expansion set: the
// selected folder opens when it has children, and its ancestors open so it
// stays visible after moves.
func (v *FolderView) Apply(snap *Snapshot) {
	if snap == nil {
		return
	}
	v.snapshot = snap

	roots := snap.Roots()
	if v.expansion.RevealChildren(roots, v.selected) {
		v.logger.Debug("expanded selected folder with children", "folder_id", *v.selected)
	}
	if opened := v.expansion.RevealSelection(roots, v.selected); len(opened) > 0 {
		v.logger.Debug("expanded ancestors of selection", "folder_ids", opened)
	}
}

// SelectFolder changes the selection and reveals its ancestors.
func (v *FolderView) SelectFolder(id *int64) {
	if id != nil {
		selected := *id
		id = &selected
	}
	v.selected = id

	if opened := v.expansion.RevealSelection(v.snapshot.Roots(), id); len(opened) > 0 {
		v.logger.Debug("expanded ancestors of selection", "folder_ids", opened)
	}
}

// Toggle flips the expansion of one folder and returns the new state.
func (v *FolderView) Toggle(id int64) bool {
	return v.expansion.Toggle(id)
}

// IsExpanded reports whether a folder is shown open.
func (v *FolderView) IsExpanded(id int64) bool {
	return v.expansion.IsExpanded(id)
}

// Rows returns the visible folder rows in display order.
func (v *FolderView) Rows() []TreeRow {
	return Flatten(v.snapshot.Roots(), v.expansion.IsExpanded)
}

// DisplayPath resolves a folder's display path in the current generation.
func (v *FolderView) DisplayPath(id *int64) string {
	return v.snapshot.DisplayPath(id)
}

// SelectedFiles returns the files in the selected folder.
func (v *FolderView) SelectedFiles() []models.File {
	return v.snapshot.FilesIn(v.selected)
}

// Close releases the view's state; the expansion set does not outlive it.
func (v *FolderView) Close() {
	v.expansion.Clear()
	v.snapshot = nil
	v.selected = nil
}
