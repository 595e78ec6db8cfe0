package browser

import (
	"context"

	docsys "docshelf/internal/service/docsystem"
)

// cmdHost is the Host a background mutation runs against. It starts from the
// generation the view showed when the command was issued and collects the
// reloaded snapshot and any selection change, which Update then applies to
// the real view on the UI goroutine.
type cmdHost struct {
	loader   *docsys.Loader
	snapshot *docsys.Snapshot
	selected *int64

	reloaded       *docsys.Snapshot
	selectionReset bool
}

func newCmdHost(view *docsys.FolderView) *cmdHost {
	var selected *int64
	if id := view.SelectedFolderID(); id != nil {
		v := *id
		selected = &v
	}
	return &cmdHost{
		loader:   view.Loader(),
		snapshot: view.Snapshot(),
		selected: selected,
	}
}

func (h *cmdHost) Snapshot() *docsys.Snapshot {
	if h.reloaded != nil {
		return h.reloaded
	}
	return h.snapshot
}

func (h *cmdHost) SelectedFolderID() *int64 {
	return h.selected
}

func (h *cmdHost) SelectFolder(id *int64) {
	h.selected = id
	if id == nil {
		h.selectionReset = true
	}
}

func (h *cmdHost) Refetch(ctx context.Context) error {
	snap, err := h.loader.Load(ctx)
	if err != nil {
		return err
	}
	h.reloaded = snap
	return nil
}

// result packages what the command observed for Update.
func (h *cmdHost) result(op, status string, err error) mutationMsg {
	return mutationMsg{
		op:             op,
		status:         status,
		snapshot:       h.reloaded,
		selectionReset: h.selectionReset,
		err:            err,
	}
}
