package docsystem

import (
	"context"
	"log/slog"
	"time"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
)

// Snapshot is one generation of the flat collections and everything derived
// from them. Snapshots are never modified after construction; a reload
// produces a new one.
type Snapshot struct {
	Scope    models.Scope
	Folders  []models.Folder
	Files    []models.File
	Tree     *models.TreeNode
	Index    *FolderIndex
	LoadedAt time.Time
}

// NewSnapshot builds the tree and index for one pair of flat collections.
func NewSnapshot(scope models.Scope, folders []models.Folder, files []models.File, builder *TreeBuilder) *Snapshot {
	return &Snapshot{
		Scope:    scope,
		Folders:  folders,
		Files:    files,
		Tree:     builder.Build(folders, files),
		Index:    NewFolderIndex(folders),
		LoadedAt: time.Now(),
	}
}

// Roots returns the root-level folder nodes.
func (s *Snapshot) Roots() []*models.FolderTreeNode {
	if s == nil || s.Tree == nil {
		return nil
	}
	return s.Tree.Folders
}

// Folder looks up a folder record.
func (s *Snapshot) Folder(id int64) (models.Folder, bool) {
	if s == nil {
		return models.Folder{}, false
	}
	return s.Index.Get(id)
}

// File looks up a file record.
func (s *Snapshot) File(id int64) (models.File, bool) {
	if s == nil {
		return models.File{}, false
	}
	for _, f := range s.Files {
		if f.ID == id {
			return f, true
		}
	}
	return models.File{}, false
}

// FilesIn returns the files whose folder is folderID (nil = root level).
// Files pointing at an unknown folder are listed at root, like the tree does.
func (s *Snapshot) FilesIn(folderID *int64) []models.File {
	if s == nil || s.Tree == nil {
		return nil
	}
	if folderID == nil {
		return s.Tree.Files
	}
	node := FindFolderNode(s.Tree.Folders, *folderID)
	if node == nil {
		return nil
	}
	return node.Files
}

// DisplayPath resolves the display path of a folder in this generation.
func (s *Snapshot) DisplayPath(id *int64) string {
	if s == nil {
		return NewFolderIndex(nil).DisplayPath(id)
	}
	return s.Index.DisplayPath(id)
}

// Loader fetches a complete generation from the storage service.
type Loader struct {
	storage docsysRepo.Storage
	builder *TreeBuilder
	scope   models.Scope
	logger  *slog.Logger
}

// NewLoader creates a loader for one scope.
func NewLoader(storage docsysRepo.Storage, builder *TreeBuilder, scope models.Scope, logger *slog.Logger) *Loader {
	return &Loader{
		storage: storage,
		builder: builder,
		scope:   scope,
		logger:  logger,
	}
}

// Scope returns the scope the loader lists.
func (l *Loader) Scope() models.Scope {
	return l.scope
}

// Load lists every folder and file in the scope and builds a snapshot.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	folders, err := l.storage.ListFolders(ctx, l.scope)
	if err != nil {
		return nil, domain.AsCollaboratorError("listFolders", err)
	}

	files, err := l.storage.ListFiles(ctx, nil, l.scope)
	if err != nil {
		return nil, domain.AsCollaboratorError("listFiles", err)
	}

	snap := NewSnapshot(l.scope, folders, files, l.builder)

	l.logger.Debug("folder snapshot loaded",
		"scope", l.scope,
		"folder_count", len(folders),
		"file_count", len(files),
		"root_count", len(snap.Tree.Folders),
	)

	return snap, nil
}
