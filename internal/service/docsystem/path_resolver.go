package docsystem

import (
	"errors"
	"fmt"
	"strings"

	models "docshelf/internal/domain/models/docsystem"
)

// Display path sentinels.
const (
	RootLabel       = "Root"
	CyclicPathLabel = "(cyclic reference)"
	PathSeparator   = " / "
)

var (
	// ErrCyclicReference is returned by walks that revisit a folder id
	ErrCyclicReference = errors.New("cyclic folder reference")

	// ErrDanglingParent is returned when a parent id names no known folder
	ErrDanglingParent = errors.New("dangling parent reference")
)

// MissingFolderLabel is the placeholder for a folder id absent from the collection.
func MissingFolderLabel(id int64) string {
	return fmt.Sprintf("Folder #%d", id)
}

// FolderIndex is an id lookup over one flat folder collection. Walks over it
// follow raw parent pointers and guard themselves against cycles.
type FolderIndex struct {
	byID map[int64]models.Folder
}

// NewFolderIndex indexes folders by id (first record wins on duplicates).
func NewFolderIndex(folders []models.Folder) *FolderIndex {
	byID := make(map[int64]models.Folder, len(folders))
	for _, f := range folders {
		if _, dup := byID[f.ID]; !dup {
			byID[f.ID] = f
		}
	}
	return &FolderIndex{byID: byID}
}

// Get returns the folder record for id.
func (x *FolderIndex) Get(id int64) (models.Folder, bool) {
	f, ok := x.byID[id]
	return f, ok
}

// Len returns the number of indexed folders.
func (x *FolderIndex) Len() int {
	return len(x.byID)
}

// DisplayPath derives "A / B / C" for id. Nil yields RootLabel, an unknown id
// yields its placeholder, and a cycle anywhere on the walk yields CyclicPathLabel.
func (x *FolderIndex) DisplayPath(id *int64) (path string) {
	if id == nil {
		return RootLabel
	}

	defer func() {
		if r := recover(); r != nil {
			path = MissingFolderLabel(*id)
		}
	}()

	if _, ok := x.byID[*id]; !ok {
		return MissingFolderLabel(*id)
	}

	var segments []string
	visited := make(map[int64]struct{}, 8)
	current := *id
	for {
		if _, seen := visited[current]; seen {
			return CyclicPathLabel
		}
		visited[current] = struct{}{}

		folder, ok := x.byID[current]
		if !ok {
			// partially loaded data: show the raw id for the missing ancestor
			segments = append(segments, MissingFolderLabel(current))
			break
		}
		segments = append(segments, folder.Name)
		if folder.ParentID == nil {
			break
		}
		current = *folder.ParentID
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, PathSeparator)
}

// Ancestors returns the chain id, parent(id), ... up to a root-level folder.
// The walk stops with ErrCyclicReference when an id repeats and with
// ErrDanglingParent when a parent is unknown; the chain collected so far is
// returned alongside the error.
func (x *FolderIndex) Ancestors(id int64) ([]int64, error) {
	visited := make(map[int64]struct{}, 8)
	var chain []int64
	current := id
	for {
		if _, seen := visited[current]; seen {
			return chain, fmt.Errorf("folder %d: %w", current, ErrCyclicReference)
		}
		visited[current] = struct{}{}

		folder, ok := x.byID[current]
		if !ok {
			return chain, fmt.Errorf("folder %d: %w", current, ErrDanglingParent)
		}
		chain = append(chain, current)
		if folder.ParentID == nil {
			return chain, nil
		}
		current = *folder.ParentID
	}
}

// IsDescendant reports whether candidate lies strictly below ancestor when
// following raw parent pointers. Cycles and dangling parents end the walk.
func (x *FolderIndex) IsDescendant(candidate, ancestor int64) bool {
	chain, _ := x.Ancestors(candidate)
	for _, id := range chain[min(1, len(chain)):] {
		if id == ancestor {
			return true
		}
	}
	return false
}

// ResolveDisplayPath is DisplayPath over an unindexed collection.
func ResolveDisplayPath(id *int64, folders []models.Folder) string {
	return NewFolderIndex(folders).DisplayPath(id)
}
