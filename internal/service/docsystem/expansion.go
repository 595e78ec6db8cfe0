package docsystem

import (
	"sort"

	models "docshelf/internal/domain/models/docsystem"
)

// ExpansionState is the set of folder ids a view shows open.
// It outlives tree generations; it is not safe for concurrent use.
type ExpansionState struct {
	expanded map[int64]struct{}
}

// NewExpansionState creates an empty expansion set.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(map[int64]struct{})}
}

// Toggle flips id and returns whether it is now expanded.
func (s *ExpansionState) Toggle(id int64) bool {
	if _, ok := s.expanded[id]; ok {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// Expand marks id open and reports whether it was closed before.
func (s *ExpansionState) Expand(id int64) bool {
	if _, ok := s.expanded[id]; ok {
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// Collapse marks id closed.
func (s *ExpansionState) Collapse(id int64) {
	delete(s.expanded, id)
}

// IsExpanded reports whether id is open.
func (s *ExpansionState) IsExpanded(id int64) bool {
	_, ok := s.expanded[id]
	return ok
}

// IDs returns the open ids in ascending order.
func (s *ExpansionState) IDs() []int64 {
	ids := make([]int64, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of open folders.
func (s *ExpansionState) Len() int {
	return len(s.expanded)
}

// Clear empties the set. Views call it when they close.
func (s *ExpansionState) Clear() {
	s.expanded = make(map[int64]struct{})
}

// RevealSelection opens every ancestor of the selected folder so the selection
// is visible, without opening the selected folder itself. It returns the ids
// that were newly opened. An unknown or nil selection changes nothing.
func (s *ExpansionState) RevealSelection(roots []*models.FolderTreeNode, selected *int64) []int64 {
	if selected == nil {
		return nil
	}
	chain := FindFolderChain(roots, *selected)
	if len(chain) < 2 {
		return nil
	}

	var opened []int64
	for _, id := range chain[:len(chain)-1] {
		if s.Expand(id) {
			opened = append(opened, id)
		}
	}
	return opened
}

// RevealChildren opens the selected folder when it has at least one child
// folder, so freshly created subfolders show up. It reports whether the set
// changed.
func (s *ExpansionState) RevealChildren(roots []*models.FolderTreeNode, selected *int64) bool {
	if selected == nil {
		return false
	}
	node := FindFolderNode(roots, *selected)
	if node == nil || !node.HasChildren() {
		return false
	}
	return s.Expand(*selected)
}
