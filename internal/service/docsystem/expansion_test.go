package docsystem

import (
	"testing"

	models "docshelf/internal/domain/models/docsystem"

	"golang.org/x/text/language"
)

func sampleRoots() []*models.FolderTreeNode {
	return NewTreeBuilder(language.English).BuildFolders([]models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
		folder(4, "D", nil),
		folder(5, "E", ptr(4)),
	})
}

func TestExpansionState_Toggle(t *testing.T) {
	s := NewExpansionState()

	if !s.Toggle(1) {
		t.Error("first toggle should expand")
	}
	if !s.IsExpanded(1) {
		t.Error("expected 1 expanded")
	}
	if s.Toggle(1) {
		t.Error("second toggle should collapse")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %v", s.IDs())
	}
}

func TestExpansionState_RevealSelection(t *testing.T) {
	roots := sampleRoots()

	t.Run("opens ancestors but not the selection", func(t *testing.T) {
		s := NewExpansionState()
		opened := s.RevealSelection(roots, ptr(3))

		if len(opened) != 2 {
			t.Errorf("expected 2 newly opened ids, got %v", opened)
		}
		if !s.IsExpanded(1) || !s.IsExpanded(2) {
			t.Errorf("expected ancestors 1 and 2 open, got %v", s.IDs())
		}
		if s.IsExpanded(3) {
			t.Error("selected folder must not be opened")
		}
	})

	t.Run("unknown selection is a no-op", func(t *testing.T) {
		s := NewExpansionState()
		s.RevealSelection(roots, ptr(99))
		if s.Len() != 0 {
			t.Errorf("expected no change, got %v", s.IDs())
		}
	})

	t.Run("nil selection is a no-op", func(t *testing.T) {
		s := NewExpansionState()
		if opened := s.RevealSelection(roots, nil); opened != nil {
			t.Errorf("expected nothing opened, got %v", opened)
		}
	})

	t.Run("keeps unrelated user choices", func(t *testing.T) {
		s := NewExpansionState()
		s.Toggle(4)
		s.RevealSelection(roots, ptr(2))
		if !s.IsExpanded(4) || !s.IsExpanded(1) {
			t.Errorf("expected 1 and 4 open, got %v", s.IDs())
		}
	})
}

func TestExpansionState_RevealChildren(t *testing.T) {
	roots := sampleRoots()

	tests := []struct {
		name     string
		selected *int64
		changed  bool
	}{
		{name: "selection with children", selected: ptr(1), changed: true},
		{name: "leaf selection", selected: ptr(3), changed: false},
		{name: "unknown selection", selected: ptr(99), changed: false},
		{name: "root selection", selected: nil, changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExpansionState()
			if got := s.RevealChildren(roots, tt.selected); got != tt.changed {
				t.Errorf("expected changed=%v, got %v", tt.changed, got)
			}
			if tt.changed && !s.IsExpanded(*tt.selected) {
				t.Errorf("expected %d open", *tt.selected)
			}
		})
	}
}
