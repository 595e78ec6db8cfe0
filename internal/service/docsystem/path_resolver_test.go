package docsystem

import (
	"errors"
	"strings"
	"testing"

	models "docshelf/internal/domain/models/docsystem"
)

func TestDisplayPath(t *testing.T) {
	chain := []models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
	}

	tests := []struct {
		name    string
		folders []models.Folder
		id      *int64
		want    string
	}{
		{name: "nil is root", folders: chain, id: nil, want: RootLabel},
		{name: "root folder", folders: chain, id: ptr(1), want: "A"},
		{name: "nested folder", folders: chain, id: ptr(3), want: "A / B / C"},
		{name: "unknown id", folders: chain, id: ptr(42), want: "Folder #42"},
		{name: "empty collection", folders: nil, id: ptr(1), want: "Folder #1"},
		{
			name:    "dangling ancestor keeps placeholder segment",
			folders: []models.Folder{folder(2, "B", ptr(99))},
			id:      ptr(2),
			want:    "Folder #99 / B",
		},
		{
			name:    "mutual cycle first",
			folders: []models.Folder{folder(1, "A", ptr(2)), folder(2, "B", ptr(1))},
			id:      ptr(1),
			want:    CyclicPathLabel,
		},
		{
			name:    "mutual cycle second",
			folders: []models.Folder{folder(1, "A", ptr(2)), folder(2, "B", ptr(1))},
			id:      ptr(2),
			want:    CyclicPathLabel,
		},
		{
			name:    "self parent",
			folders: []models.Folder{folder(5, "Loop", ptr(5))},
			id:      ptr(5),
			want:    CyclicPathLabel,
		},
		{
			name: "tail into cycle",
			folders: []models.Folder{
				folder(1, "A", ptr(2)), folder(2, "B", ptr(1)), folder(3, "C", ptr(1)),
			},
			id:   ptr(3),
			want: CyclicPathLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDisplayPath(tt.id, tt.folders); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplayPath_AcyclicPathsHaveNoRepeatedIDs(t *testing.T) {
	// wide and deep acyclic forest
	var folders []models.Folder
	for i := int64(1); i <= 50; i++ {
		var parent *int64
		if i > 1 {
			parent = ptr(i / 2)
		}
		folders = append(folders, folder(i, "f", parent))
	}
	index := NewFolderIndex(folders)

	for _, f := range folders {
		chain, err := index.Ancestors(f.ID)
		if err != nil {
			t.Fatalf("folder %d: unexpected error %v", f.ID, err)
		}
		seen := make(map[int64]bool)
		for _, id := range chain {
			if seen[id] {
				t.Fatalf("folder %d: id %d repeated in %v", f.ID, id, chain)
			}
			seen[id] = true
		}
		if got := index.DisplayPath(&f.ID); strings.Count(got, PathSeparator) != len(chain)-1 {
			t.Errorf("folder %d: path %q does not match chain %v", f.ID, got, chain)
		}
	}
}

func TestAncestors(t *testing.T) {
	index := NewFolderIndex([]models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
		folder(4, "X", ptr(5)),
		folder(5, "Y", ptr(4)),
		folder(6, "Z", ptr(77)),
	})

	t.Run("chain to root", func(t *testing.T) {
		chain, err := index.Ancestors(3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chain) != 3 || chain[0] != 3 || chain[2] != 1 {
			t.Errorf("expected [3 2 1], got %v", chain)
		}
	})

	t.Run("cycle is bounded", func(t *testing.T) {
		chain, err := index.Ancestors(4)
		if !errors.Is(err, ErrCyclicReference) {
			t.Fatalf("expected ErrCyclicReference, got %v", err)
		}
		if len(chain) > index.Len() {
			t.Errorf("walk took %d steps over %d folders", len(chain), index.Len())
		}
	})

	t.Run("dangling parent", func(t *testing.T) {
		chain, err := index.Ancestors(6)
		if !errors.Is(err, ErrDanglingParent) {
			t.Fatalf("expected ErrDanglingParent, got %v", err)
		}
		if len(chain) != 1 {
			t.Errorf("expected [6], got %v", chain)
		}
	})

	t.Run("descendant checks", func(t *testing.T) {
		if !index.IsDescendant(3, 1) {
			t.Error("expected 3 to be below 1")
		}
		if index.IsDescendant(1, 3) {
			t.Error("expected 1 not to be below 3")
		}
		if index.IsDescendant(3, 3) {
			t.Error("a folder is not its own descendant")
		}
	})
}
