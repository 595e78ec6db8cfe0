package docsystem

import (
	"context"
	"errors"
	"testing"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"

	"golang.org/x/text/language"
)

func newTestView(storage *fakeStorage) *FolderView {
	loader := NewLoader(storage, NewTreeBuilder(language.English), models.ScopePrivate, discardLogger())
	return NewFolderView(loader, discardLogger())
}

func TestFolderView_SelectRevealsAncestors(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
	}}
	view := newTestView(storage)
	if err := view.Refetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view.SelectFolder(ptr(3))

	if !view.IsExpanded(1) || !view.IsExpanded(2) {
		t.Errorf("expected ancestors open, got %v", view.Expansion().IDs())
	}
	if view.IsExpanded(3) {
		t.Error("selection must not be opened by Select")
	}
	if got := view.DisplayPath(view.SelectedFolderID()); got != "A / B / C" {
		t.Errorf("expected A / B / C, got %q", got)
	}
	if rows := view.Rows(); len(rows) != 3 {
		t.Errorf("expected 3 visible rows, got %d", len(rows))
	}
}

func TestFolderView_ApplyOpensSelectionWithNewChild(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{folder(1, "A", nil)}}
	view := newTestView(storage)
	ctx := context.Background()

	if err := view.Refetch(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view.SelectFolder(ptr(1))
	if view.IsExpanded(1) {
		t.Fatal("childless selection should stay closed")
	}

	storage.folders = append(storage.folders, folder(2, "B", ptr(1)))
	if err := view.Refetch(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !view.IsExpanded(1) {
		t.Error("expected selection opened once it has a child")
	}
}

func TestFolderView_UserCollapseSurvivesSelect(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
	}}
	view := newTestView(storage)
	if err := view.Refetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view.SelectFolder(ptr(1))
	view.Toggle(1)
	view.SelectFolder(ptr(1))

	if view.IsExpanded(1) {
		t.Error("selecting again must not reopen a collapsed selection")
	}
}

func TestFolderView_RefetchFailureKeepsGeneration(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{folder(1, "A", nil)}}
	view := newTestView(storage)
	ctx := context.Background()

	if err := view.Refetch(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := view.Snapshot()

	storage.err = errors.New("boom")
	err := view.Refetch(ctx)

	var collabErr *domain.CollaboratorError
	if !errors.As(err, &collabErr) || collabErr.Op != "listFolders" {
		t.Fatalf("expected listFolders CollaboratorError, got %v", err)
	}
	if view.Snapshot() != before {
		t.Error("expected previous generation to stay in place")
	}
}

func TestFolderView_MutationsThroughView(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
	}}
	view := newTestView(storage)
	ctx := context.Background()
	if err := view.Refetch(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view.SelectFolder(ptr(2))

	svc := NewMutationService(storage, view, discardLogger())
	if err := svc.DeleteFolder(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.SelectedFolderID() != nil {
		t.Errorf("expected selection cleared, got %d", *view.SelectedFolderID())
	}
}

func TestFolderView_Close(t *testing.T) {
	storage := &fakeStorage{folders: []models.Folder{folder(1, "A", nil), folder(2, "B", ptr(1))}}
	view := newTestView(storage)
	if err := view.Refetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view.Toggle(1)

	view.Close()

	if view.Expansion().Len() != 0 || view.Snapshot() != nil || view.SelectedFolderID() != nil {
		t.Error("expected view state released")
	}
	if got := view.DisplayPath(ptr(1)); got != "Folder #1" {
		t.Errorf("expected placeholder after close, got %q", got)
	}
}
