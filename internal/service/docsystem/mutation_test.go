package docsystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"

	"golang.org/x/text/language"
)

// fakeStorage records calls and answers from in-memory slices.
type fakeStorage struct {
	folders []models.Folder
	files   []models.File
	err     error
	listErr error // returned by ListFolders only
	calls   []string

	lastUpdate docsysRepo.FileUpdate
	lastScope  models.Scope
}

func (f *fakeStorage) record(op string) error {
	f.calls = append(f.calls, op)
	return f.err
}

func (f *fakeStorage) ListFolders(ctx context.Context, scope models.Scope) ([]models.Folder, error) {
	if err := f.record("listFolders"); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.folders, nil
}

func (f *fakeStorage) CreateFolder(ctx context.Context, name string, parentID *int64, scope models.Scope) (*models.Folder, error) {
	if err := f.record("createFolder"); err != nil {
		return nil, err
	}
	f.lastScope = scope
	folder := models.Folder{ID: int64(len(f.folders) + 100), Name: name, ParentID: parentID, IsPublic: scope.IsPublic()}
	f.folders = append(f.folders, folder)
	return &folder, nil
}

func (f *fakeStorage) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	if err := f.record("renameFolder"); err != nil {
		return nil, err
	}
	return &models.Folder{ID: id, Name: name}, nil
}

func (f *fakeStorage) MoveFolder(ctx context.Context, id int64, parentID *int64) (*models.Folder, error) {
	if err := f.record("moveFolder"); err != nil {
		return nil, err
	}
	return &models.Folder{ID: id, ParentID: parentID}, nil
}

func (f *fakeStorage) DeleteFolder(ctx context.Context, id int64) error {
	return f.record("deleteFolder")
}

func (f *fakeStorage) ListFiles(ctx context.Context, folderID *int64, scope models.Scope) ([]models.File, error) {
	if err := f.record("listFiles"); err != nil {
		return nil, err
	}
	return f.files, nil
}

func (f *fakeStorage) UpdateFile(ctx context.Context, id int64, update docsysRepo.FileUpdate) (*models.File, error) {
	if err := f.record("updateFile"); err != nil {
		return nil, err
	}
	f.lastUpdate = update
	file := models.File{ID: id}
	if update.Name != nil {
		file.Name = *update.Name
	}
	if update.FolderID.Present {
		file.FolderID = update.FolderID.Value
	}
	return &file, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, id int64) error {
	return f.record("deleteFile")
}

// fakeHost holds a fixed snapshot and counts refetches.
type fakeHost struct {
	snapshot   *Snapshot
	selected   *int64
	refetches  int
	refetchErr error
}

func (h *fakeHost) Snapshot() *Snapshot      { return h.snapshot }
func (h *fakeHost) SelectedFolderID() *int64 { return h.selected }
func (h *fakeHost) SelectFolder(id *int64)   { h.selected = id }

func (h *fakeHost) Refetch(ctx context.Context) error {
	h.refetches++
	return h.refetchErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMutationFixture(scope models.Scope) (*MutationService, *fakeStorage, *fakeHost) {
	folders := []models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
		folder(4, "D", nil),
	}
	files := []models.File{
		{ID: 10, Name: "paper.pdf", FolderID: ptr(2)},
		{ID: 11, Name: "notes.txt"},
	}
	storage := &fakeStorage{folders: folders, files: files}
	host := &fakeHost{
		snapshot: NewSnapshot(scope, folders, files, NewTreeBuilder(language.English)),
	}
	return NewMutationService(storage, host, discardLogger()), storage, host
}

func TestMutationService_ValidationNeverReachesStorage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(s *MutationService) error
	}{
		{
			name: "empty folder name",
			run: func(s *MutationService) error {
				_, err := s.CreateFolder(ctx, "   ", nil)
				return err
			},
		},
		{
			name: "empty rename",
			run: func(s *MutationService) error {
				_, err := s.RenameFolder(ctx, 1, "")
				return err
			},
		},
		{
			name: "move folder onto current parent",
			run: func(s *MutationService) error {
				_, err := s.MoveFolder(ctx, 2, ptr(1))
				return err
			},
		},
		{
			name: "move folder into its descendant",
			run: func(s *MutationService) error {
				_, err := s.MoveFolder(ctx, 1, ptr(3))
				return err
			},
		},
		{
			name: "move unknown folder into itself",
			run: func(s *MutationService) error {
				_, err := s.MoveFolder(ctx, 77, ptr(77))
				return err
			},
		},
		{
			name: "move file onto current folder",
			run: func(s *MutationService) error {
				_, err := s.MoveFile(ctx, 10, ptr(2))
				return err
			},
		},
		{
			name: "move root file to root",
			run: func(s *MutationService) error {
				_, err := s.MoveFile(ctx, 11, nil)
				return err
			},
		},
		{
			name: "empty file name",
			run: func(s *MutationService) error {
				_, err := s.RenameFile(ctx, 10, "\t")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage, host := newMutationFixture(models.ScopePrivate)

			err := tt.run(svc)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(storage.calls) != 0 {
				t.Errorf("expected no storage calls, got %v", storage.calls)
			}
			if host.refetches != 0 {
				t.Errorf("expected no refetch, got %d", host.refetches)
			}
		})
	}
}

func TestMutationService_SuccessRefetches(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		run    func(s *MutationService) error
		wantOp string
	}{
		{
			name:   "create folder",
			run:    func(s *MutationService) error { _, err := s.CreateFolder(ctx, "New", ptr(1)); return err },
			wantOp: "createFolder",
		},
		{
			name:   "rename folder",
			run:    func(s *MutationService) error { _, err := s.RenameFolder(ctx, 1, "Renamed"); return err },
			wantOp: "renameFolder",
		},
		{
			name:   "move folder to root",
			run:    func(s *MutationService) error { _, err := s.MoveFolder(ctx, 2, nil); return err },
			wantOp: "moveFolder",
		},
		{
			name:   "delete folder",
			run:    func(s *MutationService) error { return s.DeleteFolder(ctx, 4) },
			wantOp: "deleteFolder",
		},
		{
			name:   "rename file",
			run:    func(s *MutationService) error { _, err := s.RenameFile(ctx, 10, "final.pdf"); return err },
			wantOp: "updateFile",
		},
		{
			name:   "move file",
			run:    func(s *MutationService) error { _, err := s.MoveFile(ctx, 10, ptr(4)); return err },
			wantOp: "updateFile",
		},
		{
			name:   "delete file",
			run:    func(s *MutationService) error { return s.DeleteFile(ctx, 11) },
			wantOp: "deleteFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage, host := newMutationFixture(models.ScopePrivate)

			if err := tt.run(svc); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(storage.calls) != 1 || storage.calls[0] != tt.wantOp {
				t.Errorf("expected single %s call, got %v", tt.wantOp, storage.calls)
			}
			if host.refetches != 1 {
				t.Errorf("expected one refetch, got %d", host.refetches)
			}
		})
	}
}

func TestMutationService_CollaboratorFailure(t *testing.T) {
	ctx := context.Background()
	svc, storage, host := newMutationFixture(models.ScopePrivate)
	storage.err = &domain.ConflictError{Message: "folder name already exists", ResourceType: "folder"}

	_, err := svc.CreateFolder(ctx, "A", nil)

	var collabErr *domain.CollaboratorError
	if !errors.As(err, &collabErr) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collabErr.Op != "createFolder" {
		t.Errorf("expected op createFolder, got %q", collabErr.Op)
	}
	if collabErr.UserMessage() != "folder name already exists" {
		t.Errorf("expected server message, got %q", collabErr.UserMessage())
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Error("expected the underlying conflict to stay reachable")
	}
	if host.refetches != 0 {
		t.Errorf("expected no refetch after failure, got %d", host.refetches)
	}
}

func TestMutationService_CollaboratorFailureWithoutMessage(t *testing.T) {
	svc, storage, _ := newMutationFixture(models.ScopePrivate)
	storage.err = &domain.CollaboratorError{Op: "deleteFile", Status: 500}

	err := svc.DeleteFile(context.Background(), 11)

	var collabErr *domain.CollaboratorError
	if !errors.As(err, &collabErr) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collabErr.UserMessage() != domain.DefaultCollaboratorMessage {
		t.Errorf("expected fallback message, got %q", collabErr.UserMessage())
	}
}

func TestMutationService_RefetchFailureIsReported(t *testing.T) {
	svc, storage, host := newMutationFixture(models.ScopePrivate)
	host.refetchErr = errors.New("connection reset")

	folder, err := svc.RenameFolder(context.Background(), 1, "Renamed")

	if folder == nil {
		t.Fatal("expected the renamed folder even though refetch failed")
	}
	var collabErr *domain.CollaboratorError
	if !errors.As(err, &collabErr) || collabErr.Op != "refetch" {
		t.Fatalf("expected refetch CollaboratorError, got %v", err)
	}
	if len(storage.calls) != 1 {
		t.Errorf("expected no rollback call, got %v", storage.calls)
	}
}

func TestMutationService_RefetchFailureThroughFolderView(t *testing.T) {
	ctx := context.Background()
	storage := &fakeStorage{folders: []models.Folder{folder(1, "A", nil)}}
	view := NewFolderView(NewLoader(storage, NewTreeBuilder(language.English), models.ScopePrivate, discardLogger()), discardLogger())
	if err := view.Refetch(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	svc := NewMutationService(storage, view, discardLogger())

	storage.listErr = errors.New("connection reset")
	folder, err := svc.RenameFolder(ctx, 1, "B")

	if folder == nil || folder.Name != "B" {
		t.Fatalf("expected the renamed folder, got %+v", folder)
	}
	var collabErr *domain.CollaboratorError
	if !errors.As(err, &collabErr) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collabErr.Op != "refetch" {
		t.Errorf("expected op refetch, got %q (%v)", collabErr.Op, err)
	}
	if collabErr.UserMessage() != "connection reset" {
		t.Errorf("expected load failure kept as message, got %q", collabErr.UserMessage())
	}
	if view.Snapshot().Folders[0].Name != "A" {
		t.Error("expected the previous snapshot kept after a failed refetch")
	}
}

func TestMutationService_CreateFolderUsesHostScope(t *testing.T) {
	svc, storage, _ := newMutationFixture(models.ScopeShared)

	if _, err := svc.CreateFolder(context.Background(), "Team", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storage.lastScope != models.ScopeShared {
		t.Errorf("expected shared scope, got %q", storage.lastScope)
	}
}

func TestMutationService_MoveFileToRootSendsNull(t *testing.T) {
	svc, storage, _ := newMutationFixture(models.ScopePrivate)

	if _, err := svc.MoveFile(context.Background(), 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !storage.lastUpdate.FolderID.Present || storage.lastUpdate.FolderID.Value != nil {
		t.Errorf("expected present null folderId, got %+v", storage.lastUpdate.FolderID)
	}
	if storage.lastUpdate.Name != nil {
		t.Error("expected name untouched")
	}
}

func TestMutationService_DeleteFolderSelection(t *testing.T) {
	tests := []struct {
		name      string
		selected  *int64
		deleteID  int64
		wantClear bool
	}{
		{name: "deleting the selection", selected: ptr(2), deleteID: 2, wantClear: true},
		{name: "deleting an ancestor of the selection", selected: ptr(3), deleteID: 1, wantClear: true},
		{name: "deleting an unrelated folder", selected: ptr(3), deleteID: 4, wantClear: false},
		{name: "nothing selected", selected: nil, deleteID: 1, wantClear: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, host := newMutationFixture(models.ScopePrivate)
			host.selected = tt.selected

			if err := svc.DeleteFolder(context.Background(), tt.deleteID); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			cleared := tt.selected != nil && host.selected == nil
			if cleared != tt.wantClear {
				t.Errorf("expected cleared=%v, selection now %v", tt.wantClear, host.selected)
			}
		})
	}
}
