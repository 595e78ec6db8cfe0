package browser

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	models "docshelf/internal/domain/models/docsystem"
	"docshelf/internal/repository/memory"
	docsys "docshelf/internal/service/docsystem"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
)

func ptr(n int64) *int64 { return &n }

// newTestModel returns a loaded browser over:
//
//	Papers(1)
//	  ML(2)        attention.pdf(10)
//	Notes(3)
func newTestModel(t *testing.T) (*Model, *memory.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStoreFromFixture(&memory.Fixture{
		Folders: []models.Folder{
			{ID: 1, Name: "Papers"},
			{ID: 2, Name: "ML", ParentID: ptr(1)},
			{ID: 3, Name: "Notes"},
			{ID: 4, Name: "Team", IsPublic: true},
		},
		Files: []models.File{
			{ID: 10, Name: "attention.pdf", FolderID: ptr(2)},
		},
	}, 1, logger)

	m := New(context.Background(), store, docsys.NewTreeBuilder(language.English), models.ScopePrivate, logger)
	run(t, m, m.Init())
	return m, store
}

// run executes a storage command synchronously and feeds its result back.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case snapshotMsg, mutationMsg:
		m.Update(msg)
	default:
		t.Fatalf("unexpected message %T", msg)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys that do not start storage work.
func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

// submit sends a key expected to start storage work and runs it.
func submit(t *testing.T, m *Model, k string) {
	t.Helper()
	_, cmd := m.Update(keyMsg(k))
	run(t, m, cmd)
}

func TestBrowser_InitialLoad(t *testing.T) {
	m, _ := newTestModel(t)

	rows := m.FolderView().Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 collapsed root rows, got %d", len(rows))
	}
	if rows[0].Node.Folder.Name != "Notes" || rows[1].Node.Folder.Name != "Papers" {
		t.Errorf("expected sorted roots, got %s, %s", rows[0].Node.Folder.Name, rows[1].Node.Folder.Name)
	}
	if !strings.Contains(m.View(), "Path: Root") {
		t.Errorf("expected root path in view:\n%s", m.View())
	}
}

func TestBrowser_NavigateSelectsAndShowsPath(t *testing.T) {
	m, _ := newTestModel(t)

	// root -> Notes -> Papers, open Papers, -> ML
	press(m, "down", "down", "enter", "down")

	selected := m.FolderView().SelectedFolderID()
	if selected == nil || *selected != 2 {
		t.Fatalf("expected ML selected, got %v", selected)
	}
	view := m.View()
	if !strings.Contains(view, "Papers / ML") {
		t.Errorf("expected display path in view:\n%s", view)
	}
	if !strings.Contains(view, "attention.pdf") {
		t.Errorf("expected ML files in view:\n%s", view)
	}

	press(m, "up", "up", "up")
	if m.FolderView().SelectedFolderID() != nil {
		t.Error("expected root selected at the top")
	}
}

func TestBrowser_CreateFolderOpensParent(t *testing.T) {
	m, store := newTestModel(t)
	press(m, "down") // Notes, no children yet

	press(m, "n")
	if m.mode != modeInput {
		t.Fatal("expected input mode")
	}
	press(m, " Drafts ")
	submit(t, m, "enter")

	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if !m.FolderView().IsExpanded(3) {
		t.Error("expected selected folder to open once it has a child")
	}

	var found bool
	for _, f := range store.Export().Folders {
		if f.Name == "Drafts" && f.ParentID != nil && *f.ParentID == 3 {
			found = true
		}
	}
	if !found {
		t.Error("expected trimmed Drafts folder under Notes")
	}
}

func TestBrowser_ValidationErrorSkipsStorage(t *testing.T) {
	m, store := newTestModel(t)
	before := len(store.Export().Folders)

	press(m, "n", "   ")
	submit(t, m, "enter")

	if m.errMsg == "" {
		t.Error("expected validation message")
	}
	if len(store.Export().Folders) != before {
		t.Error("expected no folder created")
	}
}

func TestBrowser_ConflictShowsServerMessage(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "n", "Notes")
	submit(t, m, "enter")

	if !strings.Contains(m.errMsg, "already exists") {
		t.Errorf("expected conflict message, got %q", m.errMsg)
	}
}

func TestBrowser_DeleteSelectedFolderResetsSelection(t *testing.T) {
	m, store := newTestModel(t)
	press(m, "down", "down") // Papers

	press(m, "d")
	if m.mode != modeConfirm {
		t.Fatal("expected confirmation")
	}
	submit(t, m, "y")

	if m.FolderView().SelectedFolderID() != nil {
		t.Error("expected selection cleared")
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor on root, got %d", m.cursor)
	}
	if len(store.Export().Files) != 0 {
		t.Error("expected files below Papers removed")
	}
}

func TestBrowser_DeleteCancelled(t *testing.T) {
	m, store := newTestModel(t)
	press(m, "down", "d", "n")

	if m.status != "cancelled" || len(store.Export().Folders) != 4 {
		t.Errorf("expected nothing deleted, status %q", m.status)
	}
}

func TestBrowser_MoveFolder(t *testing.T) {
	m, store := newTestModel(t)

	// mark Papers, try to put it into its own child
	press(m, "down", "down", "enter", "m", "down")
	submit(t, m, "p")
	if m.errMsg == "" {
		t.Fatal("expected move into descendant to be refused")
	}
	if m.status != "" {
		t.Errorf("expected no success status for a refused move, got %q", m.status)
	}

	// mark ML, put it at root
	press(m, "m", "up", "up", "up")
	submit(t, m, "p")
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.status != `moved "ML" to Root` {
		t.Errorf("unexpected status %q", m.status)
	}
	for _, f := range store.Export().Folders {
		if f.ID == 2 && f.ParentID != nil {
			t.Errorf("expected ML at root, got parent %d", *f.ParentID)
		}
	}
}

func TestBrowser_MoveAndRenameFile(t *testing.T) {
	m, store := newTestModel(t)
	press(m, "down", "down", "enter", "down", "tab")
	if m.focus != paneFiles {
		t.Fatal("expected files pane focused")
	}

	press(m, "r")
	m.input.SetValue("transformers.pdf")
	submit(t, m, "enter")

	press(m, "m", "up", "up")
	submit(t, m, "p") // Notes

	file := store.Export().Files[0]
	if file.Name != "transformers.pdf" || file.FolderID == nil || *file.FolderID != 3 {
		t.Errorf("unexpected file: %+v", file)
	}
}

func TestBrowser_SwitchScope(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("s"))
	run(t, m, cmd)

	rows := m.FolderView().Rows()
	if len(rows) != 1 || rows[0].Node.Folder.Name != "Team" {
		t.Errorf("expected shared folders only, got %d rows", len(rows))
	}
}

func TestBrowser_StaleScopeIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	private := m.FolderView().Snapshot()

	_, cmd := m.Update(keyMsg("s"))
	run(t, m, cmd)
	m.Update(snapshotMsg{snapshot: private})

	if m.FolderView().Snapshot().Scope != models.ScopeShared {
		t.Error("expected late private snapshot to be dropped")
	}
}

func TestBrowser_BusyIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.busy = true

	press(m, "down")
	if m.FolderView().SelectedFolderID() != nil {
		t.Error("expected navigation ignored while busy")
	}
}
