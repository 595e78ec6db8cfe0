package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	docsys "docshelf/internal/service/docsystem"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

type inputAction int

const (
	actionCreateFolder inputAction = iota
	actionRenameFolder
	actionRenameFile
)

type pane int

const (
	paneFolders pane = iota
	paneFiles
)

// moveSource is the folder or file marked with "m".
type moveSource struct {
	kind docsys.MoveKind
	id   int64
	name string
}

// Model is the interactive folder browser. It owns one FolderView and only
// touches it from Update; storage calls run as commands against a cmdHost.
type Model struct {
	ctx     context.Context
	storage docsysRepo.Storage
	builder *docsys.TreeBuilder
	view    *docsys.FolderView
	logger  *slog.Logger

	keys  keyMap
	help  help.Model
	input textinput.Model

	mode       mode
	action     inputAction
	focus      pane
	cursor     int // 0 is the root row, i+1 is view.Rows()[i]
	fileCursor int
	marked     *moveSource
	pending    func() tea.Cmd
	prompt     string

	busy   bool
	loaded bool
	status string
	errMsg string
	width  int
	height int
}

// New creates a browser over storage showing scope.
func New(ctx context.Context, storage docsysRepo.Storage, builder *docsys.TreeBuilder, scope models.Scope, logger *slog.Logger) *Model {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 40

	m := &Model{
		ctx:     ctx,
		storage: storage,
		builder: builder,
		logger:  logger,
		keys:    defaultKeys(),
		help:    help.New(),
		input:   ti,
	}
	m.view = m.newView(scope)
	return m
}

func (m *Model) newView(scope models.Scope) *docsys.FolderView {
	loader := docsys.NewLoader(m.storage, m.builder, scope, m.logger)
	return docsys.NewFolderView(loader, m.logger)
}

// FolderView returns the folder view the browser drives.
func (m *Model) FolderView() *docsys.FolderView {
	return m.view
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	m.busy = true
	loader := m.view.Loader()
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := loader.Load(ctx)
		return snapshotMsg{snapshot: snap, err: err}
	}
}

// mutate runs fn in a command against a host seeded from the current view.
func (m *Model) mutate(op string, fn func(ctx context.Context, svc *docsys.MutationService) (string, error)) tea.Cmd {
	m.busy = true
	m.errMsg = ""
	m.status = ""
	host := newCmdHost(m.view)
	svc := docsys.NewMutationService(m.storage, host, m.logger)
	ctx := m.ctx
	return func() tea.Msg {
		status, err := fn(ctx, svc)
		return host.result(op, status, err)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width/2)
		return m, nil

	case snapshotMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "load failed: " + errorText(msg.err)
			return m, nil
		}
		if m.applies(msg.snapshot) {
			m.view.Apply(msg.snapshot)
			m.loaded = true
			m.syncCursor()
		}
		return m, nil

	case mutationMsg:
		m.busy = false
		if msg.selectionReset {
			m.view.SelectFolder(nil)
		}
		if m.applies(msg.snapshot) {
			m.view.Apply(msg.snapshot)
		}
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			m.logger.Debug("browser mutation failed", "op", msg.op, "error", msg.err)
		} else {
			m.status = msg.status
		}
		m.syncCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// applies reports whether snap belongs to the scope currently shown.
func (m *Model) applies(snap *docsys.Snapshot) bool {
	return snap != nil && snap.Scope == m.view.Loader().Scope()
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.view.Close()
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneFolders && len(m.view.SelectedFiles()) > 0 {
			m.focus = paneFiles
		} else {
			m.focus = paneFolders
		}
	case key.Matches(msg, m.keys.Toggle):
		if node := m.cursorNode(); node != nil && m.focus == paneFolders {
			m.view.Toggle(node.ID())
		}
	case key.Matches(msg, m.keys.Expand):
		if node := m.cursorNode(); node != nil {
			m.view.Expansion().Expand(node.ID())
		}
	case key.Matches(msg, m.keys.Collapse):
		if node := m.cursorNode(); node != nil {
			m.view.Expansion().Collapse(node.ID())
		}
	case key.Matches(msg, m.keys.New):
		return m, m.startInput(actionCreateFolder, "")
	case key.Matches(msg, m.keys.Rename):
		if m.focus == paneFiles {
			if file, ok := m.cursorFile(); ok {
				return m, m.startInput(actionRenameFile, file.Name)
			}
		} else if node := m.cursorNode(); node != nil {
			return m, m.startInput(actionRenameFolder, node.Folder.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete()
	case key.Matches(msg, m.keys.Mark):
		m.mark()
	case key.Matches(msg, m.keys.Put):
		return m, m.put()
	case key.Matches(msg, m.keys.Scope):
		return m, m.switchScope()
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Cancel):
		m.marked = nil
		m.status = ""
	}
	m.syncCursor()
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.input.Blur()
		return m, m.submitInput(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	pending := m.pending
	m.pending = nil
	m.prompt = ""
	if strings.EqualFold(msg.String(), "y") && pending != nil {
		return m, pending()
	}
	m.status = "cancelled"
	return m, nil
}

func (m *Model) startInput(action inputAction, value string) tea.Cmd {
	m.mode = modeInput
	m.action = action
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch action {
	case actionCreateFolder:
		m.input.Prompt = "New folder in " + m.view.DisplayPath(m.view.SelectedFolderID()) + ": "
	case actionRenameFolder:
		m.input.Prompt = "Rename folder: "
	case actionRenameFile:
		m.input.Prompt = "Rename file: "
	}
	return m.input.Focus()
}

func (m *Model) submitInput(value string) tea.Cmd {
	switch m.action {
	case actionCreateFolder:
		parent := m.view.SelectedFolderID()
		return m.mutate("createFolder", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
			folder, err := svc.CreateFolder(ctx, value, parent)
			if folder == nil {
				return "", err
			}
			return fmt.Sprintf("created %q", folder.Name), err
		})

	case actionRenameFolder:
		node := m.cursorNode()
		if node == nil {
			return nil
		}
		id := node.ID()
		return m.mutate("renameFolder", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
			folder, err := svc.RenameFolder(ctx, id, value)
			if folder == nil {
				return "", err
			}
			return fmt.Sprintf("renamed to %q", folder.Name), err
		})

	case actionRenameFile:
		file, ok := m.cursorFile()
		if !ok {
			return nil
		}
		return m.mutate("updateFile", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
			renamed, err := svc.RenameFile(ctx, file.ID, value)
			if renamed == nil {
				return "", err
			}
			return fmt.Sprintf("renamed to %q", renamed.Name), err
		})
	}
	return nil
}

func (m *Model) confirmDelete() {
	if m.focus == paneFiles {
		file, ok := m.cursorFile()
		if !ok {
			return
		}
		m.prompt = fmt.Sprintf("Delete file %q? (y/n)", file.Name)
		m.pending = func() tea.Cmd {
			return m.mutate("deleteFile", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
				return fmt.Sprintf("deleted %q", file.Name), svc.DeleteFile(ctx, file.ID)
			})
		}
	} else {
		node := m.cursorNode()
		if node == nil {
			return
		}
		folder := node.Folder
		m.prompt = fmt.Sprintf("Delete folder %q and everything in it? (y/n)", folder.Name)
		m.pending = func() tea.Cmd {
			return m.mutate("deleteFolder", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
				return fmt.Sprintf("deleted %q", folder.Name), svc.DeleteFolder(ctx, folder.ID)
			})
		}
	}
	m.mode = modeConfirm
}

func (m *Model) mark() {
	if m.focus == paneFiles {
		if file, ok := m.cursorFile(); ok {
			m.marked = &moveSource{kind: docsys.MoveFile, id: file.ID, name: file.Name}
		}
	} else if node := m.cursorNode(); node != nil {
		m.marked = &moveSource{kind: docsys.MoveFolder, id: node.ID(), name: node.Folder.Name}
	}
	if m.marked != nil {
		m.focus = paneFolders
		m.status = fmt.Sprintf("moving %q: select a destination and press p", m.marked.name)
	}
}

// put moves the marked item into the folder under the cursor.
func (m *Model) put() tea.Cmd {
	if m.marked == nil {
		m.status = "nothing marked"
		return nil
	}
	source := *m.marked
	m.marked = nil

	var dest *int64
	if node := m.cursorNode(); node != nil {
		id := node.ID()
		dest = &id
	}
	// a move never changes the destination's own path
	destPath := m.view.DisplayPath(dest)
	moved := func(name string) string {
		return fmt.Sprintf("moved %q to %s", name, destPath)
	}

	if source.kind == docsys.MoveFolder {
		return m.mutate("moveFolder", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
			folder, err := svc.MoveFolder(ctx, source.id, dest)
			if folder == nil {
				return "", err
			}
			return moved(folder.Name), err
		})
	}
	return m.mutate("updateFile", func(ctx context.Context, svc *docsys.MutationService) (string, error) {
		file, err := svc.MoveFile(ctx, source.id, dest)
		if file == nil {
			return "", err
		}
		return moved(file.Name), err
	})
}

func (m *Model) switchScope() tea.Cmd {
	next := models.ScopeShared
	if m.view.Loader().Scope() == models.ScopeShared {
		next = models.ScopePrivate
	}
	m.view.Close()
	m.view = m.newView(next)
	m.cursor, m.fileCursor = 0, 0
	m.focus = paneFolders
	m.marked = nil
	m.loaded = false
	return m.load()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneFiles {
		m.fileCursor = clamp(m.fileCursor+delta, 0, len(m.view.SelectedFiles())-1)
		return
	}

	rows := m.view.Rows()
	m.cursor = clamp(m.cursor+delta, 0, len(rows))
	if m.cursor == 0 {
		m.view.SelectFolder(nil)
	} else {
		id := rows[m.cursor-1].Node.ID()
		m.view.SelectFolder(&id)
	}
	m.fileCursor = 0
}

// syncCursor puts the cursor back on the selected folder after a reload.
func (m *Model) syncCursor() {
	rows := m.view.Rows()
	m.cursor = 0
	if selected := m.view.SelectedFolderID(); selected != nil {
		for i, row := range rows {
			if row.Node.ID() == *selected {
				m.cursor = i + 1
				break
			}
		}
	}

	files := m.view.SelectedFiles()
	if len(files) == 0 {
		m.focus = paneFolders
	}
	m.fileCursor = clamp(m.fileCursor, 0, len(files)-1)
}

func (m *Model) cursorNode() *models.FolderTreeNode {
	rows := m.view.Rows()
	if m.cursor <= 0 || m.cursor > len(rows) {
		return nil
	}
	return rows[m.cursor-1].Node
}

func (m *Model) cursorFile() (models.File, bool) {
	files := m.view.SelectedFiles()
	if m.fileCursor < 0 || m.fileCursor >= len(files) {
		return models.File{}, false
	}
	return files[m.fileCursor], true
}

func (m *Model) View() string {
	scope := m.view.Loader().Scope()
	header := titleStyle.Render("docshelf") + mutedStyle.Render(" · "+string(scope))

	if !m.loaded {
		body := mutedStyle.Render("loading...")
		if m.errMsg != "" {
			body = errorStyle.Render(m.errMsg)
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	folders := m.renderFolders()
	files := m.renderFiles()
	if m.focus == paneFolders {
		folders = focusedPane.Render(folders)
		files = paneStyle.Render(files)
	} else {
		folders = paneStyle.Render(folders)
		files = focusedPane.Render(files)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, folders, files)

	lines := []string{
		header,
		body,
		mutedStyle.Render("Path: ") + m.view.DisplayPath(m.view.SelectedFolderID()),
	}

	switch m.mode {
	case modeInput:
		lines = append(lines, m.input.View())
	case modeConfirm:
		lines = append(lines, m.prompt)
	}

	switch {
	case m.busy:
		lines = append(lines, mutedStyle.Render("working..."))
	case m.errMsg != "":
		lines = append(lines, errorStyle.Render(m.errMsg))
	case m.status != "":
		lines = append(lines, m.status)
	}

	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderFolders() string {
	rows := m.view.Rows()
	lines := make([]string, 0, len(rows)+1)

	root := folderStyle.Render("/ (root)")
	if m.cursor == 0 {
		root = cursorStyle.Render("> / (root)")
	}
	lines = append(lines, root)

	for i, row := range rows {
		arrow := " "
		if row.Node.HasChildren() {
			arrow = arrowRight
			if row.Expanded {
				arrow = arrowDown
			}
		}
		name := row.Node.Folder.Name
		if m.marked != nil && m.marked.kind == docsys.MoveFolder && m.marked.id == row.Node.ID() {
			name = markedStyle.Render(name)
		}
		line := strings.Repeat("  ", row.Depth+1) + arrow + " " + name
		if m.cursor == i+1 {
			lines = append(lines, cursorStyle.Render(">"+line[1:]))
		} else {
			lines = append(lines, folderStyle.Render(line))
		}
	}

	return strings.Join(m.window(lines, m.cursor), "\n")
}

func (m *Model) renderFiles() string {
	files := m.view.SelectedFiles()
	if len(files) == 0 {
		return mutedStyle.Render("no files")
	}

	lines := make([]string, 0, len(files))
	for i, f := range files {
		name := f.Name
		if m.marked != nil && m.marked.kind == docsys.MoveFile && m.marked.id == f.ID {
			name = markedStyle.Render(name)
		}
		if m.focus == paneFiles && i == m.fileCursor {
			lines = append(lines, cursorStyle.Render("> "+name))
		} else {
			lines = append(lines, fileStyle.Render("  "+name))
		}
	}
	return strings.Join(m.window(lines, m.fileCursor), "\n")
}

// window clips lines to the space left by the chrome, keeping focus visible.
func (m *Model) window(lines []string, focus int) []string {
	if m.height <= 0 {
		return lines
	}
	size := max(3, m.height-9)
	if len(lines) <= size {
		return lines
	}
	start := clamp(focus-size/2, 0, len(lines)-size)
	return lines[start : start+size]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
