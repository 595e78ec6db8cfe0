package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Focus    key.Binding
	New      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Mark     key.Binding
	Put      key.Binding
	Scope    key.Binding
	Reload   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/close")),
		Expand:   key.NewBinding(key.WithKeys("right", "l")),
		Collapse: key.NewBinding(key.WithKeys("left", "h")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "folders/files")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Mark:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark for move")),
		Put:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "move here")),
		Scope:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "private/shared")),
		Reload:   key.NewBinding(key.WithKeys("ctrl+r", "g"), key.WithHelp("g", "reload")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Focus, k.New, k.Rename, k.Delete, k.Mark, k.Put, k.Scope, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Focus},
		{k.New, k.Rename, k.Delete, k.Mark, k.Put},
		{k.Scope, k.Reload, k.Quit},
	}
}
