// Package tui предоставляет KeyMap для TUI.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap определяет клавиатурные сокращения для TUI.
type KeyMap struct {
	Quit        key.Binding
	Scan        key.Binding
	Generate    key.Binding
	SaveConfig  key.Binding
	EditPaths   key.Binding
	ToggleTheme key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleHelp  key.Binding
}

// ShortHelp реализует help.KeyMap интерфейс.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Scan, km.Generate, km.EditPaths, km.SaveConfig, km.ToggleHelp, km.Quit}
}

// FullHelp реализует help.KeyMap интерфейс.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Scan, km.Generate, km.EditPaths, km.SaveConfig},
		{km.ScrollUp, km.ScrollDown, km.ToggleTheme},
		{km.ToggleHelp, km.Quit},
	}
}

// DefaultKeyMap возвращает дефолтный KeyMap.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Scan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan mods"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "create ini"),
		),
		SaveConfig: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save settings"),
		),
		EditPaths: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit paths"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "dark/light"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "scroll down"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// FormKeyMap - клавиши формы редактирования путей.
// Остальные клавиши уходят в поле ввода.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Commit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// ShortHelp реализует help.KeyMap интерфейс.
func (km FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Next, km.Prev, km.Commit, km.Cancel}
}

// FullHelp реализует help.KeyMap интерфейс.
func (km FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Next, km.Prev}, {km.Commit, km.Cancel, km.Quit}}
}

// DefaultFormKeyMap возвращает дефолтный FormKeyMap.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
