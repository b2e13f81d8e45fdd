// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// NextView and PrevView cycle the views.
	NextView key.Binding
	PrevView key.Binding

	// InputView, ListView and DashboardView jump straight to a view.
	InputView     key.Binding
	ListView      key.Binding
	DashboardView key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Left and Right cycle the options of a select.
	Left  key.Binding
	Right key.Binding

	// Select confirms a selection or starts editing.
	Select key.Binding

	// Back leaves the current editor or pane.
	Back key.Binding

	// Submit extracts a message or saves the reviewed draft.
	Submit key.Binding

	// NewDraft discards the form and starts over.
	NewDraft key.Binding

	// Favorite toggles the selected property's favorite flag.
	Favorite key.Binding

	// Delete removes the selected property after confirmation.
	Delete key.Binding

	// Reload refetches the current data.
	Reload key.Binding

	// Filters focuses the filter panel.
	Filters key.Binding

	// ClearFilters resets every filter.
	ClearFilters key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		InputView: key.NewBinding(
			key.WithKeys("1", "alt+1"),
			key.WithHelp("1", "add"),
		),
		ListView: key.NewBinding(
			key.WithKeys("2", "alt+2"),
			key.WithHelp("2", "properties"),
		),
		DashboardView: key.NewBinding(
			key.WithKeys("3", "alt+3"),
			key.WithHelp("3", "dashboard"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→/l", "next option"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		NewDraft: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Quit}
}

// InputHelp returns keybindings for the input form.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Select, k.Back, k.NewDraft}
}

// ListHelp returns keybindings for the property list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Favorite, k.Delete, k.Filters, k.Reload}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back},
		{k.Submit, k.NewDraft, k.Favorite, k.Delete, k.Reload, k.Filters, k.ClearFilters},
		{k.NextView, k.PrevView, k.InputView, k.ListView, k.DashboardView, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
