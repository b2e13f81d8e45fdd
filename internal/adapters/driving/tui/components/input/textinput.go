// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label. It starts blurred.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewField creates a labelled single-line input.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 40

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Keys are ignored while blurred.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input side by side.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// SetLabel changes the field label.
func (f *Field) SetLabel(label string) {
	f.label = label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
	f.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label and padding
	inputWidth := width - 22
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
