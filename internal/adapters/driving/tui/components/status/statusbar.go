// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateNotice  State = "notice"
	StateWarning State = "warning"
	StateError   State = "error"
)

// Bar displays the active view, the last notice and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	view    messages.ViewType
	state   State
	message string
	target  string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		view:   messages.ViewInput,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	prefix := s.view.Title()
	if s.target != "" {
		prefix += " · " + s.target
	}
	switch s.state {
	case StateNotice:
		return s.styles.Success.Render(fmt.Sprintf("%s  %s", prefix, s.message))
	case StateWarning:
		return s.styles.Warning.Render(fmt.Sprintf("%s  %s", prefix, s.message))
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("%s  Error: %s", prefix, s.message))
		}
		return s.styles.Error.Render(prefix + "  Error")
	case StateReady:
	}
	return s.styles.Muted.Render(prefix)
}

// renderRight renders keybinding hints for the active view.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.view {
	case messages.ViewInput:
		bindings = s.keymap.InputHelp()
	case messages.ViewList:
		bindings = s.keymap.ListHelp()
	case messages.ViewDashboard:
	}
	bindings = append(bindings, s.keymap.ShortHelp()...)

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetView sets the active view.
func (s *Bar) SetView(view messages.ViewType) {
	s.view = view
}

// ActiveView returns the active view.
func (s *Bar) ActiveView() messages.ViewType {
	return s.view
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the state and message together.
func (s *Bar) SetMessage(state State, message string) {
	s.state = state
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetTarget names the property service the TUI talks to.
func (s *Bar) SetTarget(target string) {
	s.target = target
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
