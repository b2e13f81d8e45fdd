// Package confirm provides a yes/no gate for destructive actions.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
)

// Gate asks a question about one subject and reports the answer.
// While open it consumes every key.
type Gate struct {
	styles   *styles.Styles
	question string
	subject  string
	open     bool
}

// New creates a closed gate.
func New(s *styles.Styles) *Gate {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Gate{styles: s}
}

// Ask opens the gate for subject.
func (g *Gate) Ask(question, subject string) {
	g.question = question
	g.subject = subject
	g.open = true
}

// Open reports whether the gate is waiting for an answer.
func (g *Gate) Open() bool {
	return g.open
}

// Subject returns what the question is about.
func (g *Gate) Subject() string {
	return g.subject
}

// Update handles a key while the gate is open. answered is false when the
// key was neither a yes nor a no.
func (g *Gate) Update(msg tea.KeyMsg) (answered, confirmed bool) {
	if !g.open {
		return false, false
	}
	switch msg.String() {
	case "y", "Y", "enter":
		g.open = false
		return true, true
	case "n", "N", "esc":
		g.open = false
		return true, false
	}
	return false, false
}

// View renders the question.
func (g *Gate) View() string {
	if !g.open {
		return ""
	}
	return g.styles.Warning.Render(fmt.Sprintf("%s [y/N]", g.question))
}
