package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGate_ClosedIgnoresKeys(t *testing.T) {
	g := New(nil)

	answered, confirmed := g.Update(runeKey('y'))

	assert.False(t, answered)
	assert.False(t, confirmed)
	assert.Empty(t, g.View())
}

func TestGate_Answers(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		answered  bool
		confirmed bool
	}{
		{"y confirms", runeKey('y'), true, true},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, true, true},
		{"n declines", runeKey('n'), true, false},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"other keys wait", runeKey('x'), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			g.Ask("Delete this property?", "p1")

			answered, confirmed := g.Update(tt.key)

			assert.Equal(t, tt.answered, answered)
			assert.Equal(t, tt.confirmed, confirmed)
			assert.Equal(t, !tt.answered, g.Open())
			assert.Equal(t, "p1", g.Subject())
		})
	}
}

func TestGate_View(t *testing.T) {
	g := New(nil)
	g.Ask("Delete this property?", "p1")

	assert.Contains(t, g.View(), "Delete this property? [y/N]")
}
