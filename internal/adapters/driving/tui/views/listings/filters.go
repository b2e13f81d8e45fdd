package listings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/input"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

var filterLabels = map[string]string{
	domain.FilterPropertyType:    "Type",
	domain.FilterTransactionType: "Transaction",
	domain.FilterBHK:             "BHK",
	domain.FilterLocation:        "Location",
	domain.FilterSearch:          "Search",
}

// filterOptions returns the choices of a select filter, or nil for a
// free-text filter.
func filterOptions(key string) []string {
	switch key {
	case domain.FilterPropertyType:
		return domain.FieldOptions(domain.FieldPropertyType)
	case domain.FilterTransactionType:
		return domain.FieldOptions(domain.FieldTransactionType)
	case domain.FilterBHK:
		return domain.BHKOptions()
	default:
		return nil
	}
}

// FilterPanel edits the list criteria. It never fetches; every change is
// emitted as a FiltersChanged message for the coordinator.
type FilterPanel struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	criteria domain.FilterCriteria
	cursor   int
	editing  bool
	editor   *input.Field
}

// NewFilterPanel creates an empty filter panel.
func NewFilterPanel(s *styles.Styles) *FilterPanel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &FilterPanel{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		editor: input.NewField(s, "", "type and press enter"),
	}
}

// SetCriteria shows c as the current filters.
func (p *FilterPanel) SetCriteria(c domain.FilterCriteria) {
	p.criteria = c
}

// Criteria returns the filters as last shown.
func (p *FilterPanel) Criteria() domain.FilterCriteria {
	return p.criteria
}

// Editing reports whether a text filter is being typed.
func (p *FilterPanel) Editing() bool {
	return p.editing
}

// Cursor returns the selected filter row.
func (p *FilterPanel) Cursor() int {
	return p.cursor
}

// Update handles a key. leave is true when the user backs out of the panel.
func (p *FilterPanel) Update(msg tea.KeyMsg) (cmd tea.Cmd, leave bool) {
	keys := domain.FilterKeys()
	if p.editing {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(p.editor.Value())
			p.stopEditing()
			return p.change(keys[p.cursor], value), false
		case "esc":
			p.stopEditing()
			return nil, false
		}
		p.editor, cmd = p.editor.Update(msg)
		return cmd, false
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, p.keymap.Back), keymap.Matches(key, p.keymap.Filters):
		return nil, true
	case keymap.Matches(key, p.keymap.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case keymap.Matches(key, p.keymap.Down):
		if p.cursor < len(keys)-1 {
			p.cursor++
		}
	case keymap.Matches(key, p.keymap.Left):
		return p.cycle(keys[p.cursor], -1), false
	case keymap.Matches(key, p.keymap.Right):
		return p.cycle(keys[p.cursor], 1), false
	case keymap.Matches(key, p.keymap.Select):
		filter := keys[p.cursor]
		if filterOptions(filter) != nil {
			return p.cycle(filter, 1), false
		}
		p.editor.SetLabel(filterLabels[filter])
		p.editor.SetValue(p.criteria.Get(filter))
		p.editing = true
		return p.editor.Focus(), false
	case keymap.Matches(key, p.keymap.ClearFilters):
		if !p.criteria.Active() {
			return nil, false
		}
		return p.emit(domain.FilterCriteria{}), false
	}
	return nil, false
}

func (p *FilterPanel) stopEditing() {
	p.editing = false
	p.editor.Blur()
}

// cycle steps a select filter through "all" and its options.
func (p *FilterPanel) cycle(filter string, dir int) tea.Cmd {
	opts := filterOptions(filter)
	if opts == nil {
		return nil
	}
	opts = append([]string{""}, opts...)
	current := 0
	for i, o := range opts {
		if o == p.criteria.Get(filter) {
			current = i
			break
		}
	}
	return p.change(filter, opts[(current+dir+len(opts))%len(opts)])
}

func (p *FilterPanel) change(filter, value string) tea.Cmd {
	next := p.criteria.With(filter, value)
	if next == p.criteria {
		return nil
	}
	return p.emit(next)
}

func (p *FilterPanel) emit(next domain.FilterCriteria) tea.Cmd {
	p.criteria = next
	return func() tea.Msg { return messages.FiltersChanged{Criteria: next} }
}

// View renders one row per filter.
func (p *FilterPanel) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Subtitle.Render("Filters"))
	b.WriteString("\n")
	for i, filter := range domain.FilterKeys() {
		indicator := "  "
		if i == p.cursor {
			indicator = "> "
		}
		if p.editing && i == p.cursor {
			b.WriteString(indicator + p.editor.View())
			b.WriteString("\n")
			continue
		}
		value := p.criteria.Get(filter)
		display := value
		switch {
		case filterOptions(filter) != nil && value == "":
			display = "‹ All ›"
		case filterOptions(filter) != nil:
			display = "‹ " + value + " ›"
		case value == "":
			display = "-"
		}
		b.WriteString(fmt.Sprintf("%s%s%s\n", indicator, p.styles.Label.Render(filterLabels[filter]), display))
	}
	b.WriteString(p.styles.Help.Render("[↑/↓] filter  [←/→] option  [enter] edit  [c] clear all  [esc] done"))
	return b.String()
}

// Summary renders the active filters on one line.
func Summary(c domain.FilterCriteria) string {
	if !c.Active() {
		return "Filters: none"
	}
	parts := make([]string, 0, len(domain.FilterKeys()))
	for _, filter := range domain.FilterKeys() {
		if v := c.Get(filter); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", strings.ToLower(filterLabels[filter]), v))
		}
	}
	return "Filters: " + strings.Join(parts, " · ")
}
