// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// PropertyList displays saved properties in a navigable list.
type PropertyList struct {
	properties []domain.Property
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewPropertyList creates a new property list component.
func NewPropertyList(s *styles.Styles) *PropertyList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PropertyList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *PropertyList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *PropertyList) Update(msg tea.Msg) (*PropertyList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			r.selected = max(len(r.properties)-1, 0)
		}
	}
	return r, nil
}

// View renders the visible window of properties.
func (r *PropertyList) View() string {
	if len(r.properties) == 0 {
		return ""
	}

	// Each property takes two lines.
	visibleCount := r.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.properties))

	lines := make([]string, 0, (end-start)*2+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderProperty(i, &r.properties[i]))
	}
	if len(r.properties) > visibleCount {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(r.properties))))
	}

	return strings.Join(lines, "\n")
}

// renderProperty formats one property as a headline and a detail line.
func (r *PropertyList) renderProperty(index int, p *domain.Property) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	star := "☆"
	if p.IsFavorite {
		star = "★"
	}

	parts := []string{orUnknown(p.Headline())}
	if p.TransactionType != "" {
		parts = append(parts, string(p.TransactionType))
	}
	if p.Location != "" {
		parts = append(parts, p.Location)
	}
	headline := truncate(strings.Join(parts, " · "), r.width-24)

	price := p.Price
	if price == "" {
		price = "N/A"
	}

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%s %-*s  %s", indicator, star, r.width-24, headline, price))
	} else {
		marker := r.styles.Normal.Render(star)
		if p.IsFavorite {
			marker = r.styles.Favorite.Render(star)
		}
		titleLine = r.styles.Normal.Render(indicator) + marker + " " +
			r.styles.Normal.Render(fmt.Sprintf("%-*s  ", r.width-24, headline)) +
			r.styles.Muted.Render(price)
	}

	var detail []string
	if len(p.Tags) > 0 {
		detail = append(detail, "#"+strings.Join(p.Tags, " #"))
	}
	if notes := p.NotesPreview(); notes != "" {
		detail = append(detail, notes)
	}
	if p.HasImage() {
		detail = append(detail, "[image]")
	}
	detailLine := r.styles.Muted.Render("    " + truncate(strings.Join(detail, "  "), r.width-6))

	return titleLine + "\n" + detailLine
}

func orUnknown(s string) string {
	if s == "" {
		return "Property"
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetProperties replaces the list, keeping the selection on the same
// property when it is still present.
func (r *PropertyList) SetProperties(properties []domain.Property) {
	var keep string
	if p := r.SelectedProperty(); p != nil {
		keep = p.ID
	}
	r.properties = properties
	r.selected = 0
	for i := range properties {
		if properties[i].ID == keep {
			r.selected = i
			break
		}
	}
}

// Properties returns the current properties.
func (r *PropertyList) Properties() []domain.Property {
	return r.properties
}

// Selected returns the index of the selected property.
func (r *PropertyList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *PropertyList) SetSelected(index int) {
	if index >= 0 && index < len(r.properties) {
		r.selected = index
	}
}

// SelectedProperty returns the currently selected property, or nil if none.
func (r *PropertyList) SelectedProperty() *domain.Property {
	if len(r.properties) == 0 || r.selected < 0 || r.selected >= len(r.properties) {
		return nil
	}
	return &r.properties[r.selected]
}

// MoveUp moves selection up.
func (r *PropertyList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *PropertyList) MoveDown() {
	if r.selected < len(r.properties)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *PropertyList) SetDimensions(width, height int) {
	r.width = max(width, 40)
	r.height = height
}

// Count returns the number of properties.
func (r *PropertyList) Count() int {
	return len(r.properties)
}

// IsEmpty returns whether the list is empty.
func (r *PropertyList) IsEmpty() bool {
	return len(r.properties) == 0
}
