// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes and high confidence.
	Success lipgloss.Color

	// Warning indicates caution and medium confidence.
	Warning lipgloss.Color

	// Error indicates problems and low confidence.
	Error lipgloss.Color

	// Favorite marks starred listings.
	Favorite lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#4F46E5"), // Indigo
		Secondary:  lipgloss.Color("#0EA5E9"), // Sky
		Foreground: lipgloss.Color("#E2E8F0"), // Slate 200
		Muted:      lipgloss.Color("#64748B"), // Slate 500
		Success:    lipgloss.Color("#22C55E"), // Green
		Warning:    lipgloss.Color("#EAB308"), // Yellow
		Error:      lipgloss.Color("#EF4444"), // Red
		Favorite:   lipgloss.Color("#F59E0B"), // Amber
		Border:     lipgloss.Color("#334155"), // Slate 700
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Favorite style for the star marker.
	Favorite lipgloss.Style

	// Label style for form field names.
	Label lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// Tab and ActiveTab style the view selector.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Card style for dashboard stat cards.
	Card lipgloss.Style

	// Bar style for distribution bars.
	Bar lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Favorite: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Favorite),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(16),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 2),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			Width(18),

		Bar: lipgloss.NewStyle().
			Foreground(theme.Primary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#0F172A")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Confidence returns the badge style for an extraction score.
func (s *Styles) Confidence(level domain.ConfidenceLevel) lipgloss.Style {
	switch level {
	case domain.ConfidenceHigh:
		return s.Success
	case domain.ConfidenceMedium:
		return s.Warning
	default:
		return s.Error
	}
}
