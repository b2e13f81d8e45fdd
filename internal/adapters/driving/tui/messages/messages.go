// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/generation"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewInput is the message intake and review form.
	ViewInput ViewType = iota
	// ViewList is the property list with its filter panel.
	ViewList
	// ViewDashboard is the statistics dashboard.
	ViewDashboard
)

// AllViews returns the views in tab order.
func AllViews() []ViewType {
	return []ViewType{ViewInput, ViewList, ViewDashboard}
}

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewInput:
		return "input"
	case ViewList:
		return "list"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Title returns the tab label for the view.
func (v ViewType) Title() string {
	switch v {
	case ViewInput:
		return "Add Property"
	case ViewList:
		return "Properties"
	case ViewDashboard:
		return "Dashboard"
	default:
		return "Unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FiltersChanged carries new list criteria from the filter panel.
type FiltersChanged struct {
	Criteria domain.FilterCriteria
}

// PropertySaved signals the input form persisted a property.
type PropertySaved struct {
	ID string
}

// Extracted carries the result of an extraction request.
type Extracted struct {
	Token generation.Token
	Draft *domain.Draft
	Err   error
}

// Saved carries the result of a save request for one draft instance.
type Saved struct {
	Token   generation.Token
	DraftID string
	Outcome *driving.SaveOutcome
	Err     error
}

// ImageStaged carries a locally read and validated image.
type ImageStaged struct {
	Token generation.Token
	Path  string
	Image *domain.StagedImage
	Err   error
}

// ThumbnailLoaded reports the wait for a generated thumbnail.
type ThumbnailLoaded struct {
	DraftID    string
	PropertyID string
	Image      *domain.PropertyImage
	Err        error
}

// DraftExpired fires when the saved banner has been shown long enough.
type DraftExpired struct {
	DraftID string
}

// PropertiesLoaded carries the list for the criteria it was fetched with.
type PropertiesLoaded struct {
	Token      generation.Token
	Criteria   domain.FilterCriteria
	Properties []domain.Property
	Err        error
}

// FavoriteToggled reports a favorite toggle.
type FavoriteToggled struct {
	Token      generation.Token
	ID         string
	IsFavorite bool
	Err        error
}

// PropertyDeleted reports a delete.
type PropertyDeleted struct {
	Token generation.Token
	ID    string
	Err   error
}

// ImageLoaded carries image info for the detail pane.
type ImageLoaded struct {
	Token      generation.Token
	PropertyID string
	Image      *domain.PropertyImage
	Err        error
}

// StatsLoaded carries a dashboard snapshot.
type StatsLoaded struct {
	Token generation.Token
	Stats *domain.Stats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
