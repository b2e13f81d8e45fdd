// Package listings provides the saved property list for the TUI.
package listings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/confirm"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/generation"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/list"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// Mode tracks whether keys drive the list or the filter panel.
type Mode int

const (
	ModeList Mode = iota
	ModeFilters
)

// Status line texts.
const (
	msgLoadFailed     = "Failed to load properties. Press r to retry."
	msgFavoriteFailed = "Failed to update favorite."
	msgDeleteFailed   = "Failed to delete property."
)

// View is the property list view.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	properties driving.PropertyService
	images     driving.ImageService
	ctx        context.Context

	tracker  generation.Tracker
	criteria domain.FilterCriteria
	list     *list.PropertyList
	filters  *FilterPanel
	gate     *confirm.Gate
	mode     Mode

	// inFlight holds ids with a favorite toggle awaiting its response.
	inFlight map[string]bool

	loading bool
	err     error
	status  string

	detail   bool
	imageFor string
	image    *domain.PropertyImage
	imageErr error

	width  int
	height int
}

// NewView creates a new property list view. images may be nil, in which
// case the detail pane does not show image availability.
func NewView(s *styles.Styles, properties driving.PropertyService, images driving.ImageService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		properties: properties,
		images:     images,
		ctx:        context.Background(),
		list:       list.NewPropertyList(s),
		filters:    NewFilterPanel(s),
		gate:       confirm.New(s),
		inFlight:   make(map[string]bool),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Activate starts accepting responses and fetches with criteria.
func (v *View) Activate(criteria domain.FilterCriteria) tea.Cmd {
	v.tracker.Activate()
	return v.Load(criteria)
}

// Deactivate discards everything in flight.
func (v *View) Deactivate() {
	v.tracker.Deactivate()
	v.inFlight = make(map[string]bool)
	v.loading = false
}

// Load fetches the list for criteria.
func (v *View) Load(criteria domain.FilterCriteria) tea.Cmd {
	v.SetCriteria(criteria)
	return v.fetch()
}

// SetCriteria shows criteria without fetching.
func (v *View) SetCriteria(criteria domain.FilterCriteria) {
	v.criteria = criteria
	v.filters.SetCriteria(criteria)
}

// Capturing reports whether the view needs every key.
func (v *View) Capturing() bool {
	return v.gate.Open() || (v.mode == ModeFilters && v.filters.Editing())
}

// fetch returns a command that loads the list, superseding earlier fetches.
func (v *View) fetch() tea.Cmd {
	if v.properties == nil {
		return nil
	}
	v.loading = true
	tok := v.tracker.Next()
	ctx, svc, criteria := v.ctx, v.properties, v.criteria
	return func() tea.Msg {
		props, err := svc.List(ctx, criteria)
		return messages.PropertiesLoaded{Token: tok, Criteria: criteria, Properties: props, Err: err}
	}
}

// Update handles messages for the list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PropertiesLoaded:
		if !v.tracker.Current(msg.Token) {
			logger.Debug("dropping stale property list")
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			logger.Warn("list properties failed: %v", msg.Err)
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetProperties(msg.Properties)
		if v.detail {
			return v, v.loadImage()
		}
		return v, nil

	case messages.FavoriteToggled:
		delete(v.inFlight, msg.ID)
		if !v.tracker.Live(msg.Token) {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("toggle favorite %s failed: %v", msg.ID, msg.Err)
			v.status = msgFavoriteFailed
			return v, nil
		}
		v.status = ""
		return v, v.fetch()

	case messages.PropertyDeleted:
		if !v.tracker.Live(msg.Token) {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("delete %s failed: %v", msg.ID, msg.Err)
			v.status = msgDeleteFailed
			return v, nil
		}
		v.status = ""
		if v.imageFor == msg.ID {
			v.detail = false
		}
		return v, v.fetch()

	case messages.ImageLoaded:
		if !v.tracker.Live(msg.Token) || msg.PropertyID != v.imageFor {
			return v, nil
		}
		v.image = msg.Image
		v.imageErr = msg.Err
		if msg.Err != nil {
			logger.Debug("image info for %s: %v", msg.PropertyID, msg.Err)
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list or filter mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.gate.Open() {
		answered, confirmed := v.gate.Update(msg)
		if answered && confirmed {
			return v, v.deleteProperty(v.gate.Subject())
		}
		return v, nil
	}

	if v.mode == ModeFilters {
		cmd, leave := v.filters.Update(msg)
		if leave {
			v.mode = ModeList
		}
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down),
		key == "g", key == "G", key == "home", key == "end":
		before := v.list.Selected()
		v.list, _ = v.list.Update(msg)
		if v.detail && v.list.Selected() != before {
			return v, v.loadImage()
		}
	case keymap.Matches(key, v.keymap.Favorite):
		return v, v.toggleFavorite()
	case keymap.Matches(key, v.keymap.Delete):
		if p := v.list.SelectedProperty(); p != nil {
			v.gate.Ask(fmt.Sprintf("Delete %s?", describe(p)), p.ID)
		}
	case keymap.Matches(key, v.keymap.Reload):
		return v, v.fetch()
	case keymap.Matches(key, v.keymap.Select):
		if v.detail {
			v.detail = false
			return v, nil
		}
		if v.list.SelectedProperty() == nil {
			return v, nil
		}
		v.detail = true
		return v, v.loadImage()
	case keymap.Matches(key, v.keymap.Back):
		v.detail = false
	case keymap.Matches(key, v.keymap.Filters):
		v.mode = ModeFilters
	case keymap.Matches(key, v.keymap.ClearFilters):
		if v.criteria.Active() {
			return v, func() tea.Msg { return messages.FiltersChanged{} }
		}
	}
	return v, nil
}

// toggleFavorite flips the selected property's flag. A second toggle for
// the same id is ignored until the first one answers.
func (v *View) toggleFavorite() tea.Cmd {
	p := v.list.SelectedProperty()
	if p == nil || v.properties == nil {
		return nil
	}
	id := p.ID
	if v.inFlight[id] {
		logger.Debug("favorite toggle for %s already in flight", id)
		return nil
	}
	v.inFlight[id] = true
	tok := v.tracker.Side()
	ctx, svc := v.ctx, v.properties
	return func() tea.Msg {
		fav, err := svc.ToggleFavorite(ctx, id)
		return messages.FavoriteToggled{Token: tok, ID: id, IsFavorite: fav, Err: err}
	}
}

// deleteProperty removes a property the user has confirmed.
func (v *View) deleteProperty(id string) tea.Cmd {
	if v.properties == nil {
		return nil
	}
	tok := v.tracker.Side()
	ctx, svc := v.ctx, v.properties
	return func() tea.Msg {
		return messages.PropertyDeleted{Token: tok, ID: id, Err: svc.Delete(ctx, id)}
	}
}

// loadImage fetches image info for the selected property.
func (v *View) loadImage() tea.Cmd {
	p := v.list.SelectedProperty()
	if p == nil {
		v.imageFor = ""
		return nil
	}
	if v.imageFor != p.ID {
		v.image = nil
		v.imageErr = nil
	}
	v.imageFor = p.ID
	if v.images == nil {
		return nil
	}
	tok := v.tracker.Side()
	ctx, svc, id := v.ctx, v.images, p.ID
	return func() tea.Msg {
		img, err := svc.Fetch(ctx, id)
		return messages.ImageLoaded{Token: tok, PropertyID: id, Image: img, Err: err}
	}
}

func describe(p *domain.Property) string {
	name := p.Headline()
	if name == "" {
		name = "property"
	}
	if p.Location != "" {
		name += " in " + p.Location
	}
	return name
}

// View renders the list view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Properties (%s)", humanize.Comma(int64(v.list.Count())))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(Summary(v.criteria)))
	b.WriteString("\n\n")

	if v.mode == ModeFilters {
		b.WriteString(v.filters.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading && v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("Loading properties..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(msgLoadFailed))
		b.WriteString("\n")
	case v.list.IsEmpty():
		b.WriteString(v.styles.Subtitle.Render("No Properties Found"))
		b.WriteString("\n")
		if v.criteria.Active() {
			b.WriteString(v.styles.Muted.Render("Try adjusting your filters, or press c to clear them."))
		} else {
			b.WriteString(v.styles.Muted.Render("Start by adding your first property."))
		}
		b.WriteString("\n")
	default:
		b.WriteString(v.list.View())
		b.WriteString("\n")
		if v.detail {
			b.WriteString("\n")
			b.WriteString(v.renderDetail())
		}
	}

	if v.gate.Open() {
		b.WriteString("\n")
		b.WriteString(v.gate.View())
		b.WriteString("\n")
	}
	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderDetail() string {
	p := v.list.SelectedProperty()
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(describe(p)))
	b.WriteString(v.styles.Muted.Render("  " + p.ID))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(v.styles.Label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Price", p.Price)
	row("Carpet Area", p.CarpetArea)
	row("Furnishing", string(p.Furnishing))
	row("Floor", p.Floor)
	row("Building", p.BuildingName)
	row("Owner", strings.TrimSpace(p.OwnerName+" "+p.ContactNumber))
	row("Availability", p.Availability)
	row("Tags", strings.Join(p.Tags, ", "))
	row("Notes", p.NotesPreview())
	if created := p.Created(); !created.IsZero() {
		row("Added", humanize.Time(created))
	}
	row("Image", v.imageStatus(p))
	return v.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

func (v *View) imageStatus(p *domain.Property) string {
	switch {
	case v.images == nil:
		if p.HasImage() {
			return "available"
		}
		return "none"
	case v.imageFor != p.ID || (v.image == nil && v.imageErr == nil):
		return "checking..."
	case v.imageErr != nil:
		return "unavailable"
	case !v.image.HasImage:
		return "none"
	}
	name := v.image.Filename
	if name == "" {
		name = "available"
	}
	if v.image.HasThumbnail() {
		return name + " (thumbnail ready)"
	}
	return name
}

func (v *View) renderHelp() string {
	if v.gate.Open() {
		return v.styles.Help.Render("[y] delete  [n] keep")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] details  [s] favorite  [d] delete  [f] filters  [c] clear filters  [r] reload")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-10, 4))
}

// Properties returns the listed properties.
func (v *View) Properties() []domain.Property {
	return v.list.Properties()
}

// Criteria returns the criteria the view is showing.
func (v *View) Criteria() domain.FilterCriteria {
	return v.criteria
}

// Mode returns the key mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Loading reports whether a fetch is pending.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Status returns the last action failure, if any.
func (v *View) Status() string {
	return v.status
}

// DetailOpen reports whether the detail pane is shown.
func (v *View) DetailOpen() bool {
	return v.detail
}

// InFlight reports whether a favorite toggle for id is pending.
func (v *View) InFlight(id string) bool {
	return v.inFlight[id]
}
