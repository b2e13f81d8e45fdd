package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/status"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/views/dashboard"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/views/intake"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/views/listings"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// App is the root model. It owns the filter criteria and the active view,
// and routes every asynchronous result to the view that requested it.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	intakeView    *intake.View
	listingsView  *listings.View
	dashboardView *dashboard.View

	currentView messages.ViewType
	criteria    domain.FilterCriteria

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)

	var bannerDelay time.Duration
	if ports.Settings != nil {
		settings, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("loading settings for tui: %v", err)
		} else {
			bannerDelay = settings.UI.SavedBannerDelay
			bar.SetTarget(settings.API.BaseURL)
		}
	}

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		bar:           bar,
		intakeView:    intake.NewView(s, ports.Properties, ports.Images, bannerDelay),
		listingsView:  listings.NewView(s, ports.Properties, ports.Images),
		dashboardView: dashboard.NewView(s, ports.Properties),
		currentView:   messages.ViewInput,
	}, nil
}

// WithContext sets the context passed to every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.intakeView.WithContext(ctx)
	a.listingsView.WithContext(ctx)
	a.dashboardView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("EstateFlow"),
		a.intakeView.Init(),
		a.intakeView.Activate(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.FiltersChanged:
		a.criteria = msg.Criteria
		if a.currentView == messages.ViewList {
			return a, a.listingsView.Load(a.criteria)
		}
		a.listingsView.SetCriteria(a.criteria)
		return a, nil

	case messages.PropertySaved:
		a.bar.SetMessage(status.StateNotice, "Saved "+msg.ID)
		if a.currentView == messages.ViewList {
			return a, a.listingsView.Load(a.criteria)
		}
		return a, nil

	case messages.Extracted, messages.Saved, messages.ImageStaged,
		messages.ThumbnailLoaded, messages.DraftExpired:
		a.intakeView, cmd = a.intakeView.Update(msg)
		return a, cmd

	case messages.FavoriteToggled:
		if msg.Err == nil {
			if msg.IsFavorite {
				a.bar.SetMessage(status.StateNotice, "Added to favorites")
			} else {
				a.bar.SetMessage(status.StateNotice, "Removed from favorites")
			}
		}
		a.listingsView, cmd = a.listingsView.Update(msg)
		return a, cmd

	case messages.PropertyDeleted:
		if msg.Err == nil {
			a.bar.SetMessage(status.StateNotice, "Property deleted")
		}
		a.listingsView, cmd = a.listingsView.Update(msg)
		return a, cmd

	case messages.PropertiesLoaded, messages.ImageLoaded:
		a.listingsView, cmd = a.listingsView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.bar.SetMessage(status.StateError, domain.UserMessage(msg.Err, "Something went wrong"))
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other component ticks go to the active view.
	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// alt+digit switches even while a view is capturing text.
	if msg.Alt {
		if view, ok := a.viewForKey(key); ok {
			return a, a.switchTo(view)
		}
	}

	if a.capturing() {
		return a, a.forward(msg)
	}

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(key, a.keymap.NextView):
		return a, a.switchTo(a.step(1))
	case keymap.Matches(key, a.keymap.PrevView):
		return a, a.switchTo(a.step(-1))
	}
	if view, ok := a.viewForKey(key); ok {
		return a, a.switchTo(view)
	}

	return a, a.forward(msg)
}

func (a *App) viewForKey(key string) (messages.ViewType, bool) {
	switch {
	case keymap.Matches(key, a.keymap.InputView):
		return messages.ViewInput, true
	case keymap.Matches(key, a.keymap.ListView):
		return messages.ViewList, true
	case keymap.Matches(key, a.keymap.DashboardView):
		return messages.ViewDashboard, true
	}
	return 0, false
}

func (a *App) step(dir int) messages.ViewType {
	views := messages.AllViews()
	for i, v := range views {
		if v == a.currentView {
			return views[(i+dir+len(views))%len(views)]
		}
	}
	return messages.ViewInput
}

func (a *App) capturing() bool {
	switch a.currentView {
	case messages.ViewInput:
		return a.intakeView.Capturing()
	case messages.ViewList:
		return a.listingsView.Capturing()
	}
	return false
}

// switchTo deactivates the current view and activates view. Responses
// requested by the old view are dropped from here on.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if view == a.currentView {
		return nil
	}

	switch a.currentView {
	case messages.ViewInput:
		a.intakeView.Deactivate()
	case messages.ViewList:
		a.listingsView.Deactivate()
	case messages.ViewDashboard:
		a.dashboardView.Deactivate()
	}

	a.currentView = view
	a.bar.SetView(view)
	a.bar.Clear()

	switch view {
	case messages.ViewInput:
		return a.intakeView.Activate()
	case messages.ViewList:
		return a.listingsView.Activate(a.criteria)
	case messages.ViewDashboard:
		return a.dashboardView.Activate()
	}
	return nil
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewInput:
		a.intakeView, cmd = a.intakeView.Update(msg)
	case messages.ViewList:
		a.listingsView, cmd = a.listingsView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewList:
		body = a.listingsView.View()
	case messages.ViewDashboard:
		body = a.dashboardView.View()
	default:
		body = a.intakeView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		"",
		body,
		"",
		a.bar.View(),
	)
}

func (a *App) renderTabs() string {
	views := messages.AllViews()
	tabs := make([]string, 0, len(views))
	for i, v := range views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == a.currentView {
			tabs = append(tabs, a.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Criteria returns the filter criteria owned by the app.
func (a *App) Criteria() domain.FilterCriteria {
	return a.criteria
}

// Ready returns whether the app has received its first size.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.bar
}

// Intake returns the property input view.
func (a *App) Intake() *intake.View {
	return a.intakeView
}

// Listings returns the property list view.
func (a *App) Listings() *listings.View {
	return a.listingsView
}

// Dashboard returns the dashboard view.
func (a *App) Dashboard() *dashboard.View {
	return a.dashboardView
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	bodyHeight := max(height-4, 1)
	a.bar.SetWidth(width)
	a.intakeView.SetDimensions(width, bodyHeight)
	a.listingsView.SetDimensions(width, bodyHeight)
	a.dashboardView.SetDimensions(width, bodyHeight)
}
