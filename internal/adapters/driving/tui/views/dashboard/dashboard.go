// Package dashboard provides the collection overview for the TUI.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/generation"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// barWidth is the width of a full distribution bar.
const barWidth = 30

const msgLoadFailed = "Failed to load statistics. Press r to retry."

// View shows totals, the by-type distribution and recent listings.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	properties driving.PropertyService
	ctx        context.Context

	tracker generation.Tracker
	stats   *domain.Stats
	loading bool
	err     error

	width  int
	height int
}

// NewView creates a dashboard view.
func NewView(s *styles.Styles, properties driving.PropertyService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		properties: properties,
		ctx:        context.Background(),
		width:      80,
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

// Activate starts accepting responses and fetches a fresh snapshot.
func (v *View) Activate() tea.Cmd {
	v.tracker.Activate()
	return v.fetch()
}

// Deactivate discards any fetch in flight.
func (v *View) Deactivate() {
	v.tracker.Deactivate()
	v.loading = false
}

func (v *View) fetch() tea.Cmd {
	if v.properties == nil {
		return nil
	}
	v.loading = true
	tok := v.tracker.Next()
	ctx, svc := v.ctx, v.properties
	return func() tea.Msg {
		stats, err := svc.Stats(ctx)
		return messages.StatsLoaded{Token: tok, Stats: stats, Err: err}
	}
}

// Update handles messages for the dashboard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Reload) {
			return v, v.fetch()
		}
	case messages.StatsLoaded:
		if !v.tracker.Current(msg.Token) {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			logger.Warn("load stats failed: %v", msg.Err)
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.stats = msg.Stats
	}
	return v, nil
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.stats == nil:
		b.WriteString(v.styles.Muted.Render("Loading statistics..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(msgLoadFailed))
	case v.stats.Empty():
		b.WriteString(v.styles.Subtitle.Render("No Data Available"))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Add properties to see statistics here."))
	default:
		b.WriteString(v.renderCards())
		b.WriteString("\n\n")
		b.WriteString(v.renderDistribution())
		b.WriteString("\n")
		b.WriteString(v.renderRecent())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] refresh"))
	return b.String()
}

func (v *View) renderCards() string {
	card := func(label string, count int) string {
		return v.styles.Card.Render(
			v.styles.Muted.Render(label) + "\n" + v.styles.Title.Render(humanize.Comma(int64(count))),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", v.stats.TotalProperties),
		card("Favorites", v.stats.Favorites),
		card("For Rent", v.stats.ForRent()),
		card("For Sale", v.stats.ForSale()),
	)
}

func (v *View) renderDistribution() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("By Type"))
	b.WriteString("\n")

	buckets := v.stats.TypeBuckets()
	if len(buckets) == 0 {
		b.WriteString(v.styles.Muted.Render("No type data"))
		b.WriteString("\n")
		return b.String()
	}
	for _, bucket := range buckets {
		share := v.stats.Share(bucket.Count)
		filled := int(math.Round(share / 100 * barWidth))
		bar := v.styles.Bar.Render(strings.Repeat("█", filled)) + v.styles.Muted.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("%s%s %s (%.0f%%)\n",
			v.styles.Label.Render(bucket.Name), bar, humanize.Comma(int64(bucket.Count)), share))
	}
	return b.String()
}

func (v *View) renderRecent() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Recent"))
	b.WriteString("\n")
	if len(v.stats.Recent) == 0 {
		b.WriteString(v.styles.Muted.Render("Nothing added recently"))
		return b.String()
	}
	for i := range v.stats.Recent {
		p := &v.stats.Recent[i]
		location := p.Location
		if location == "" {
			location = "No location"
		}
		price := p.Price
		if price == "" {
			price = "N/A"
		}
		line := fmt.Sprintf("• %s  %s", location, price)
		if name := p.Headline(); name != "" {
			line += v.styles.Muted.Render("  " + name)
		}
		if created := p.Created(); !created.IsZero() {
			line += v.styles.Muted.Render("  " + humanize.Time(created))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Stats returns the last loaded snapshot.
func (v *View) Stats() *domain.Stats {
	return v.stats
}

// Loading reports whether a fetch is pending.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
