// Package intake provides the message intake and review form for the TUI.
//
// A broker pastes a listing message, the property service extracts a draft,
// the broker corrects any field and saves. The form moves through the
// phases empty, extracting, reviewing, saving and saved, then returns to
// empty once the saved banner has been shown.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/imageapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/generation"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/components/input"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/keymap"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/messages"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui/styles"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// Phase is the form's position in the intake flow.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseExtracting
	PhaseReviewing
	PhaseSaving
	PhaseSaved
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseExtracting:
		return "extracting"
	case PhaseReviewing:
		return "reviewing"
	case PhaseSaving:
		return "saving"
	case PhaseSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// RowImage is the review row holding the staged image path.
const RowImage = "image"

// Status line texts.
const (
	msgAwaitingThumbnail = "Image uploaded. Waiting for thumbnail..."
	msgThumbnailPending  = "Image uploaded, thumbnail not ready yet."
	msgImageUnreadable   = "Could not read image file"
)

// View is the intake form.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	properties driving.PropertyService
	images     driving.ImageService
	ctx        context.Context

	bannerDelay time.Duration
	tracker     generation.Tracker

	phase   Phase
	message textarea.Model
	draft   *domain.Draft
	draftID string
	savedID string

	cursor  int
	editing bool
	editor  *input.Field

	imagePath string
	staged    *domain.StagedImage
	imageErr  string

	errMsg      string
	notice      string
	imageNotice string
	warning     string

	width  int
	height int
}

// NewView creates a new intake form. images may be nil, in which case the
// form does not wait for thumbnails.
func NewView(
	s *styles.Styles,
	properties driving.PropertyService,
	images driving.ImageService,
	bannerDelay time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if bannerDelay <= 0 {
		bannerDelay = domain.DefaultAppSettings().UI.SavedBannerDelay
	}

	ta := textarea.New()
	ta.Placeholder = "Paste a broker message, e.g. 2BHK for rent in Andheri West, 45k, semi furnished..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(76)
	ta.SetHeight(6)

	return &View{
		styles:      s,
		keymap:      keymap.DefaultKeyMap(),
		properties:  properties,
		images:      images,
		ctx:         context.Background(),
		bannerDelay: bannerDelay,
		message:     ta,
		editor:      input.NewField(s, "", ""),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Activate makes the form accept responses and focuses the message box
// when nothing has been extracted yet.
func (v *View) Activate() tea.Cmd {
	v.tracker.Activate()
	if v.phase == PhaseEmpty {
		return v.message.Focus()
	}
	return nil
}

// Deactivate drops in-flight responses. The draft and message survive;
// a pending extraction or save is abandoned.
func (v *View) Deactivate() {
	v.tracker.Deactivate()
	switch v.phase {
	case PhaseExtracting:
		v.phase = PhaseEmpty
	case PhaseSaving:
		v.phase = PhaseReviewing
	case PhaseEmpty, PhaseReviewing, PhaseSaved:
	}
	v.stopEditing()
	v.message.Blur()
}

// Capturing reports whether keys are going into a text box.
func (v *View) Capturing() bool {
	return v.editing || (v.phase == PhaseEmpty && v.message.Focused())
}

// Update handles messages for the intake form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.Extracted:
		return v.handleExtracted(msg)

	case messages.Saved:
		return v.handleSaved(msg)

	case messages.ImageStaged:
		if !v.tracker.Live(msg.Token) || msg.Path != v.imagePath {
			return v, nil
		}
		if msg.Err != nil {
			v.staged = nil
			v.imageErr = domain.UserMessage(msg.Err, msgImageUnreadable)
			logger.Debug("staging %s failed: %v", msg.Path, msg.Err)
			return v, nil
		}
		v.staged = msg.Image
		v.imageErr = ""
		return v, nil

	case messages.ThumbnailLoaded:
		if msg.DraftID != v.draftID {
			return v, nil
		}
		switch {
		case msg.Err == nil:
			v.imageNotice = domain.MsgUploaded
		case errors.Is(msg.Err, domain.ErrThumbnailPending):
			v.imageNotice = msgThumbnailPending
		default:
			v.imageNotice = ""
			logger.Warn("thumbnail wait for %s failed: %v", msg.PropertyID, msg.Err)
		}
		return v, nil

	case messages.DraftExpired:
		if msg.DraftID != v.draftID || v.phase != PhaseSaved {
			return v, nil
		}
		return v, v.reset()
	}

	// Cursor blink and other internal messages.
	var cmd tea.Cmd
	if v.editing {
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
	v.message, cmd = v.message.Update(msg)
	return v, cmd
}

func (v *View) handleExtracted(msg messages.Extracted) (*View, tea.Cmd) {
	if !v.tracker.Current(msg.Token) || v.phase != PhaseExtracting {
		logger.Debug("dropping stale extraction")
		return v, nil
	}
	if msg.Err != nil || msg.Draft == nil {
		logger.Warn("extraction failed: %v", msg.Err)
		v.phase = PhaseEmpty
		v.errMsg = domain.MsgExtractFailed
		return v, v.message.Focus()
	}

	v.phase = PhaseReviewing
	v.draft = msg.Draft
	v.draftID = uuid.NewString()
	v.savedID = ""
	v.cursor = 0
	v.errMsg = ""
	v.message.Blur()
	return v, nil
}

func (v *View) handleSaved(msg messages.Saved) (*View, tea.Cmd) {
	if !v.tracker.Current(msg.Token) || msg.DraftID != v.draftID || v.phase != PhaseSaving {
		logger.Debug("dropping stale save response")
		return v, nil
	}
	if msg.Err != nil || msg.Outcome == nil {
		v.phase = PhaseReviewing
		v.errMsg = domain.UserMessage(msg.Err, domain.MsgSaveFailed)
		if v.errMsg == "" {
			v.errMsg = domain.MsgSaveFailed
		}
		return v, nil
	}

	id := msg.Outcome.ID
	draftID := v.draftID
	v.phase = PhaseSaved
	v.savedID = id
	v.errMsg = ""
	v.notice = domain.MsgSaved

	cmds := []tea.Cmd{
		func() tea.Msg { return messages.PropertySaved{ID: id} },
		tea.Tick(v.bannerDelay, func(time.Time) tea.Msg {
			return messages.DraftExpired{DraftID: draftID}
		}),
	}
	switch {
	case msg.Outcome.ImageErr != nil:
		v.warning = domain.UploadMessage(msg.Outcome.ImageErr)
	case msg.Outcome.Image != nil && v.images == nil:
		v.imageNotice = domain.MsgUploaded
	case msg.Outcome.Image != nil:
		v.imageNotice = msgAwaitingThumbnail
		cmds = append(cmds, v.awaitThumbnail(draftID, id, msg.Outcome.Image))
	}
	return v, tea.Batch(cmds...)
}

// handleKeyMsg handles key presses based on the current phase.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditorKeys(msg)
	}

	switch v.phase {
	case PhaseEmpty:
		return v.handleEmptyKeys(msg)
	case PhaseReviewing:
		return v.handleReviewKeys(msg)
	case PhaseSaved:
		if keymap.Matches(msg.String(), v.keymap.NewDraft) {
			return v, v.reset()
		}
	case PhaseExtracting, PhaseSaving:
		// Busy: submit is disabled.
	}
	return v, nil
}

func (v *View) handleEmptyKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(key, v.keymap.NewDraft):
		v.message.Reset()
		v.errMsg = ""
		return v, nil
	}

	if !v.message.Focused() {
		if key == "enter" || key == "i" {
			return v, v.message.Focus()
		}
		return v, nil
	}
	if keymap.Matches(key, v.keymap.Back) {
		v.message.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.message, cmd = v.message.Update(msg)
	return v, cmd
}

func (v *View) handleReviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	rows := Rows()
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case keymap.Matches(key, v.keymap.Left):
		v.cycle(rows[v.cursor], -1)
	case keymap.Matches(key, v.keymap.Right):
		v.cycle(rows[v.cursor], 1)
	case keymap.Matches(key, v.keymap.Select):
		return v, v.startEditing(rows[v.cursor])
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.save()
	case keymap.Matches(key, v.keymap.NewDraft):
		return v, v.reset()
	case key == "x" && rows[v.cursor] == RowImage:
		v.imagePath = ""
		v.staged = nil
		v.imageErr = ""
	}
	return v, nil
}

func (v *View) handleEditorKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.commitEdit()
	case "esc":
		v.stopEditing()
		return v, nil
	}
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// Rows lists the review rows in display order: every editable field,
// then the image path.
func Rows() []string {
	return append(domain.EditableFields(), RowImage)
}

// cycle moves an enum field through its options, including unset.
func (v *View) cycle(field string, dir int) {
	opts := domain.FieldOptions(field)
	if opts == nil || v.draft == nil {
		return
	}
	opts = append([]string{""}, opts...)
	current := 0
	for i, o := range opts {
		if o == v.draft.Get(field) {
			current = i
			break
		}
	}
	next := (current + dir + len(opts)) % len(opts)
	if err := v.draft.Set(field, opts[next]); err != nil {
		v.errMsg = err.Error()
	}
}

func (v *View) startEditing(row string) tea.Cmd {
	if v.draft == nil {
		return nil
	}
	if domain.FieldOptions(row) != nil {
		v.cycle(row, 1)
		return nil
	}
	if row == RowImage {
		v.editor.SetLabel("Image Path")
		v.editor.SetValue(v.imagePath)
	} else {
		v.editor.SetLabel(domain.FieldLabel(row))
		v.editor.SetValue(v.draft.Get(row))
	}
	v.editing = true
	return v.editor.Focus()
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
}

func (v *View) commitEdit() tea.Cmd {
	row := Rows()[v.cursor]
	value := v.editor.Value()
	v.stopEditing()

	if row != RowImage {
		if err := v.draft.Set(row, value); err != nil {
			v.errMsg = err.Error()
		}
		return nil
	}

	v.imagePath = strings.TrimSpace(value)
	v.staged = nil
	v.imageErr = ""
	if v.imagePath == "" {
		return nil
	}
	tok := v.tracker.Side()
	path := v.imagePath
	return func() tea.Msg {
		img, err := imageapi.LoadFile(path)
		return messages.ImageStaged{Token: tok, Path: path, Image: img, Err: err}
	}
}

// submit requests an extraction. Blank text does nothing.
func (v *View) submit() tea.Cmd {
	text := v.message.Value()
	if strings.TrimSpace(text) == "" || v.properties == nil {
		return nil
	}
	v.phase = PhaseExtracting
	v.errMsg = ""
	tok := v.tracker.Next()
	ctx, svc := v.ctx, v.properties
	return func() tea.Msg {
		draft, err := svc.Extract(ctx, text)
		return messages.Extracted{Token: tok, Draft: draft, Err: err}
	}
}

// save persists the reviewed draft. It does nothing once the draft
// instance has an id.
func (v *View) save() tea.Cmd {
	if v.phase != PhaseReviewing || v.draft == nil || v.savedID != "" || v.properties == nil {
		return nil
	}
	v.phase = PhaseSaving
	v.errMsg = ""
	tok := v.tracker.Next()
	draft := *v.draft
	draftID := v.draftID
	image := v.staged
	ctx, svc := v.ctx, v.properties
	return func() tea.Msg {
		outcome, err := svc.Save(ctx, &draft, image)
		return messages.Saved{Token: tok, DraftID: draftID, Outcome: outcome, Err: err}
	}
}

func (v *View) awaitThumbnail(draftID, propertyID string, ack *domain.UploadResult) tea.Cmd {
	ctx, svc := v.ctx, v.images
	return func() tea.Msg {
		img, err := svc.AwaitThumbnail(ctx, propertyID, ack)
		return messages.ThumbnailLoaded{DraftID: draftID, PropertyID: propertyID, Image: img, Err: err}
	}
}

// reset clears the form for a new message.
func (v *View) reset() tea.Cmd {
	v.phase = PhaseEmpty
	v.message.Reset()
	v.draft = nil
	v.draftID = ""
	v.savedID = ""
	v.cursor = 0
	v.stopEditing()
	v.imagePath = ""
	v.staged = nil
	v.imageErr = ""
	v.errMsg = ""
	v.notice = ""
	v.imageNotice = ""
	v.warning = ""
	if v.tracker.Active() {
		return v.message.Focus()
	}
	return nil
}

// View renders the intake form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Property"))
	b.WriteString("\n\n")

	switch v.phase {
	case PhaseEmpty, PhaseExtracting:
		b.WriteString(v.styles.Muted.Render("Paste a broker message and press ctrl+s to extract the details."))
		b.WriteString("\n\n")
		b.WriteString(v.message.View())
		b.WriteString("\n\n")
		if v.phase == PhaseExtracting {
			b.WriteString(v.styles.Muted.Render("Extracting property details..."))
			b.WriteString("\n")
		}
	case PhaseReviewing, PhaseSaving, PhaseSaved:
		b.WriteString(v.renderReview())
	}

	if v.errMsg != "" {
		b.WriteString(v.styles.Error.Render(v.errMsg))
		b.WriteString("\n")
	}
	if v.notice != "" && v.phase == PhaseSaved {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString(v.styles.Muted.Render("  " + v.savedID))
		b.WriteString("\n")
	}
	if v.imageNotice != "" {
		b.WriteString(v.styles.Success.Render(v.imageNotice))
		b.WriteString("\n")
	}
	if v.warning != "" {
		b.WriteString(v.styles.Warning.Render("Image not uploaded: " + v.warning))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderReview() string {
	var b strings.Builder

	score := v.draft.Confidence()
	level := domain.LevelFor(score)
	b.WriteString(v.styles.Subtitle.Render("Review extracted details"))
	b.WriteString("  ")
	b.WriteString(v.styles.Confidence(level).Render(fmt.Sprintf("Confidence: %.0f%% (%s)", score, level)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(truncate(v.draft.RawMessage, 90)))
	b.WriteString("\n\n")

	for i, row := range Rows() {
		indicator := "  "
		if i == v.cursor && v.phase == PhaseReviewing {
			indicator = "> "
		}
		if v.editing && i == v.cursor {
			b.WriteString(indicator + v.editor.View())
			b.WriteString("\n")
			continue
		}
		b.WriteString(indicator)
		b.WriteString(v.styles.Label.Render(v.rowLabel(row)))
		b.WriteString(v.rowValue(row))
		b.WriteString("\n")
	}
	if v.imageErr != "" {
		b.WriteString(v.styles.Error.Render("  " + v.imageErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch v.phase {
	case PhaseSaving:
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	case PhaseEmpty, PhaseExtracting, PhaseReviewing, PhaseSaved:
	}
	return b.String()
}

func (v *View) rowLabel(row string) string {
	if row == RowImage {
		return "Image"
	}
	return domain.FieldLabel(row)
}

func (v *View) rowValue(row string) string {
	if row == RowImage {
		switch {
		case v.staged != nil:
			return v.styles.Normal.Render(fmt.Sprintf("%s (%s, %s)",
				v.staged.Filename, humanize.IBytes(uint64(v.staged.Size())), v.staged.ContentType))
		case v.imagePath != "":
			return v.styles.Muted.Render(v.imagePath)
		default:
			return v.styles.Muted.Render("(none)")
		}
	}

	value := v.draft.Get(row)
	if domain.FieldOptions(row) != nil {
		if value == "" {
			value = "-"
		}
		return v.styles.Normal.Render("‹ " + value + " ›")
	}
	if value == "" {
		return v.styles.Muted.Render("-")
	}
	return v.styles.Normal.Render(value)
}

func (v *View) renderHelp() string {
	switch {
	case v.editing:
		return v.styles.Help.Render("[enter] apply  [esc] cancel")
	case v.phase == PhaseReviewing:
		return v.styles.Help.Render("[↑/↓] field  [←/→] option  [enter] edit  [x] remove image  [ctrl+s] save  [ctrl+n] discard")
	case v.phase == PhaseSaved:
		return v.styles.Help.Render("[ctrl+n] new property")
	case v.phase == PhaseEmpty && v.message.Focused():
		return v.styles.Help.Render("[ctrl+s] extract  [esc] leave message box")
	default:
		return v.styles.Help.Render("[enter] write message  [ctrl+s] extract  [tab] next view")
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.message.SetWidth(max(width-4, 20))
	v.editor.SetWidth(width - 4)
}

// Phase returns the current phase.
func (v *View) Phase() Phase {
	return v.phase
}

// Draft returns the draft under review, or nil.
func (v *View) Draft() *domain.Draft {
	return v.draft
}

// DraftID returns the identity of the current draft instance.
func (v *View) DraftID() string {
	return v.draftID
}

// SavedID returns the id assigned to the current draft, if any.
func (v *View) SavedID() string {
	return v.savedID
}

// Message returns the text in the message box.
func (v *View) Message() string {
	return v.message.Value()
}

// SetMessage replaces the text in the message box.
func (v *View) SetMessage(text string) {
	v.message.SetValue(text)
}

// Staged returns the staged image, or nil.
func (v *View) Staged() *domain.StagedImage {
	return v.staged
}

// Cursor returns the selected review row.
func (v *View) Cursor() int {
	return v.cursor
}

// Err returns the error line, if any.
func (v *View) Err() string {
	return v.errMsg
}

// ImageErr returns the staged image error, if any.
func (v *View) ImageErr() string {
	return v.imageErr
}

// Warning returns the post-save image warning, if any.
func (v *View) Warning() string {
	return v.warning
}

// ImageNotice returns the upload status line, if any.
func (v *View) ImageNotice() string {
	return v.imageNotice
}
