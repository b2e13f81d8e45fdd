package memory

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.PropertyGateway = (*PropertyStore)(nil)
	_ driven.ImageChannel    = (*ImageStore)(nil)
)

// Operation names recorded by PropertyStore.Calls.
const (
	OpExtract        = "extract"
	OpCreate         = "create"
	OpList           = "list"
	OpGet            = "get"
	OpUpdate         = "update"
	OpDelete         = "delete"
	OpToggleFavorite = "favorite"
	OpUpdateTags     = "tags"
	OpStats          = "stats"
	OpImageFetch     = "image.fetch"
	OpImageUpload    = "image.upload"
	OpImageDelete    = "image.delete"
)

// recentLimit is how many properties Stats reports as recent.
const recentLimit = 5

// PropertyStore is an in-memory stand-in for the property service.
// It backs the sandbox server and tests; Images exposes the image channel
// over the same records.
type PropertyStore struct {
	mu         sync.RWMutex
	properties map[string]domain.Property
	images     map[string]domain.PropertyImage
	calls      map[string]int
	failures   map[string]error
	now        func() time.Time

	// thumbnailLag is how many image fetches report no thumbnail after
	// an upload.
	thumbnailLag int
	pendingThumb map[string]int

	// inlineImages makes image fetches carry data URIs next to the URLs.
	inlineImages bool
}

// NewPropertyStore creates an empty in-memory property service.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		properties:   make(map[string]domain.Property),
		images:       make(map[string]domain.PropertyImage),
		calls:        make(map[string]int),
		failures:     make(map[string]error),
		pendingThumb: make(map[string]int),
		now:          time.Now,
	}
}

// SetThumbnailLag makes uploads acknowledge without a thumbnail, and the
// next n fetches report the image without one.
func (s *PropertyStore) SetThumbnailLag(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thumbnailLag = n
}

// SetInlineImages makes uploaded images come back as inline data URIs as
// well as URL paths.
func (s *PropertyStore) SetInlineImages(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inlineImages = on
}

// FailNext makes the next call of op return err.
func (s *PropertyStore) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Calls returns how many times op has been invoked.
func (s *PropertyStore) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (s *PropertyStore) TotalCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// Seed inserts a property as-is. A missing ID is generated.
func (s *PropertyStore) Seed(p domain.Property) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.CreatedAt == "" {
		p.CreatedAt = s.timestamp()
	}
	s.properties[p.ID] = p
	return p.ID
}

// SetBaseURL is a no-op; the store is not addressed by URL.
func (s *PropertyStore) SetBaseURL(string) {}

// begin records a call and returns any injected failure (caller must hold lock).
func (s *PropertyStore) begin(op string) error {
	s.calls[op]++
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// Extract pulls a handful of fields out of the message with simple patterns.
func (s *PropertyStore) Extract(_ context.Context, message string) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpExtract); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}
	draft := extractDraft(message)
	return &draft, nil
}

// Create persists a draft. A draft whose message matches a stored
// property's message is rejected as a duplicate.
func (s *PropertyStore) Create(_ context.Context, draft *domain.Draft) (*domain.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpCreate); err != nil {
		return nil, err
	}
	if draft.RawMessage == "" {
		return nil, fmt.Errorf("%w: raw_message is required", domain.ErrInvalidInput)
	}

	key := normalise(draft.RawMessage)
	for _, p := range s.properties {
		if normalise(p.RawMessage) == key {
			return nil, domain.ErrDuplicate
		}
	}

	p := domain.Property{
		Draft:     *draft,
		ID:        newID(),
		Tags:      []string{},
		CreatedAt: s.timestamp(),
	}
	s.properties[p.ID] = p
	return &domain.SaveResult{ID: p.ID, Message: "Property saved successfully"}, nil
}

// List returns the properties matching criteria, newest first.
func (s *PropertyStore) List(_ context.Context, criteria domain.FilterCriteria) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpList); err != nil {
		return nil, err
	}

	result := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if matches(&p, criteria) {
			result = append(result, clone(p))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

// Get retrieves a property by ID.
func (s *PropertyStore) Get(_ context.Context, id string) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpGet); err != nil {
		return nil, err
	}
	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = clone(p)
	return &p, nil
}

// Update applies the non-empty fields of draft; fields left blank keep
// their stored values.
func (s *PropertyStore) Update(_ context.Context, id string, draft *domain.Draft) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpUpdate); err != nil {
		return nil, err
	}
	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	mergeDraft(&p.Draft, draft)
	p.UpdatedAt = s.timestamp()
	s.properties[id] = p
	p = clone(p)
	return &p, nil
}

// Delete removes a property and its image.
func (s *PropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpDelete); err != nil {
		return err
	}
	if _, ok := s.properties[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.properties, id)
	delete(s.images, id)
	return nil
}

// ToggleFavorite flips the favorite flag.
func (s *PropertyStore) ToggleFavorite(_ context.Context, id string) (*domain.FavoriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpToggleFavorite); err != nil {
		return nil, err
	}
	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.IsFavorite = !p.IsFavorite
	s.properties[id] = p
	return &domain.FavoriteResult{Message: "Favorite status updated", IsFavorite: p.IsFavorite}, nil
}

// UpdateTags replaces the tag list.
func (s *PropertyStore) UpdateTags(_ context.Context, id string, tags []string) (*domain.TagsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpUpdateTags); err != nil {
		return nil, err
	}
	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Tags = append([]string{}, tags...)
	s.properties[id] = p
	return &domain.TagsResult{Message: "Tags updated", Tags: append([]string{}, tags...)}, nil
}

// Stats summarises the collection. Properties without a type or
// transaction are counted under "Unknown".
func (s *PropertyStore) Stats(_ context.Context) (*domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpStats); err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalProperties: len(s.properties),
		ByType:          make(map[string]int),
		ByTransaction:   make(map[string]int),
		Recent:          []domain.Property{},
	}
	all := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if p.IsFavorite {
			stats.Favorites++
		}
		stats.ByType[orUnknown(string(p.PropertyType))]++
		stats.ByTransaction[orUnknown(string(p.TransactionType))]++
		all = append(all, clone(p))
	}
	sortNewestFirst(all)
	if len(all) > recentLimit {
		all = all[:recentLimit]
	}
	stats.Recent = all
	return stats, nil
}

// ImageStore is the image channel view of a PropertyStore.
type ImageStore struct {
	s *PropertyStore
}

// Images returns the image channel backed by this store.
func (s *PropertyStore) Images() *ImageStore {
	return &ImageStore{s: s}
}

// SetBaseURL is a no-op; the store is not addressed by URL.
func (i *ImageStore) SetBaseURL(string) {}

// Fetch returns the image info for a property.
func (i *ImageStore) Fetch(_ context.Context, propertyID string) (*domain.PropertyImage, error) {
	s := i.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpImageFetch); err != nil {
		return nil, err
	}
	if _, ok := s.properties[propertyID]; !ok {
		return nil, domain.ErrNotFound
	}
	img, ok := s.images[propertyID]
	if !ok {
		return &domain.PropertyImage{HasImage: false}, nil
	}
	if s.pendingThumb[propertyID] > 0 {
		s.pendingThumb[propertyID]--
		img.ThumbnailURL = ""
		img.ThumbnailBase64 = ""
	}
	return &img, nil
}

// Upload links the staged image to the property.
func (i *ImageStore) Upload(_ context.Context, propertyID string, image *domain.StagedImage) (*domain.UploadResult, error) {
	s := i.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpImageUpload); err != nil {
		return nil, err
	}
	p, ok := s.properties[propertyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}

	fileID := newID()
	img := domain.PropertyImage{
		HasImage:     true,
		FileID:       fileID,
		Filename:     image.Filename,
		ImageURL:     "/uploads/" + fileID + ".jpg",
		ThumbnailURL: "/uploads/" + fileID + "_thumb.jpg",
	}
	if s.inlineImages {
		img.ImageBase64 = dataURI(image)
		img.ThumbnailBase64 = img.ImageBase64
	}
	s.images[propertyID] = img
	p.ImageID = fileID
	s.properties[propertyID] = p

	ack := &domain.UploadResult{
		Success:      true,
		FileID:       fileID,
		Filename:     image.Filename,
		ImageURL:     img.ImageURL,
		ThumbnailURL: img.ThumbnailURL,
	}
	if s.thumbnailLag > 0 {
		s.pendingThumb[propertyID] = s.thumbnailLag
		ack.ThumbnailURL = ""
	}
	return ack, nil
}

// Delete removes a property's image.
func (i *ImageStore) Delete(_ context.Context, propertyID string) error {
	s := i.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpImageDelete); err != nil {
		return err
	}
	p, ok := s.properties[propertyID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.images[propertyID]; !ok {
		return domain.ErrNoImage
	}
	delete(s.images, propertyID)
	p.ImageID = ""
	s.properties[propertyID] = p
	return nil
}

func (s *PropertyStore) timestamp() string {
	return s.now().Format("2006-01-02T15:04:05.000000")
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func mergeDraft(dst, src *domain.Draft) {
	for _, field := range domain.EditableFields() {
		if v := src.Get(field); v != "" {
			_ = dst.Set(field, v)
		}
	}
	if src.RawMessage != "" {
		dst.RawMessage = src.RawMessage
	}
	if src.ConfidenceScore != nil {
		score := *src.ConfidenceScore
		dst.ConfidenceScore = &score
	}
}

func normalise(msg string) string {
	return strings.Join(strings.Fields(strings.ToLower(msg)), " ")
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func clone(p domain.Property) domain.Property {
	p.Tags = append([]string{}, p.Tags...)
	return p
}

func sortNewestFirst(props []domain.Property) {
	sort.SliceStable(props, func(i, j int) bool {
		if props[i].CreatedAt != props[j].CreatedAt {
			return props[i].CreatedAt > props[j].CreatedAt
		}
		return props[i].ID < props[j].ID
	})
}

// matches applies the list filters: exact match on type, transaction and
// BHK, case-insensitive substring on location, and search over the
// message and contact number.
func matches(p *domain.Property, c domain.FilterCriteria) bool {
	if c.PropertyType != "" && string(p.PropertyType) != c.PropertyType {
		return false
	}
	if c.TransactionType != "" && string(p.TransactionType) != c.TransactionType {
		return false
	}
	if c.BHK != "" && p.BHK != c.BHK {
		return false
	}
	if c.Location != "" && !containsFold(p.Location, c.Location) {
		return false
	}
	if c.Search != "" && !containsFold(p.RawMessage, c.Search) && !containsFold(p.ContactNumber, c.Search) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

var (
	bhkPattern     = regexp.MustCompile(`(?i)\b([1-9])\s*-?\s*bhk\b`)
	phonePattern   = regexp.MustCompile(`(?:\+91[\s-]?)?\b[6-9]\d{9}\b`)
	pricePattern   = regexp.MustCompile(`(?i)(?:rs\.?|₹|inr)?\s*(\d+(?:\.\d+)?)\s*(k|l|lac|lakh|lakhs|cr|crore|crores)\b`)
	areaPattern    = regexp.MustCompile(`(?i)(\d{3,5})\s*(?:sq\.?\s*ft|sqft|sq feet|carpet)`)
	locationMarker = regexp.MustCompile(`\b(?i:in|at|near)\s+([A-Z][A-Za-z]+(?:\s+(?:East|West|North|South))?)`)
)

// extractDraft is a small rule-based extractor for offline use. Each
// recognised field adds to the confidence score.
func extractDraft(message string) domain.Draft {
	draft := domain.Draft{RawMessage: message}
	lower := strings.ToLower(message)
	found := 0

	if m := bhkPattern.FindStringSubmatch(message); m != nil {
		draft.BHK = m[1] + "BHK"
		draft.PropertyType = domain.PropertyTypeResidential
		found += 2
	}
	switch {
	case strings.Contains(lower, "shop"):
		draft.BHK, draft.PropertyType = "Shop", domain.PropertyTypeCommercial
		found++
	case strings.Contains(lower, "office"):
		draft.BHK, draft.PropertyType = "Office", domain.PropertyTypeCommercial
		found++
	case strings.Contains(lower, "plot") || strings.Contains(lower, "land"):
		draft.PropertyType = domain.PropertyTypeLand
		found++
	}
	switch {
	case strings.Contains(lower, "rent") || strings.Contains(lower, "lease"):
		draft.TransactionType = domain.TransactionRent
		found++
	case strings.Contains(lower, "sale") || strings.Contains(lower, "sell"):
		draft.TransactionType = domain.TransactionSale
		found++
	}
	switch {
	case strings.Contains(lower, "semi furnished") || strings.Contains(lower, "semi-furnished"):
		draft.Furnishing = domain.FurnishingSemi
		found++
	case strings.Contains(lower, "unfurnished"):
		draft.Furnishing = domain.FurnishingNone
		found++
	case strings.Contains(lower, "furnished"):
		draft.Furnishing = domain.FurnishingFull
		found++
	}
	if m := locationMarker.FindStringSubmatch(message); m != nil {
		draft.Location = m[1]
		found++
	}
	if m := pricePattern.FindString(message); m != "" {
		draft.Price = strings.TrimSpace(m)
		found++
	}
	if m := areaPattern.FindString(message); m != "" {
		draft.CarpetArea = strings.TrimSpace(m)
		found++
	}
	if m := phonePattern.FindString(message); m != "" {
		draft.ContactNumber = m
		found++
	}

	score := float64(found) / 9 * 100
	if score > 100 {
		score = 100
	}
	draft.ConfidenceScore = &score
	return draft
}

func dataURI(image *domain.StagedImage) string {
	return "data:" + image.ContentType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
