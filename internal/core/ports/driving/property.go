package driving

import (
	"context"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// PropertyService drives extraction, review and management of listings.
type PropertyService interface {
	// Extract turns free text into a draft. Blank text is rejected locally.
	Extract(ctx context.Context, message string) (*domain.Draft, error)

	// Save validates and persists a draft, then uploads the staged image if
	// one is given. A failed upload does not fail the save; it is reported
	// in SaveOutcome.ImageErr.
	Save(ctx context.Context, draft *domain.Draft, image *domain.StagedImage) (*SaveOutcome, error)

	// List returns properties matching the criteria.
	List(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Property, error)

	// Get retrieves a property by ID.
	Get(ctx context.Context, id string) (*domain.Property, error)

	// Update validates and applies a draft to a saved property.
	Update(ctx context.Context, id string, draft *domain.Draft) (*domain.Property, error)

	// Delete removes a property. Callers confirm with the user first.
	Delete(ctx context.Context, id string) error

	// ToggleFavorite flips the favorite flag.
	ToggleFavorite(ctx context.Context, id string) (bool, error)

	// SetTags replaces the tag list. Blank tags are dropped.
	SetTags(ctx context.Context, id string, tags []string) ([]string, error)

	// Stats returns the dashboard snapshot.
	Stats(ctx context.Context) (*domain.Stats, error)
}

// SaveOutcome reports the result of a two-phase save.
type SaveOutcome struct {
	// ID is the identifier assigned by the property service.
	ID string

	// Message is the service's acknowledgement text.
	Message string

	// Image is the upload acknowledgement, nil if no image was staged or
	// the upload failed.
	Image *domain.UploadResult

	// ImageErr is set when the staged image could not be uploaded.
	ImageErr error
}
