package driven

import (
	"context"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// PropertyGateway is the request/response channel to the property service.
// Every call is a single attempt; implementations do not retry or cache.
type PropertyGateway interface {
	// Extract asks the service to pull property fields out of free text.
	Extract(ctx context.Context, message string) (*domain.Draft, error)

	// Create persists a draft. Returns domain.ErrDuplicate when the service
	// reports a conflict.
	Create(ctx context.Context, draft *domain.Draft) (*domain.SaveResult, error)

	// List returns properties matching the criteria. Empty criteria keys
	// are not sent.
	List(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Property, error)

	// Get retrieves a single property. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Property, error)

	// Update replaces the fields of a saved property.
	Update(ctx context.Context, id string, draft *domain.Draft) (*domain.Property, error)

	// Delete removes a property.
	Delete(ctx context.Context, id string) error

	// ToggleFavorite flips the favorite flag and returns the new value.
	ToggleFavorite(ctx context.Context, id string) (*domain.FavoriteResult, error)

	// UpdateTags replaces the tag list.
	UpdateTags(ctx context.Context, id string, tags []string) (*domain.TagsResult, error)

	// Stats returns the collection summary.
	Stats(ctx context.Context) (*domain.Stats, error)

	// SetBaseURL retargets the gateway at runtime.
	SetBaseURL(baseURL string)
}
