package propertyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.PropertyGateway = (*Gateway)(nil)

// Endpoint paths.
const (
	pathExtract    = "/api/extract"
	pathProperties = "/api/properties"
	pathStats      = "/api/stats"
)

// Gateway implements driven.PropertyGateway over the service's REST API.
type Gateway struct {
	*Client
}

// NewGateway creates a new property gateway.
func NewGateway(cfg Config) *Gateway {
	return &Gateway{Client: NewClient(cfg)}
}

// extractRequest is the /api/extract request format.
type extractRequest struct {
	Message string `json:"message"`
}

func propertyPath(id string, suffix ...string) string {
	p := pathProperties + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Extract asks the service to pull property fields out of free text.
func (g *Gateway) Extract(ctx context.Context, message string) (*domain.Draft, error) {
	var draft domain.Draft
	if err := g.doJSON(ctx, http.MethodPost, pathExtract, nil, extractRequest{Message: message}, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Create persists a draft.
func (g *Gateway) Create(ctx context.Context, draft *domain.Draft) (*domain.SaveResult, error) {
	var res domain.SaveResult
	if err := g.doJSON(ctx, http.MethodPost, pathProperties, nil, draft, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns properties matching the criteria.
func (g *Gateway) List(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Property, error) {
	props := []domain.Property{}
	if err := g.doJSON(ctx, http.MethodGet, pathProperties, criteria.Query(), nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Get retrieves a single property.
func (g *Gateway) Get(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := g.doJSON(ctx, http.MethodGet, propertyPath(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the fields of a saved property.
func (g *Gateway) Update(ctx context.Context, id string, draft *domain.Draft) (*domain.Property, error) {
	var p domain.Property
	if err := g.doJSON(ctx, http.MethodPut, propertyPath(id), nil, draft, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a property.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	var ack domain.Ack
	return g.doJSON(ctx, http.MethodDelete, propertyPath(id), nil, nil, &ack)
}

// ToggleFavorite flips the favorite flag. The request has no body.
func (g *Gateway) ToggleFavorite(ctx context.Context, id string) (*domain.FavoriteResult, error) {
	var res domain.FavoriteResult
	if err := g.doJSON(ctx, http.MethodPatch, propertyPath(id, "favorite"), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateTags replaces the tag list. The body is a bare JSON array.
func (g *Gateway) UpdateTags(ctx context.Context, id string, tags []string) (*domain.TagsResult, error) {
	if tags == nil {
		tags = []string{}
	}
	var res domain.TagsResult
	if err := g.doJSON(ctx, http.MethodPatch, propertyPath(id, "tags"), nil, tags, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Stats returns the collection summary.
func (g *Gateway) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := g.doJSON(ctx, http.MethodGet, pathStats, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
