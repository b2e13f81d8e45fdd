package driven

import (
	"context"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// ImageChannel manages the single image attached to a saved property.
// It is addressed separately from PropertyGateway and may live on a
// different host.
type ImageChannel interface {
	// Fetch returns the image info for a property. A property without an
	// image yields HasImage == false, not an error.
	Fetch(ctx context.Context, propertyID string) (*domain.PropertyImage, error)

	// Upload sends the staged image as a multipart form.
	Upload(ctx context.Context, propertyID string, image *domain.StagedImage) (*domain.UploadResult, error)

	// Delete removes the property's image.
	Delete(ctx context.Context, propertyID string) error

	// SetBaseURL retargets the channel at runtime.
	SetBaseURL(baseURL string)
}
