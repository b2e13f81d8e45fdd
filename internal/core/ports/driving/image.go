package driving

import (
	"context"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// ImageService manages property images.
type ImageService interface {
	// Fetch returns the property's image info.
	Fetch(ctx context.Context, propertyID string) (*domain.PropertyImage, error)

	// Upload validates the image locally and uploads it.
	Upload(ctx context.Context, propertyID string, image *domain.StagedImage) (*domain.UploadResult, error)

	// AwaitThumbnail waits until the server reports a thumbnail for the
	// upload, polling with backoff when the acknowledgement does not
	// already name one. Returns domain.ErrThumbnailPending if the attempts
	// run out.
	AwaitThumbnail(ctx context.Context, propertyID string, ack *domain.UploadResult) (*domain.PropertyImage, error)

	// Delete removes the property's image. Callers confirm with the user first.
	Delete(ctx context.Context, propertyID string) error
}
