package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// Ensure ImageService implements the interface.
var _ driving.ImageService = (*ImageService)(nil)

// maxPollDelay caps the interval between thumbnail polls.
const maxPollDelay = 30 * time.Second

// ThumbnailPolicy bounds the wait for a server-generated thumbnail.
type ThumbnailPolicy struct {
	// Attempts is the maximum number of fetches.
	Attempts int

	// Delay is the interval before the first fetch; it doubles each
	// attempt up to maxPollDelay.
	Delay time.Duration
}

// DefaultThumbnailPolicy mirrors the default image settings.
func DefaultThumbnailPolicy() ThumbnailPolicy {
	d := domain.DefaultAppSettings().Images
	return ThumbnailPolicy{Attempts: d.ThumbnailAttempts, Delay: d.ThumbnailDelay}
}

// ImageService validates staged images and talks to the image channel.
type ImageService struct {
	channel driven.ImageChannel
	policy  ThumbnailPolicy
}

// NewImageService creates a new image service.
func NewImageService(channel driven.ImageChannel, policy ThumbnailPolicy) *ImageService {
	defaults := DefaultThumbnailPolicy()
	if policy.Attempts <= 0 {
		policy.Attempts = defaults.Attempts
	}
	if policy.Delay <= 0 {
		policy.Delay = defaults.Delay
	}
	return &ImageService{channel: channel, policy: policy}
}

// Fetch returns the property's image info.
func (s *ImageService) Fetch(ctx context.Context, propertyID string) (*domain.PropertyImage, error) {
	if err := requireID(propertyID); err != nil {
		return nil, err
	}
	info, err := s.channel.Fetch(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("fetch image for %s: %w", propertyID, err)
	}
	return info, nil
}

// Upload validates the image locally, then uploads it. Nothing is sent
// when validation fails.
func (s *ImageService) Upload(ctx context.Context, propertyID string, image *domain.StagedImage) (*domain.UploadResult, error) {
	if err := requireID(propertyID); err != nil {
		return nil, err
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("uploading %s (%d bytes, %s) for %s", image.Filename, image.Size(), image.ContentType, propertyID)
	ack, err := s.channel.Upload(ctx, propertyID, image)
	if err != nil {
		return nil, fmt.Errorf("upload image for %s: %w", propertyID, err)
	}
	logger.Info("uploaded image %s for %s", ack.FileID, propertyID)
	return ack, nil
}

// AwaitThumbnail returns once a thumbnail is known to exist. When the
// upload acknowledgement already names one no request is made; otherwise
// the image is polled with a doubling interval.
func (s *ImageService) AwaitThumbnail(ctx context.Context, propertyID string, ack *domain.UploadResult) (*domain.PropertyImage, error) {
	if err := requireID(propertyID); err != nil {
		return nil, err
	}
	if ack.ThumbnailReady() {
		return &domain.PropertyImage{
			HasImage:     true,
			FileID:       ack.FileID,
			Filename:     ack.Filename,
			ImageURL:     ack.ImageURL,
			ThumbnailURL: ack.ThumbnailURL,
		}, nil
	}

	delay := min(s.policy.Delay, maxPollDelay)
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow() // the first fetch waits a full interval

	var last *domain.PropertyImage
	for attempt := 1; attempt <= s.policy.Attempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return last, err
		}

		info, err := s.channel.Fetch(ctx, propertyID)
		if err != nil {
			logger.Debug("thumbnail poll %d for %s failed: %v", attempt, propertyID, err)
		} else {
			last = info
			if info.HasThumbnail() {
				logger.Debug("thumbnail ready for %s after %d polls", propertyID, attempt)
				return info, nil
			}
		}

		delay = nextDelay(delay)
		limiter.SetLimit(rate.Every(delay))
	}

	return last, fmt.Errorf("%w after %d attempts", domain.ErrThumbnailPending, s.policy.Attempts)
}

func nextDelay(d time.Duration) time.Duration {
	if d >= maxPollDelay/2 {
		return maxPollDelay
	}
	return d * 2
}

// Delete removes the property's image.
func (s *ImageService) Delete(ctx context.Context, propertyID string) error {
	if err := requireID(propertyID); err != nil {
		return err
	}
	if err := s.channel.Delete(ctx, propertyID); err != nil {
		return fmt.Errorf("delete image for %s: %w", propertyID, err)
	}
	logger.Info("deleted image for %s", propertyID)
	return nil
}
