package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the property service listens by default.
const DefaultBaseURL = "http://localhost:8000"

// APISettings locates the property service.
type APISettings struct {
	// BaseURL is the property service root (default: http://localhost:8000).
	BaseURL string

	// ImageBaseURL is the root for image endpoints. Empty means BaseURL.
	ImageBaseURL string

	// TimeoutSeconds bounds each request. Zero means no timeout.
	TimeoutSeconds int
}

// EffectiveImageBaseURL returns the image root, falling back to BaseURL.
func (a APISettings) EffectiveImageBaseURL() string {
	if a.ImageBaseURL != "" {
		return a.ImageBaseURL
	}
	return a.BaseURL
}

// Timeout returns the request timeout as a duration.
func (a APISettings) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ImageSettings controls the wait for a generated thumbnail.
type ImageSettings struct {
	// ThumbnailAttempts is how many times to poll for a thumbnail.
	ThumbnailAttempts int

	// ThumbnailDelay is the first poll interval; it doubles per attempt.
	ThumbnailDelay time.Duration
}

// UISettings holds interactive front-end timings.
type UISettings struct {
	// SavedBannerDelay is how long the saved banner shows before the
	// input form resets.
	SavedBannerDelay time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	API    APISettings
	Images ImageSettings
	UI     UISettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultBaseURL,
		},
		Images: ImageSettings{
			ThumbnailAttempts: 5,
			ThumbnailDelay:    500 * time.Millisecond,
		},
		UI: UISettings{
			SavedBannerDelay: 2 * time.Second,
		},
	}
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidInput, raw)
	}
	return nil
}
