package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBaseURL           = "api.base_url"
	KeyImageBaseURL      = "api.image_base_url"
	KeyTimeoutSeconds    = "api.timeout_seconds"
	KeyThumbnailAttempts = "images.thumbnail_attempts"
	KeyThumbnailDelayMS  = "images.thumbnail_delay_ms"
	KeySavedBannerMS     = "ui.saved_banner_ms"
)

var urlKeys = []string{KeyBaseURL, KeyImageBaseURL}

// SettingsService manages application settings. Overrides (from the
// environment or flags) shadow stored values for this process only.
type SettingsService struct {
	configStore driven.ConfigStore

	mu        sync.RWMutex
	overrides map[string]string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		overrides:   make(map[string]string),
	}
}

// Keys lists the recognised config keys.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyBaseURL,
		KeyImageBaseURL,
		KeyTimeoutSeconds,
		KeyThumbnailAttempts,
		KeyThumbnailDelayMS,
		KeySavedBannerMS,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:        strings.TrimRight(s.getString(KeyBaseURL, defaults.API.BaseURL), "/"),
			ImageBaseURL:   strings.TrimRight(s.getString(KeyImageBaseURL, ""), "/"),
			TimeoutSeconds: s.getInt(KeyTimeoutSeconds, defaults.API.TimeoutSeconds),
		},
		Images: domain.ImageSettings{
			ThumbnailAttempts: s.getInt(KeyThumbnailAttempts, defaults.Images.ThumbnailAttempts),
			ThumbnailDelay:    s.getMillis(KeyThumbnailDelayMS, defaults.Images.ThumbnailDelay),
		},
		UI: domain.UISettings{
			SavedBannerDelay: s.getMillis(KeySavedBannerMS, defaults.UI.SavedBannerDelay),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := domain.ValidateBaseURL(settings.API.BaseURL); err != nil {
		return fmt.Errorf("save %s: %w", KeyBaseURL, err)
	}
	if settings.API.ImageBaseURL != "" {
		if err := domain.ValidateBaseURL(settings.API.ImageBaseURL); err != nil {
			return fmt.Errorf("save %s: %w", KeyImageBaseURL, err)
		}
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyBaseURL, settings.API.BaseURL},
		{KeyImageBaseURL, settings.API.ImageBaseURL},
		{KeyTimeoutSeconds, settings.API.TimeoutSeconds},
		{KeyThumbnailAttempts, settings.Images.ThumbnailAttempts},
		{KeyThumbnailDelayMS, int(settings.Images.ThumbnailDelay / time.Millisecond)},
		{KeySavedBannerMS, int(settings.UI.SavedBannerDelay / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := s.parse(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Override shadows a stored value for the lifetime of this service.
// An empty value removes the override.
func (s *SettingsService) Override(key, value string) error {
	if value == "" {
		s.mu.Lock()
		delete(s.overrides, key)
		s.mu.Unlock()
		return nil
	}
	if _, err := s.parse(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = value
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Reload re-reads settings from storage.
func (s *SettingsService) Reload() error {
	return s.configStore.Load()
}

// parse validates value for key and converts it to its stored type.
func (s *SettingsService) parse(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	if !slices.Contains(s.Keys(), key) {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if slices.Contains(urlKeys, key) {
		if value == "" && key == KeyImageBaseURL {
			return "", nil
		}
		if err := domain.ValidateBaseURL(value); err != nil {
			return nil, err
		}
		return strings.TrimRight(value, "/"), nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) override(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.overrides[key]
	return v, ok
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.override(key); ok {
		return v
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.override(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	ms := s.getInt(key, -1)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}
