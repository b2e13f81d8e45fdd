package driving

import "github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Override shadows a stored value for this process without saving it.
	Override(key, value string) error

	// Keys lists the recognised config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Reload re-reads settings from storage.
	Reload() error
}
