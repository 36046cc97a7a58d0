package driving

import "github.com/custodia-labs/gwcli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set parses and stores one setting by key.
	Set(key, value string) error

	// Reset restores the default for one key.
	Reset(key string) error

	// Values returns the effective value of every key as text.
	Values() (map[string]string, error)

	// Keys lists the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
