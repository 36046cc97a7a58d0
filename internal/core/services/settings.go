package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRedirectPort   = "oauth.redirect_port"
	keyScopes         = "oauth.scopes"
	keyTimeoutSeconds = "oauth.timeout_seconds"
	keyOutputFormat   = "output.format"
)

func rateLimitRPSKey(surface domain.Surface) string {
	return "ratelimit." + surface.String() + ".rps"
}

func rateLimitBurstKey(surface domain.Surface) string {
	return "ratelimit." + surface.String() + ".burst"
}

// SettingsService manages application settings stored in the config store.
// Missing or unusable stored values fall back to defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		OAuth: domain.OAuthSettings{
			RedirectPort:   s.getPort(defaults.OAuth.RedirectPort),
			Scopes:         s.getScopes(defaults.OAuth.Scopes),
			TimeoutSeconds: s.getNonNegativeInt(keyTimeoutSeconds, defaults.OAuth.TimeoutSeconds),
		},
		Output:     s.getOutputFormat(defaults.Output),
		RateLimits: make(map[domain.Surface]domain.RateLimit, len(defaults.RateLimits)),
	}

	for surface, limit := range defaults.RateLimits {
		if rps := s.configStore.GetFloat(rateLimitRPSKey(surface)); rps > 0 {
			limit.RequestsPerSecond = rps
		}
		if burst := s.configStore.GetInt(rateLimitBurstKey(surface)); burst > 0 {
			limit.Burst = burst
		}
		settings.RateLimits[surface] = limit
	}

	return settings, nil
}

// Set parses value for key, validates it and stores it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes the stored value for key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys lists every settable key in sorted order.
func (s *SettingsService) Keys() []string {
	return settingKeys()
}

// Values returns the effective value of every key, rendered as text.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	values := map[string]string{
		keyRedirectPort:   strconv.Itoa(settings.OAuth.RedirectPort),
		keyScopes:         strings.Join(settings.OAuth.Scopes, ","),
		keyTimeoutSeconds: strconv.Itoa(settings.OAuth.TimeoutSeconds),
		keyOutputFormat:   settings.Output.String(),
	}
	for surface, limit := range settings.RateLimits {
		values[rateLimitRPSKey(surface)] = strconv.FormatFloat(limit.RequestsPerSecond, 'f', -1, 64)
		values[rateLimitBurstKey(surface)] = strconv.Itoa(limit.Burst)
	}
	return values, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func settingKeys() []string {
	keys := []string{keyRedirectPort, keyScopes, keyTimeoutSeconds, keyOutputFormat}
	for _, surface := range domain.AllSurfaces() {
		keys = append(keys, rateLimitRPSKey(surface), rateLimitBurstKey(surface))
	}
	sort.Strings(keys)
	return keys
}

func isKnownKey(key string) bool {
	for _, k := range settingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// parseSetting converts the textual value of key to the type stored on disk.
func parseSetting(key, value string) (any, error) {
	switch {
	case key == keyRedirectPort:
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("%w: %s must be a port number, got %q", domain.ErrInvalidInput, key, value)
		}
		return port, nil

	case key == keyTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil

	case key == keyScopes:
		scopes := splitList(value)
		if len(scopes) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one scope", domain.ErrInvalidInput, key)
		}
		return scopes, nil

	case key == keyOutputFormat:
		format := domain.OutputFormat(strings.ToLower(value))
		if !format.IsValid() {
			return nil, fmt.Errorf("%w: %s must be text, json or tsv, got %q", domain.ErrInvalidInput, key, value)
		}
		return format.String(), nil

	case strings.HasPrefix(key, "ratelimit.") && isKnownKey(key):
		if strings.HasSuffix(key, ".rps") {
			rps, err := strconv.ParseFloat(value, 64)
			if err != nil || rps <= 0 {
				return nil, fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrInvalidInput, key, value)
			}
			return rps, nil
		}
		burst, err := strconv.Atoi(value)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return burst, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// splitList splits on commas and whitespace, dropping empty items.
func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPort(defaultVal int) int {
	port := s.configStore.GetInt(keyRedirectPort)
	if port < 1 || port > 65535 {
		return defaultVal
	}
	return port
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getScopes(defaultVal []string) []string {
	scopes := s.configStore.GetStringSlice(keyScopes)
	if len(scopes) == 0 {
		return defaultVal
	}
	return append([]string(nil), scopes...)
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	val := s.configStore.GetString(keyOutputFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.OutputFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
