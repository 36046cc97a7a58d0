package domain

import "fmt"

// OutputFormat selects how command results are rendered.
type OutputFormat string

// Available output formats.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputTSV  OutputFormat = "tsv"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputTSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// OAuthSettings configures the authorisation flow.
type OAuthSettings struct {
	RedirectPort int
	Scopes       []string
	// TimeoutSeconds bounds the wait for the browser redirect.
	// Zero waits until interrupted.
	TimeoutSeconds int
}

// RateLimit configures the request rate for one surface.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	OAuth      OAuthSettings
	Output     OutputFormat
	RateLimits map[Surface]RateLimit
}

// DefaultRateLimits returns conservative per-surface limits, well below
// Google's published per-user quotas.
func DefaultRateLimits() map[Surface]RateLimit {
	return map[Surface]RateLimit{
		SurfaceDrive:  {RequestsPerSecond: 8, Burst: 10},
		SurfaceDocs:   {RequestsPerSecond: 5, Burst: 10},
		SurfaceSheets: {RequestsPerSecond: 5, Burst: 10},
		SurfaceSlides: {RequestsPerSecond: 5, Burst: 10},
	}
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		OAuth: OAuthSettings{
			RedirectPort: DefaultRedirectPort,
			Scopes:       DefaultScopes(),
		},
		Output:     OutputText,
		RateLimits: DefaultRateLimits(),
	}
}

// Validate checks settings for values gwcli cannot run with.
func (s AppSettings) Validate() error {
	if s.OAuth.RedirectPort < 1 || s.OAuth.RedirectPort > 65535 {
		return fmt.Errorf("%w: redirect port %d out of range", ErrInvalidInput, s.OAuth.RedirectPort)
	}
	if s.OAuth.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if !s.Output.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, s.Output)
	}
	for surface, limit := range s.RateLimits {
		if limit.RequestsPerSecond <= 0 || limit.Burst <= 0 {
			return fmt.Errorf("%w: rate limit for %s must be positive", ErrInvalidInput, surface)
		}
	}
	return nil
}
