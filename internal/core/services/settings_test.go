package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwcli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	svc := NewSettingsService(nil)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRedirectPort, settings.OAuth.RedirectPort)
	assert.ErrorIs(t, svc.Set(keyOutputFormat, "json"), domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.Reset(keyOutputFormat), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("oauth.redirect_port", 8085))
	require.NoError(t, store.Set("oauth.scopes", []string{domain.ScopeDrive}))
	require.NoError(t, store.Set("oauth.timeout_seconds", 120))
	require.NoError(t, store.Set("output.format", "json"))
	require.NoError(t, store.Set("ratelimit.sheets.rps", 1.5))
	require.NoError(t, store.Set("ratelimit.sheets.burst", 3))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 8085, settings.OAuth.RedirectPort)
	assert.Equal(t, []string{domain.ScopeDrive}, settings.OAuth.Scopes)
	assert.Equal(t, 120, settings.OAuth.TimeoutSeconds)
	assert.Equal(t, domain.OutputJSON, settings.Output)
	assert.Equal(t, domain.RateLimit{RequestsPerSecond: 1.5, Burst: 3}, settings.RateLimits[domain.SurfaceSheets])
	assert.Equal(t, domain.DefaultRateLimits()[domain.SurfaceDrive], settings.RateLimits[domain.SurfaceDrive])
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("oauth.redirect_port", 70000))
	require.NoError(t, store.Set("oauth.timeout_seconds", -5))
	require.NoError(t, store.Set("output.format", "yaml"))
	require.NoError(t, store.Set("ratelimit.drive.rps", -1.0))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.OAuth.RedirectPort, settings.OAuth.RedirectPort)
	assert.Equal(t, 0, settings.OAuth.TimeoutSeconds)
	assert.Equal(t, domain.OutputText, settings.Output)
	assert.Equal(t, defaults.RateLimits[domain.SurfaceDrive], settings.RateLimits[domain.SurfaceDrive])
	assert.NoError(t, settings.Validate())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"oauth.redirect_port", "8080", 8080},
		{"oauth.timeout_seconds", "0", 0},
		{"oauth.scopes", "a, b  c", []string{"a", "b", "c"}},
		{"output.format", "JSON", "json"},
		{"ratelimit.drive.rps", "2.5", 2.5},
		{"ratelimit.slides.burst", "7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			svc := NewSettingsService(store)

			require.NoError(t, svc.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_SetRejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"oauth.redirect_port", "http"},
		{"oauth.redirect_port", "0"},
		{"oauth.timeout_seconds", "-1"},
		{"oauth.scopes", " , "},
		{"output.format", "yaml"},
		{"ratelimit.drive.rps", "0"},
		{"ratelimit.drive.burst", "1.5"},
		{"ratelimit.gmail.rps", "1"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()

			err := NewSettingsService(store).Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_SetStoreError(t *testing.T) {
	store := memory.NewConfigStore()
	store.SetErr = errors.New("read-only file system")

	err := NewSettingsService(store).Set("output.format", "json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")
}

func TestSettingsService_Reset(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)
	require.NoError(t, svc.Set("output.format", "tsv"))

	require.NoError(t, svc.Reset("output.format"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.OutputText, settings.Output)
	assert.ErrorIs(t, svc.Reset("unknown.key"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(nil).Keys()

	assert.Len(t, keys, 4+2*len(domain.AllSurfaces()))
	assert.Contains(t, keys, "oauth.redirect_port")
	assert.Contains(t, keys, "ratelimit.docs.burst")
	assert.IsIncreasing(t, keys)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultAppSettings(), NewSettingsService(nil).GetDefaults())
}

func TestSettingsService_Values(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)
	require.NoError(t, svc.Set("ratelimit.slides.rps", "2.5"))
	require.NoError(t, svc.Set("oauth.scopes", domain.ScopeDrive+" "+domain.ScopeDocuments))

	values, err := svc.Values()

	require.NoError(t, err)
	assert.Len(t, values, len(svc.Keys()))
	for _, key := range svc.Keys() {
		assert.Contains(t, values, key)
	}
	assert.Equal(t, "3000", values["oauth.redirect_port"])
	assert.Equal(t, domain.ScopeDrive+","+domain.ScopeDocuments, values["oauth.scopes"])
	assert.Equal(t, "0", values["oauth.timeout_seconds"])
	assert.Equal(t, "text", values["output.format"])
	assert.Equal(t, "2.5", values["ratelimit.slides.rps"])
	assert.Equal(t, "10", values["ratelimit.slides.burst"])
}
