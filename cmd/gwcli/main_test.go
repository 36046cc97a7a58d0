package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildServices(t *testing.T) {
	dir := t.TempDir()

	s, err := buildServices(dir, strings.NewReader(""), new(bytes.Buffer))

	require.NoError(t, err)
	assert.Equal(t, dir, s.ConfigDir)
	assert.NotNil(t, s.Accounts)
	assert.NotNil(t, s.Settings)
	assert.NotNil(t, s.Drive)
	assert.NotNil(t, s.Docs)
	assert.NotNil(t, s.Sheets)
	assert.NotNil(t, s.Slides)
	assert.NotNil(t, s.Watch)
	assert.Empty(t, s.Accounts.List())

	downloads, err := s.DownloadsDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(downloads, dir))
}

func TestBuildServices_ConfigureRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := buildServices(dir, strings.NewReader(""), new(bytes.Buffer))
	require.NoError(t, err)
	require.NoError(t, s.Accounts.Configure("client-id", "client-secret"))

	reopened, err := buildServices(dir, strings.NewReader(""), new(bytes.Buffer))
	require.NoError(t, err)
	creds, err := reopened.Accounts.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "client-id", creds.ClientID)
}
