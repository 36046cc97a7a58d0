package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

func account(email, refresh string) domain.Account {
	return domain.Account{
		Email: email,
		OAuth2: domain.OAuth2Credentials{
			ClientID:     "id",
			ClientSecret: "secret",
			RefreshToken: refresh,
		},
	}
}

func TestCredentialStore_Credentials(t *testing.T) {
	store := NewCredentialStore("")

	_, ok := store.GetCredentials()
	assert.False(t, ok)

	assert.ErrorIs(t, store.SetCredentials("", "secret"), domain.ErrInvalidInput)

	require.NoError(t, store.SetCredentials(" id ", "secret"))
	creds, ok := store.GetCredentials()
	require.True(t, ok)
	assert.Equal(t, "id", creds.ClientID)
}

func TestCredentialStore_Accounts(t *testing.T) {
	store := NewCredentialStore("/tmp/downloads")

	require.NoError(t, store.AddAccount(account("b@example.com", "b")))
	require.NoError(t, store.AddAccount(account("a@example.com", "a1")))
	require.NoError(t, store.AddAccount(account("a@example.com", "a2")))
	assert.ErrorIs(t, store.AddAccount(account("c@example.com", "")), domain.ErrInvalidInput)

	all := store.GetAllAccounts()
	require.Len(t, all, 2)
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "a2", all[0].OAuth2.RefreshToken)

	removed, err := store.DeleteAccount("b@example.com")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, store.HasAccount("b@example.com"))

	removed, err = store.DeleteAccount("b@example.com")
	require.NoError(t, err)
	assert.False(t, removed)

	dir, err := store.DownloadsDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/downloads", dir)
}
