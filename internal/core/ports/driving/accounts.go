package driving

import (
	"context"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// AddAccountOptions controls how an account is authorised.
type AddAccountOptions struct {
	// Email names the account. When empty the address is looked up from
	// the provider after the token exchange.
	Email string

	// Manual skips the local redirect listener and asks the user to paste
	// the redirect URL instead.
	Manual bool
}

// AccountService manages the OAuth2 application registration and the
// authorised accounts.
type AccountService interface {
	// Configure stores the OAuth2 application registration.
	Configure(clientID, clientSecret string) error

	// Credentials returns the stored registration or domain.ErrNotConfigured.
	Credentials() (*domain.StoredCredentials, error)

	// AuthURL returns an authorisation URL for the stored registration.
	AuthURL() (string, error)

	// Add runs an authorisation flow and stores the resulting account.
	Add(ctx context.Context, opts AddAccountOptions) (*domain.Account, error)

	// List returns all accounts ordered by email.
	List() []domain.Account

	// Get returns one account or domain.ErrAccountNotFound.
	Get(email string) (*domain.Account, error)

	// Remove deletes one account or returns domain.ErrAccountNotFound.
	Remove(email string) error
}
