package driven

import "github.com/custodia-labs/gwcli/internal/core/domain"

// CredentialStore persists the OAuth2 application registration and the set
// of authorised accounts. It is the only component allowed to write them.
//
// Reads are served from an in-memory mirror loaded at construction. Every
// mutation rewrites the backing file synchronously before returning.
type CredentialStore interface {
	// SetCredentials overwrites the application registration.
	SetCredentials(clientID, clientSecret string) error

	// GetCredentials returns the application registration.
	// Returns false if none is stored or the stored record is incomplete.
	GetCredentials() (*domain.StoredCredentials, bool)

	// AddAccount inserts or replaces the account with the same email.
	AddAccount(account domain.Account) error

	// GetAccount returns a copy of the account for email.
	GetAccount(email string) (*domain.Account, bool)

	// HasAccount reports whether an account exists for email.
	HasAccount(email string) bool

	// GetAllAccounts returns copies of all accounts, ordered by email.
	GetAllAccounts() []domain.Account

	// DeleteAccount removes the account for email.
	// Returns true if an entry existed.
	DeleteAccount(email string) (bool, error)

	// DownloadsDir returns the default download directory, creating it if absent.
	DownloadsDir() (string, error)
}
