package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore
// for testing. It applies the same validation as the file store.
type CredentialStore struct {
	mu           sync.RWMutex
	credentials  *domain.StoredCredentials
	accounts     map[string]domain.Account
	downloadsDir string
}

// NewCredentialStore creates an empty in-memory credential store.
// downloadsDir is returned by DownloadsDir as-is.
func NewCredentialStore(downloadsDir string) *CredentialStore {
	return &CredentialStore{
		accounts:     make(map[string]domain.Account),
		downloadsDir: downloadsDir,
	}
}

// SetCredentials overwrites the application registration.
func (s *CredentialStore) SetCredentials(clientID, clientSecret string) error {
	creds := domain.StoredCredentials{
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
	}
	if !creds.Valid() {
		return fmt.Errorf("%w: client id and client secret are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = &creds
	return nil
}

// GetCredentials returns the application registration.
func (s *CredentialStore) GetCredentials() (*domain.StoredCredentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credentials == nil {
		return nil, false
	}
	creds := *s.credentials
	return &creds, true
}

// AddAccount inserts or replaces the account with the same email.
func (s *CredentialStore) AddAccount(account domain.Account) error {
	account.Email = strings.TrimSpace(account.Email)
	if !account.Valid() {
		return fmt.Errorf("%w: incomplete account", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Email] = account
	return nil
}

// GetAccount returns a copy of the account for email.
func (s *CredentialStore) GetAccount(email string) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[strings.TrimSpace(email)]
	if !ok {
		return nil, false
	}
	return &account, true
}

// HasAccount reports whether an account exists for email.
func (s *CredentialStore) HasAccount(email string) bool {
	_, ok := s.GetAccount(email)
	return ok
}

// GetAllAccounts returns all accounts ordered by email.
func (s *CredentialStore) GetAllAccounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		result = append(result, account)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Email < result[j].Email
	})
	return result
}

// DeleteAccount removes the account for email and reports whether it existed.
func (s *CredentialStore) DeleteAccount(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.TrimSpace(email)
	if _, ok := s.accounts[email]; !ok {
		return false, nil
	}
	delete(s.accounts, email)
	return true, nil
}

// DownloadsDir returns the directory given at construction.
func (s *CredentialStore) DownloadsDir() (string, error) {
	return s.downloadsDir, nil
}
