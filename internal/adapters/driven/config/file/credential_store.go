package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is a JSON file implementation of driven.CredentialStore.
//
// The application registration lives in credentials.json and is read on every
// call. The account set lives in accounts.json and is mirrored in memory;
// every mutation rewrites the whole file before returning.
type CredentialStore struct {
	mu       sync.RWMutex
	dir      string
	accounts map[string]domain.Account
}

// NewCredentialStore opens the store in configDir, creating the directory if
// needed. If configDir is empty, defaults to DefaultConfigDir().
// A missing or corrupt accounts file yields an empty account set.
func NewCredentialStore(configDir string) (*CredentialStore, error) {
	configDir, err := resolveConfigDir(configDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &CredentialStore{dir: configDir}
	s.accounts = s.loadAccounts()
	return s, nil
}

// ConfigDir returns the configuration directory.
func (s *CredentialStore) ConfigDir() string {
	return s.dir
}

// CredentialsPath returns the path of credentials.json.
func (s *CredentialStore) CredentialsPath() string {
	return filepath.Join(s.dir, credentialsFileName)
}

// AccountsPath returns the path of accounts.json.
func (s *CredentialStore) AccountsPath() string {
	return filepath.Join(s.dir, accountsFileName)
}

// DownloadsDir returns the default download directory, creating it if absent.
func (s *CredentialStore) DownloadsDir() (string, error) {
	dir := filepath.Join(s.dir, downloadsDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}
	return dir, nil
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

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.CredentialsPath(), data, 0600)
}

// GetCredentials returns the application registration.
// An absent, unreadable or incomplete file is reported as not found.
func (s *CredentialStore) GetCredentials() (*domain.StoredCredentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.CredentialsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read %s: %v", credentialsFileName, err)
		}
		return nil, false
	}

	var creds domain.StoredCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		logger.Warn("parse %s: %v", credentialsFileName, err)
		return nil, false
	}
	if !creds.Valid() {
		return nil, false
	}
	return &creds, true
}

// AddAccount inserts the account or replaces the one with the same email.
func (s *CredentialStore) AddAccount(account domain.Account) error {
	account.Email = strings.TrimSpace(account.Email)
	if !account.Valid() {
		return fmt.Errorf("%w: account requires email, client id, client secret and refresh token", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.accounts[account.Email]
	s.accounts[account.Email] = account
	if err := s.saveAccounts(); err != nil {
		if existed {
			s.accounts[account.Email] = previous
		} else {
			delete(s.accounts, account.Email)
		}
		return err
	}
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

	return sortedAccounts(s.accounts)
}

// DeleteAccount removes the account for email and reports whether it existed.
func (s *CredentialStore) DeleteAccount(email string) (bool, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[email]
	if !ok {
		return false, nil
	}
	delete(s.accounts, email)
	if err := s.saveAccounts(); err != nil {
		s.accounts[email] = account
		return false, err
	}
	return true, nil
}

// Reload re-reads accounts.json with the same lenient policy as construction.
func (s *CredentialStore) Reload() error {
	accounts := s.loadAccounts()

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()

	logger.Debug("reloaded %d account(s) from %s", len(accounts), accountsFileName)
	return nil
}

// Watch blocks until ctx is done, reloading the account set whenever
// accounts.json or credentials.json changes on disk and then calling onChange.
func (s *CredentialStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic writes replace the files by rename.
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isStoreEvent(event) {
				continue
			}
			logger.Debug("%s changed (%s)", filepath.Base(event.Name), event.Op)
			if err := s.Reload(); err != nil {
				logger.Warn("reload accounts: %v", err)
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher: %v", err)
		}
	}
}

func isStoreEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if name != accountsFileName && name != credentialsFileName {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// loadAccounts reads accounts.json. Anything that is not a JSON array yields
// an empty set; elements that fail to decode or are incomplete are skipped.
func (s *CredentialStore) loadAccounts() map[string]domain.Account {
	accounts := make(map[string]domain.Account)

	data, err := os.ReadFile(s.AccountsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read %s: %v", accountsFileName, err)
		}
		return accounts
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("parse %s: %v", accountsFileName, err)
		return accounts
	}

	for i, elem := range raw {
		var account domain.Account
		if err := json.Unmarshal(elem, &account); err != nil {
			logger.Warn("skipping account entry %d: %v", i, err)
			continue
		}
		account.Email = strings.TrimSpace(account.Email)
		if !account.Valid() {
			logger.Warn("skipping incomplete account entry %d", i)
			continue
		}
		accounts[account.Email] = account
	}
	return accounts
}

// saveAccounts writes the account set (caller must hold lock).
func (s *CredentialStore) saveAccounts() error {
	data, err := json.MarshalIndent(sortedAccounts(s.accounts), "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.AccountsPath(), data, 0600)
}

func sortedAccounts(m map[string]domain.Account) []domain.Account {
	result := make([]domain.Account, 0, len(m))
	for _, account := range m {
		result = append(result, account)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Email < result[j].Email
	})
	return result
}
