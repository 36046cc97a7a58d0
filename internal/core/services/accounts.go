package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// Ensure AccountService implements the interface.
var _ driving.AccountService = (*AccountService)(nil)

// AccountService manages the application registration and authorised
// accounts. It runs authorisation flows and is the only caller that writes
// accounts to the credential store.
type AccountService struct {
	store        driven.CredentialStore
	settings     driving.SettingsService
	newClient    driven.OAuthClientFactory
	newListener  driven.ListenerFactory
	prompter     driven.RedirectReceiver
	invalidators []driven.CacheInvalidator
}

// NewAccountService creates a new account service. invalidators are told
// to drop cached handles whenever an account is added or removed.
func NewAccountService(
	store driven.CredentialStore,
	settings driving.SettingsService,
	newClient driven.OAuthClientFactory,
	newListener driven.ListenerFactory,
	prompter driven.RedirectReceiver,
	invalidators ...driven.CacheInvalidator,
) *AccountService {
	return &AccountService{
		store:        store,
		settings:     settings,
		newClient:    newClient,
		newListener:  newListener,
		prompter:     prompter,
		invalidators: invalidators,
	}
}

// Configure stores the OAuth2 application registration.
func (s *AccountService) Configure(clientID, clientSecret string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.SetCredentials(clientID, clientSecret); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	logger.Info("stored client credentials (client id %s)", logger.Redact(clientID))
	return nil
}

// Credentials returns the stored registration.
func (s *AccountService) Credentials() (*domain.StoredCredentials, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	creds, ok := s.store.GetCredentials()
	if !ok {
		return nil, domain.ErrNotConfigured
	}
	return creds, nil
}

// AuthURL returns an authorisation URL for the stored registration without
// starting a flow.
func (s *AccountService) AuthURL() (string, error) {
	cfg, err := s.flowConfig()
	if err != nil {
		return "", err
	}
	if s.newClient == nil {
		return "", domain.ErrNotImplemented
	}
	return NewAuthorizationFlow(cfg, s.newClient(cfg), nil, nil).AuthURL(), nil
}

// Add runs an authorisation flow and stores the resulting account,
// replacing any account with the same email.
func (s *AccountService) Add(ctx context.Context, opts driving.AddAccountOptions) (*domain.Account, error) {
	if s.newClient == nil {
		return nil, domain.ErrNotImplemented
	}
	creds, err := s.Credentials()
	if err != nil {
		return nil, err
	}
	cfg, err := s.flowConfig()
	if err != nil {
		return nil, err
	}

	client := s.newClient(cfg)
	var listener driven.RedirectReceiver
	if !opts.Manual && s.newListener != nil {
		listener = s.newListener(cfg.RedirectPort)
	}
	flow := NewAuthorizationFlow(cfg, client, listener, s.prompter)

	tokens, err := s.authorize(ctx, flow, opts.Manual)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(opts.Email)
	if email == "" {
		email, err = client.UserEmail(ctx, *tokens)
		if err != nil {
			return nil, fmt.Errorf("resolve account email (pass --email to skip): %w", err)
		}
	}

	account := domain.NewAccount(email, *creds, *tokens)
	if err := s.store.AddAccount(account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	s.clearCaches(account.Email)
	logger.Info("stored account %s", account.Email)

	return &account, nil
}

// List returns all accounts ordered by email.
func (s *AccountService) List() []domain.Account {
	if s.store == nil {
		return nil
	}
	return s.store.GetAllAccounts()
}

// Get returns the account for email.
func (s *AccountService) Get(email string) (*domain.Account, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	account, ok := s.store.GetAccount(email)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, email)
	}
	return account, nil
}

// Remove deletes the account for email and drops its cached handles.
func (s *AccountService) Remove(email string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	removed, err := s.store.DeleteAccount(email)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, email)
	}
	s.clearCaches(strings.TrimSpace(email))
	return nil
}

func (s *AccountService) flowConfig() (domain.FlowConfig, error) {
	creds, err := s.Credentials()
	if err != nil {
		return domain.FlowConfig{}, err
	}

	cfg := domain.FlowConfig{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
	}
	if s.settings != nil {
		settings, err := s.settings.Get()
		if err != nil {
			return domain.FlowConfig{}, err
		}
		cfg.Scopes = settings.OAuth.Scopes
		cfg.RedirectPort = settings.OAuth.RedirectPort
	}
	return cfg.WithDefaults(), nil
}

// authorize runs flow under the configured timeout. The deadline ends with
// the flow so later lookups are not cut short.
func (s *AccountService) authorize(ctx context.Context, flow *AuthorizationFlow, manual bool) (*domain.TokenPair, error) {
	if timeout := s.timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return flow.Authorize(ctx, manual)
}

func (s *AccountService) timeout() time.Duration {
	if s.settings == nil {
		return 0
	}
	settings, err := s.settings.Get()
	if err != nil {
		return 0
	}
	return time.Duration(settings.OAuth.TimeoutSeconds) * time.Second
}

func (s *AccountService) clearCaches(email string) {
	for _, inv := range s.invalidators {
		if inv != nil {
			inv.ClearCache(email)
		}
	}
}
