package google

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
)

// Ensure ClientCache can be registered for invalidation.
var _ driven.CacheInvalidator = (*ClientCache[any])(nil)

// AccountLookup resolves an account by email. driven.CredentialStore
// satisfies it.
type AccountLookup interface {
	GetAccount(email string) (*domain.Account, bool)
}

// Constructor builds an authenticated API handle for an account.
type Constructor[T any] func(ctx context.Context, account domain.Account) (T, error)

// ClientCache holds one API handle per account email for a single API
// surface. Handles are built on first use and kept until cleared.
type ClientCache[T any] struct {
	mu       sync.Mutex
	accounts AccountLookup
	build    Constructor[T]
	clients  map[string]T
}

// NewClientCache creates an empty cache.
func NewClientCache[T any](accounts AccountLookup, build Constructor[T]) *ClientCache[T] {
	return &ClientCache[T]{
		accounts: accounts,
		build:    build,
		clients:  make(map[string]T),
	}
}

// Get returns the cached handle for email, building it on first use.
// Returns domain.ErrAccountNotFound if the account is not stored.
//
// The handle outlives ctx: token refreshes made later by a cached handle
// must not fail because the request that created it has finished.
func (c *ClientCache[T]) Get(ctx context.Context, email string) (T, error) {
	email = strings.TrimSpace(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[email]; ok {
		return client, nil
	}

	var zero T
	if c.accounts == nil || c.build == nil {
		return zero, domain.ErrNotImplemented
	}

	account, ok := c.accounts.GetAccount(email)
	if !ok {
		return zero, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, email)
	}

	client, err := c.build(context.WithoutCancel(ctx), *account)
	if err != nil {
		return zero, fmt.Errorf("create client for %s: %w", email, err)
	}

	c.clients[email] = client
	return client, nil
}

// Clear evicts the handle for email.
func (c *ClientCache[T]) Clear(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, strings.TrimSpace(email))
}

// ClearAll evicts every handle.
func (c *ClientCache[T]) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients = make(map[string]T)
}

// ClearCache evicts the handle for email, or every handle when email is empty.
func (c *ClientCache[T]) ClearCache(email string) {
	if email == "" {
		c.ClearAll()
		return
	}
	c.Clear(email)
}

// Len returns the number of cached handles.
func (c *ClientCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
