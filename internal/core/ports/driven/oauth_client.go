package driven

import (
	"context"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// OAuthClient speaks the provider side of an installed-application
// authorisation-code flow. One client is bound to one FlowConfig.
type OAuthClient interface {
	// AuthCodeURL builds the provider authorisation URL for state.
	// Must not perform I/O.
	AuthCodeURL(state string) string

	// Exchange trades an authorisation code for tokens.
	// Provider rejections wrap domain.ErrTokenExchange; a response without a
	// refresh token wraps domain.ErrNoRefreshToken.
	Exchange(ctx context.Context, code string) (*domain.TokenPair, error)

	// UserEmail returns the address of the account the tokens belong to.
	UserEmail(ctx context.Context, tokens domain.TokenPair) (string, error)
}

// OAuthClientFactory creates an OAuthClient for a flow configuration.
type OAuthClientFactory func(cfg domain.FlowConfig) OAuthClient
