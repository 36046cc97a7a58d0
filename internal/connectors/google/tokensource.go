package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// Options configures how API handles are built. The zero value talks to
// the production Google endpoints.
type Options struct {
	// Endpoint overrides the API base URL.
	Endpoint string
	// TokenURL overrides the OAuth2 token endpoint used for refreshes.
	TokenURL string
	// HTTPClient is the base client that OAuth2 credentials are layered on.
	HTTPClient *http.Client
}

// NewTokenSource creates an oauth2.TokenSource for a stored account.
// Access tokens are obtained from the refresh token on first use and
// refreshed by x/oauth2 when they expire. The stored access token carries
// no expiry and is not reused.
func NewTokenSource(ctx context.Context, account domain.Account, opts Options) oauth2.TokenSource {
	config := &oauth2.Config{
		ClientID:     account.OAuth2.ClientID,
		ClientSecret: account.OAuth2.ClientSecret,
		Endpoint:     googleOAuth.Endpoint,
	}
	if opts.TokenURL != "" {
		config.Endpoint.TokenURL = opts.TokenURL
	}

	return config.TokenSource(opts.context(ctx), &oauth2.Token{
		RefreshToken: account.OAuth2.RefreshToken,
	})
}

// context makes x/oauth2 use the configured base HTTP client.
func (o Options) context(ctx context.Context) context.Context {
	if o.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, o.HTTPClient)
}
