package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
)

// Ensure GoogleClient implements the interface.
var _ driven.OAuthClient = (*GoogleClient)(nil)

// GoogleClient talks to Google's OAuth2 endpoints for one flow configuration.
type GoogleClient struct {
	config      *oauth2.Config
	verifier    string
	httpClient  *http.Client
	userInfoURL string
}

// Option customises a GoogleClient.
type Option func(*GoogleClient)

// WithEndpoint overrides the authorisation and token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(c *GoogleClient) {
		c.config.Endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for token and userinfo requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *GoogleClient) {
		c.httpClient = client
	}
}

// WithUserInfoEndpoint overrides the base URL of the userinfo API.
func WithUserInfoEndpoint(baseURL string) Option {
	return func(c *GoogleClient) {
		c.userInfoURL = baseURL
	}
}

// RedirectURL returns the loopback redirect URI for port.
func RedirectURL(port int) string {
	return "http://localhost:" + strconv.Itoa(port)
}

// NewGoogleClient creates a client for cfg. Empty scopes and port are
// replaced with their defaults.
func NewGoogleClient(cfg domain.FlowConfig, opts ...Option) *GoogleClient {
	cfg = cfg.WithDefaults()

	c := &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     googleOAuth.Endpoint,
			RedirectURL:  RedirectURL(cfg.RedirectPort),
			Scopes:       cfg.Scopes,
		},
		verifier: oauth2.GenerateVerifier(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Factory returns a driven.OAuthClientFactory that applies opts to every
// client it creates.
func Factory(opts ...Option) driven.OAuthClientFactory {
	return func(cfg domain.FlowConfig) driven.OAuthClient {
		return NewGoogleClient(cfg, opts...)
	}
}

// AuthCodeURL builds the consent URL. Offline access and a forced consent
// prompt make Google issue a refresh token on every authorisation.
// The URL carries a PKCE challenge bound to this client.
func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(c.verifier),
	)
}

// Exchange trades an authorisation code for a token pair.
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*domain.TokenPair, error) {
	token, err := c.config.Exchange(c.withHTTPClient(ctx), code, oauth2.VerifierOption(c.verifier))
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.ErrorCode != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTokenExchange, describeRetrieveError(rerr))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}

	if token.RefreshToken == "" {
		return nil, domain.ErrNoRefreshToken
	}

	return &domain.TokenPair{
		RefreshToken: token.RefreshToken,
		AccessToken:  token.AccessToken,
	}, nil
}

// UserEmail asks the userinfo API which account the tokens belong to.
// An empty access token is refreshed first.
func (c *GoogleClient) UserEmail(ctx context.Context, tokens domain.TokenPair) (string, error) {
	ctx = c.withHTTPClient(ctx)
	ts := c.config.TokenSource(ctx, &oauth2.Token{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
	})

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if c.userInfoURL != "" {
		opts = append(opts, option.WithEndpoint(c.userInfoURL))
	}

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch user info: %w", err)
	}
	if strings.TrimSpace(info.Email) == "" {
		return "", errors.New("user info response has no email")
	}
	return info.Email, nil
}

// withHTTPClient makes x/oauth2 use the configured HTTP client.
func (c *GoogleClient) withHTTPClient(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func describeRetrieveError(err *oauth2.RetrieveError) string {
	if err.ErrorDescription != "" {
		return err.ErrorCode + " - " + err.ErrorDescription
	}
	return err.ErrorCode
}
