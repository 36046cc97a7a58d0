package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

func testConfig() domain.FlowConfig {
	return domain.FlowConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectPort: 3456,
	}
}

// fakeGoogle serves the token and userinfo endpoints.
type fakeGoogle struct {
	tokenStatus   int
	tokenResponse map[string]any
	lastForm      url.Values
	userEmail     string
	lastAuth      string
}

func (f *fakeGoogle) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.lastForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		status := f.tokenStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(f.tokenResponse)
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"email": f.userEmail})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *GoogleClient {
	return NewGoogleClient(testConfig(),
		WithEndpoint(oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}),
		WithHTTPClient(srv.Client()),
		WithUserInfoEndpoint(srv.URL+"/"),
	)
}

func TestGoogleClient_AuthCodeURL(t *testing.T) {
	client := NewGoogleClient(testConfig())

	raw := client.AuthCodeURL("state-123")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "http://localhost:3456", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), domain.ScopeDrive+" "+domain.ScopeDocuments)
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotContains(t, raw, "test-secret")
	assert.Equal(t, raw, client.AuthCodeURL("state-123"))
}

func TestGoogleClient_AuthCodeURLDefaultPort(t *testing.T) {
	client := NewGoogleClient(domain.FlowConfig{ClientID: "id", ClientSecret: "secret"})

	u, err := url.Parse(client.AuthCodeURL("s"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", u.Query().Get("redirect_uri"))
}

func TestGoogleClient_Exchange(t *testing.T) {
	fake := &fakeGoogle{tokenResponse: map[string]any{
		"access_token":  "access-1",
		"refresh_token": "refresh-1",
		"token_type":    "Bearer",
		"expires_in":    3600,
	}}
	srv := fake.server(t)

	tokens, err := newTestClient(srv).Exchange(context.Background(), "auth-code")

	require.NoError(t, err)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)
	assert.Equal(t, "access-1", tokens.AccessToken)
	assert.Equal(t, "authorization_code", fake.lastForm.Get("grant_type"))
	assert.Equal(t, "auth-code", fake.lastForm.Get("code"))
	assert.Equal(t, "http://localhost:3456", fake.lastForm.Get("redirect_uri"))
	assert.Equal(t, "test-client", fake.lastForm.Get("client_id"))
	assert.NotEmpty(t, fake.lastForm.Get("code_verifier"))
}

func TestGoogleClient_ExchangeNoRefreshToken(t *testing.T) {
	fake := &fakeGoogle{tokenResponse: map[string]any{
		"access_token": "access-1",
		"token_type":   "Bearer",
	}}
	srv := fake.server(t)

	_, err := newTestClient(srv).Exchange(context.Background(), "auth-code")

	assert.ErrorIs(t, err, domain.ErrNoRefreshToken)
}

func TestGoogleClient_ExchangeRejected(t *testing.T) {
	fake := &fakeGoogle{
		tokenStatus: http.StatusBadRequest,
		tokenResponse: map[string]any{
			"error":             "invalid_grant",
			"error_description": "Malformed auth code.",
		},
	}
	srv := fake.server(t)

	_, err := newTestClient(srv).Exchange(context.Background(), "bad-code")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenExchange)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Contains(t, err.Error(), "Malformed auth code.")
}

func TestGoogleClient_ExchangeUnreachable(t *testing.T) {
	fake := &fakeGoogle{}
	srv := fake.server(t)
	client := newTestClient(srv)
	srv.Close()

	_, err := client.Exchange(context.Background(), "code")

	assert.ErrorIs(t, err, domain.ErrTokenExchange)
}

func TestGoogleClient_UserEmail(t *testing.T) {
	fake := &fakeGoogle{userEmail: "alice@example.com"}
	srv := fake.server(t)

	email, err := newTestClient(srv).UserEmail(context.Background(), domain.TokenPair{
		RefreshToken: "refresh-1",
		AccessToken:  "access-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
	assert.Equal(t, "Bearer access-1", fake.lastAuth)
}

func TestGoogleClient_UserEmailRefreshesMissingAccessToken(t *testing.T) {
	fake := &fakeGoogle{
		userEmail: "bob@example.com",
		tokenResponse: map[string]any{
			"access_token": "fresh-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		},
	}
	srv := fake.server(t)

	email, err := newTestClient(srv).UserEmail(context.Background(), domain.TokenPair{RefreshToken: "refresh-1"})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
	assert.Equal(t, "refresh_token", fake.lastForm.Get("grant_type"))
	assert.Equal(t, "Bearer fresh-access", fake.lastAuth)
}

func TestGoogleClient_UserEmailEmpty(t *testing.T) {
	fake := &fakeGoogle{}
	srv := fake.server(t)

	_, err := newTestClient(srv).UserEmail(context.Background(), domain.TokenPair{
		RefreshToken: "r",
		AccessToken:  "a",
	})

	assert.Error(t, err)
}

func TestFactory(t *testing.T) {
	factory := Factory()

	client := factory(testConfig())

	assert.Contains(t, client.AuthCodeURL("s"), "client_id=test-client")
}
