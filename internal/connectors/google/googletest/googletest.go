// Package googletest provides a fake Google API server for surface tests.
package googletest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/custodia-labs/gwcli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// Email is the account stored by NewAccounts.
const Email = "alice@example.com"

// AccessToken is the bearer token issued by the fake token endpoint.
const AccessToken = "test-access-token"

// Server is an httptest server standing in for both the OAuth2 token
// endpoint and one Google API. Handlers are registered on Mux.
type Server struct {
	*httptest.Server
	Mux *http.ServeMux
}

// NewServer starts a server that answers refresh grants on /token and
// rejects API requests lacking the issued bearer token.
func NewServer(t *testing.T) *Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"access_token": AccessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	s := &Server{Mux: mux}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" && r.Header.Get("Authorization") != "Bearer "+AccessToken {
			WriteError(w, http.StatusUnauthorized, "authError", "missing bearer token")
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Options returns connector options pointing at the server.
func (s *Server) Options() google.Options {
	return google.Options{
		Endpoint:   s.URL + "/",
		TokenURL:   s.URL + "/token",
		HTTPClient: s.Client(),
	}
}

// NewAccounts returns an in-memory credential store holding Email.
func NewAccounts(t *testing.T) *memory.CredentialStore {
	t.Helper()

	store := memory.NewCredentialStore(t.TempDir())
	err := store.AddAccount(domain.Account{
		Email: Email,
		OAuth2: domain.OAuth2Credentials{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-token",
		},
	})
	if err != nil {
		t.Fatalf("add account: %v", err)
	}
	return store
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a Google API error envelope.
func WriteError(w http.ResponseWriter, status int, reason, message string) {
	WriteJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"errors": []map[string]any{
				{"reason": reason, "message": message},
			},
		},
	})
}
