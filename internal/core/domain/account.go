package domain

import "strings"

// OAuth2Credentials holds the OAuth2 material for one account.
// ClientID and ClientSecret are copied from StoredCredentials when the
// account is added and are not changed afterwards.
type OAuth2Credentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

// Account is an authorised Google account, keyed by email.
type Account struct {
	Email  string            `json:"email"`
	OAuth2 OAuth2Credentials `json:"oauth2"`
}

// Valid reports whether the account carries every required field.
// Invalid accounts are skipped when the account set is loaded.
func (a Account) Valid() bool {
	return strings.TrimSpace(a.Email) != "" &&
		a.OAuth2.ClientID != "" &&
		a.OAuth2.ClientSecret != "" &&
		a.OAuth2.RefreshToken != ""
}

// HasAccessToken returns true if a short-lived access token was stored.
func (a Account) HasAccessToken() bool {
	return a.OAuth2.AccessToken != ""
}

// StoredCredentials is the OAuth2 application registration.
// Exactly one exists per configuration directory.
type StoredCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// Valid reports whether both fields are present.
func (c StoredCredentials) Valid() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// NewAccount builds an account from the application registration and the
// token pair returned by an authorisation flow.
func NewAccount(email string, creds StoredCredentials, tokens TokenPair) Account {
	return Account{
		Email: strings.TrimSpace(email),
		OAuth2: OAuth2Credentials{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RefreshToken: tokens.RefreshToken,
			AccessToken:  tokens.AccessToken,
		},
	}
}
