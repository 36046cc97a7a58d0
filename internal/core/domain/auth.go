package domain

// Google OAuth2 scopes requested by default.
const (
	ScopeDrive         = "https://www.googleapis.com/auth/drive"
	ScopeDocuments     = "https://www.googleapis.com/auth/documents"
	ScopeSpreadsheets  = "https://www.googleapis.com/auth/spreadsheets"
	ScopePresentations = "https://www.googleapis.com/auth/presentations"

	// ScopeUserInfoEmail lets gwcli look up the address of the account it
	// was just granted access to.
	ScopeUserInfoEmail = "https://www.googleapis.com/auth/userinfo.email"
)

// DefaultRedirectPort is the local port the redirect listener binds to.
const DefaultRedirectPort = 3000

var defaultScopes = []string{
	ScopeDrive,
	ScopeDocuments,
	ScopeSpreadsheets,
	ScopePresentations,
	ScopeUserInfoEmail,
}

// DefaultScopes returns a fresh copy of the default scope list.
func DefaultScopes() []string {
	scopes := make([]string, len(defaultScopes))
	copy(scopes, defaultScopes)
	return scopes
}

// TokenPair is the result of a successful authorisation.
// AccessToken is optional; RefreshToken is always set.
type TokenPair struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

// FlowConfig configures one authorisation flow.
type FlowConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
	RedirectPort int
}

// WithDefaults returns a copy with empty scopes and port filled in.
func (c FlowConfig) WithDefaults() FlowConfig {
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes()
	} else {
		scopes := make([]string, len(c.Scopes))
		copy(scopes, c.Scopes)
		c.Scopes = scopes
	}
	if c.RedirectPort <= 0 {
		c.RedirectPort = DefaultRedirectPort
	}
	return c
}

// FlowState is the position of an authorisation flow in its state machine.
type FlowState string

// Authorisation flow states, in order.
const (
	FlowStart    FlowState = "start"
	FlowListen   FlowState = "listen"
	FlowPrompt   FlowState = "prompt"
	FlowExtract  FlowState = "extract"
	FlowExchange FlowState = "exchange"
	FlowDone     FlowState = "done"
	FlowFailed   FlowState = "failed"
)

// IsTerminal returns true for Done and Failed.
func (s FlowState) IsTerminal() bool {
	return s == FlowDone || s == FlowFailed
}

// String returns the string representation.
func (s FlowState) String() string {
	return string(s)
}
