package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// AuthorizationFlow runs one OAuth2 authorisation-code flow for one account.
// It produces a token pair and never touches the credential store.
//
// A flow completes at most one authorisation. To retry, build a new flow,
// which also generates a new state and authorisation URL.
type AuthorizationFlow struct {
	cfg      domain.FlowConfig
	client   driven.OAuthClient
	listener driven.RedirectReceiver
	prompter driven.RedirectReceiver

	state   string
	authURL string

	mu        sync.Mutex
	flowState domain.FlowState
	used      bool
}

// NewAuthorizationFlow creates a flow. listener serves Authorize(ctx, false)
// and prompter serves Authorize(ctx, true); either may be nil if that mode
// is never used.
func NewAuthorizationFlow(
	cfg domain.FlowConfig,
	client driven.OAuthClient,
	listener driven.RedirectReceiver,
	prompter driven.RedirectReceiver,
) *AuthorizationFlow {
	state := uuid.NewString()
	var authURL string
	if client != nil {
		authURL = client.AuthCodeURL(state)
	}

	return &AuthorizationFlow{
		cfg:       cfg.WithDefaults(),
		client:    client,
		listener:  listener,
		prompter:  prompter,
		state:     state,
		authURL:   authURL,
		flowState: domain.FlowStart,
	}
}

// AuthURL returns the provider authorisation URL. Repeated calls on one flow
// return the same string.
func (f *AuthorizationFlow) AuthURL() string {
	return f.authURL
}

// StateParam returns the random state parameter embedded in AuthURL.
func (f *AuthorizationFlow) StateParam() string {
	return f.state
}

// State returns the current position in the state machine.
func (f *AuthorizationFlow) State() domain.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flowState
}

// Config returns the effective flow configuration.
func (f *AuthorizationFlow) Config() domain.FlowConfig {
	return f.cfg
}

// ExchangeCode trades an authorisation code for a token pair.
// A pair without a refresh token is rejected with domain.ErrNoRefreshToken.
func (f *AuthorizationFlow) ExchangeCode(ctx context.Context, code string) (*domain.TokenPair, error) {
	if f.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", domain.ErrInvalidInput)
	}

	tokens, err := f.client.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExchange) || errors.Is(err, domain.ErrNoRefreshToken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}
	if tokens == nil || tokens.RefreshToken == "" {
		return nil, domain.ErrNoRefreshToken
	}

	return &domain.TokenPair{
		RefreshToken: tokens.RefreshToken,
		AccessToken:  tokens.AccessToken,
	}, nil
}

// Authorize runs Start, Listen or Prompt, Extract, Exchange and Done in order.
// With manual set the user pastes the redirect URL; otherwise a local
// listener captures it. Cancelling ctx aborts the wait with
// domain.ErrAuthorizationCancelled. A second call returns domain.ErrFlowConsumed.
func (f *AuthorizationFlow) Authorize(ctx context.Context, manual bool) (*domain.TokenPair, error) {
	f.mu.Lock()
	if f.used {
		f.mu.Unlock()
		return nil, domain.ErrFlowConsumed
	}
	f.used = true
	f.mu.Unlock()

	logger.Section("Authorization")
	logger.Debug("auth URL: %s", f.authURL)

	receiver, next := f.listener, domain.FlowListen
	if manual {
		receiver, next = f.prompter, domain.FlowPrompt
	}
	if f.client == nil || receiver == nil {
		return nil, f.fail(fmt.Errorf("%w: no %s receiver configured", domain.ErrNotImplemented, next))
	}

	f.transition(next)
	redirect, err := receiver.Receive(ctx, f.authURL)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, f.fail(fmt.Errorf("%w: %v", domain.ErrAuthorizationCancelled, err))
		}
		return nil, f.fail(err)
	}

	f.transition(domain.FlowExtract)
	code, err := ExtractCodeFromURL(redirect)
	if err != nil {
		return nil, f.fail(err)
	}
	if err := f.checkState(redirect); err != nil {
		return nil, f.fail(err)
	}

	f.transition(domain.FlowExchange)
	tokens, err := f.ExchangeCode(ctx, code)
	if err != nil {
		if ctx.Err() != nil {
			return nil, f.fail(fmt.Errorf("%w: %v", domain.ErrAuthorizationCancelled, err))
		}
		return nil, f.fail(err)
	}

	f.transition(domain.FlowDone)
	return tokens, nil
}

// checkState rejects a redirect whose state parameter belongs to another
// flow. Redirects without a state (pasted fragments) are accepted.
func (f *AuthorizationFlow) checkState(redirect string) error {
	u, err := url.Parse(strings.TrimSpace(redirect))
	if err != nil || !u.IsAbs() {
		return nil
	}
	got := u.Query().Get("state")
	if got != "" && got != f.state {
		return fmt.Errorf("%w: state mismatch", domain.ErrInvalidRedirect)
	}
	return nil
}

func (f *AuthorizationFlow) transition(to domain.FlowState) {
	f.mu.Lock()
	from := f.flowState
	f.flowState = to
	f.mu.Unlock()
	logger.Debug("authorization: %s -> %s", from, to)
}

func (f *AuthorizationFlow) fail(err error) error {
	f.transition(domain.FlowFailed)
	logger.Debug("authorization failed: %v", err)
	return err
}

// ExtractCodeFromURL returns the percent-decoded code parameter of a
// redirect URL.
//
// An absolute URL without a code fails with domain.ErrAuthorizationDenied,
// carrying the provider's error parameter when present. A string that is not
// an absolute URL but contains "code=" yields the text after it, up to the
// next '&' or '#'. Anything else fails with domain.ErrInvalidRedirect.
func ExtractCodeFromURL(redirect string) (string, error) {
	redirect = strings.TrimSpace(redirect)

	if u, err := url.Parse(redirect); err == nil && u.IsAbs() && u.Host != "" {
		q := u.Query()
		if code := q.Get("code"); code != "" {
			return code, nil
		}
		if reason := q.Get("error"); reason != "" {
			return "", fmt.Errorf("%w (%s)", domain.ErrAuthorizationDenied, reason)
		}
		return "", domain.ErrAuthorizationDenied
	}

	idx := strings.Index(redirect, "code=")
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRedirect, redirect)
	}

	code := redirect[idx+len("code="):]
	if end := strings.IndexAny(code, "&#"); end >= 0 {
		code = code[:end]
	}
	if decoded, err := url.QueryUnescape(code); err == nil {
		code = decoded
	}
	if code == "" {
		return "", fmt.Errorf("%w: empty code", domain.ErrInvalidRedirect)
	}
	return code, nil
}
