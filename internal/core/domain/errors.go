package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a service was built without a required dependency.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotConfigured indicates no OAuth2 application credentials have been set.
	// Accounts cannot be added until `gwcli auth setup` has been run.
	ErrNotConfigured = errors.New("credentials not configured")

	// ErrAccountNotFound indicates the requested email has no stored account.
	ErrAccountNotFound = errors.New("account not found")

	// Authorisation Errors.

	// ErrAuthorizationDenied indicates the provider redirect carried no code,
	// usually because the user declined consent.
	ErrAuthorizationDenied = errors.New("authorization denied: no code in redirect")

	// ErrInvalidRedirect indicates the captured redirect is neither a URL
	// nor contains a recoverable code= fragment.
	ErrInvalidRedirect = errors.New("invalid redirect URL")

	// ErrTokenExchange indicates the provider rejected the authorization code.
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrNoRefreshToken indicates the exchange succeeded but the provider
	// did not issue a refresh token.
	ErrNoRefreshToken = errors.New("no refresh token received")

	// ErrAuthorizationCancelled indicates the flow was aborted before a
	// redirect arrived (interrupt or timeout).
	ErrAuthorizationCancelled = errors.New("authorization cancelled")

	// ErrFlowConsumed indicates an authorisation flow was run twice.
	// A new flow must be constructed to retry.
	ErrFlowConsumed = errors.New("authorization flow already used")
)
