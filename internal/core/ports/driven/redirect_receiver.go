package driven

import "context"

// RedirectReceiver captures the URL the provider redirected the user's
// browser to after consent.
type RedirectReceiver interface {
	// Receive blocks until a redirect is captured or ctx is done.
	// authURL is the URL the user must visit. The returned string is the
	// full redirect URL, including its query.
	Receive(ctx context.Context, authURL string) (string, error)
}

// ListenerFactory creates a receiver bound to a local port.
type ListenerFactory func(port int) RedirectReceiver

// CacheInvalidator drops per-account state derived from stored credentials.
type CacheInvalidator interface {
	// ClearCache evicts cached handles for email.
	// An empty email evicts all handles.
	ClearCache(email string)
}
