// Package google provides shared infrastructure for the Google Workspace
// surfaces (drive, docs, sheets, slides):
//   - ClientCache: per-account API handles built on first use
//   - Token sources that refresh access tokens from a stored refresh token
//   - Service factories for creating Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each surface package builds a cache of API handles keyed by account email:
//
//	cache := google.NewClientCache(store, func(ctx context.Context, a domain.Account) (*drive.Service, error) {
//		return google.NewDriveService(ctx, a, google.Options{})
//	})
//	svc, err := cache.Get(ctx, "alice@example.com")
package google
