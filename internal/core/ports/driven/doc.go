// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CredentialStore: application registration and account persistence
//   - ConfigStore: application settings
//   - OAuthClient: provider authorisation URL and code exchange
//   - RedirectReceiver: captures the provider redirect (local listener or manual paste)
//
// # Optional Interfaces
//
//   - CacheInvalidator: API surfaces holding per-account handles. Without
//     any, credential changes simply take effect on the next process.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
