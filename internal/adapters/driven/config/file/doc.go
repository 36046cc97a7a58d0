// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the gwcli configuration directory
// (~/.gwcli by default).
//
// Adapters:
//   - ConfigStore: TOML-based settings storage (config.toml)
//   - CredentialStore: JSON-based application registration and account
//     persistence (credentials.json, accounts.json)
package file
