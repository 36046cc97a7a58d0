// Package domain defines the core business entities for gwcli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Account: an authorised Google account and its OAuth2 material
//   - StoredCredentials: the OAuth2 application registration
//   - TokenPair: the result of one authorisation flow
//   - DriveFile, DocsDocument, Spreadsheet, Presentation: API surface results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
