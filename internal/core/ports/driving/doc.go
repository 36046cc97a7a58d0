// Package driving defines interfaces that external actors (CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Account and settings services live in internal/core/services; the
// workspace surface services live in internal/connectors/google.
package driving
