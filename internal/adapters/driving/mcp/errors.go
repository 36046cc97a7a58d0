// Package mcp provides an MCP (Model Context Protocol) server adapter for gwcli.
// It lets AI assistants read Google Workspace content through the accounts
// gwcli has authorised.
package mcp

import "errors"

// ErrMissingAccountService is returned when the account service is not provided.
var ErrMissingAccountService = errors.New("mcp: account service is required")

// ErrAmbiguousAccount is returned when a tool call omits the account and
// more than one is stored.
var ErrAmbiguousAccount = errors.New("mcp: account is required when more than one is stored")

// ErrNoAccounts is returned when a tool call needs an account and none is stored.
var ErrNoAccounts = errors.New("mcp: no accounts stored, run 'gwcli account add'")
