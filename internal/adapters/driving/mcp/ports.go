package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
// Surface services are optional; tools for a nil surface are not registered.
type Ports struct {
	// Accounts lists and resolves authorised accounts.
	Accounts driving.AccountService

	Drive  driving.DriveService
	Docs   driving.DocsService
	Sheets driving.SheetsService
	Slides driving.SlidesService

	// Watch reloads stored accounts when they change on disk and calls
	// onChange afterwards. Optional.
	Watch func(ctx context.Context, onChange func()) error
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Accounts == nil {
		return ErrMissingAccountService
	}
	return nil
}

// resolveAccount returns email, or the only stored account when email is empty.
func (p *Ports) resolveAccount(email string) (string, error) {
	if email = strings.TrimSpace(email); email != "" {
		return email, nil
	}
	accounts := p.Accounts.List()
	switch len(accounts) {
	case 0:
		return "", ErrNoAccounts
	case 1:
		return accounts[0].Email, nil
	default:
		return "", ErrAmbiguousAccount
	}
}

// clearCaches drops cached API handles for email on every surface.
func (p *Ports) clearCaches(email string) {
	if p.Drive != nil {
		p.Drive.ClearCache(email)
	}
	if p.Docs != nil {
		p.Docs.ClearCache(email)
	}
	if p.Sheets != nil {
		p.Sheets.ClearCache(email)
	}
	if p.Slides != nil {
		p.Slides.ClearCache(email)
	}
}
