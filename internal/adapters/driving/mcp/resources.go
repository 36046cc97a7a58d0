package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for gwcli resources.
	uriScheme = "gwcli://"

	accountsURI = uriScheme + "accounts"
)

// accountInfo is the public view of an account. Tokens are never exposed.
type accountInfo struct {
	Email          string `json:"email"`
	HasAccessToken bool   `json:"has_access_token"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         accountsURI,
		Name:        "accounts",
		Description: "Google accounts gwcli is authorised for",
		MIMEType:    "application/json",
	}, s.handleAccountsResource)
}

// handleAccountsResource returns the authorised accounts as JSON.
func (s *Server) handleAccountsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	accounts := s.ports.Accounts.List()
	infos := make([]accountInfo, len(accounts))
	for i, a := range accounts {
		infos[i] = accountInfo{Email: a.Email, HasAccessToken: a.HasAccessToken()}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling accounts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
