package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gwcli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for gwcli.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu    sync.Mutex
	known map[string]struct{}
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingAccountService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "gwcli",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
		known:  make(map[string]struct{}),
	}
	s.rememberAccounts()

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.startWatch(ctx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	s.startWatch(ctx)

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// startWatch follows the credential store so accounts added or removed by
// another gwcli process are picked up without a restart.
func (s *Server) startWatch(ctx context.Context) {
	if s.ports.Watch == nil {
		return
	}
	go func() {
		if err := s.ports.Watch(ctx, s.accountsChanged); err != nil && ctx.Err() == nil {
			logger.Warn("mcp: watching accounts: %v", err)
		}
	}()
}

// accountsChanged drops cached handles for every account seen before or
// after the change. A re-added account may carry a new refresh token.
func (s *Server) accountsChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]struct{})
	for _, a := range s.ports.Accounts.List() {
		current[a.Email] = struct{}{}
	}
	for email := range s.known {
		s.ports.clearCaches(email)
	}
	for email := range current {
		if _, seen := s.known[email]; !seen {
			s.ports.clearCaches(email)
		}
	}
	s.known = current
	logger.Debug("mcp: accounts reloaded (%d)", len(current))
}

func (s *Server) rememberAccounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.ports.Accounts.List() {
		s.known[a.Email] = struct{}{}
	}
}
