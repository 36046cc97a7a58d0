package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a read-only Model Context Protocol server so AI assistants can list
Drive files and read Docs, Sheets and Slides through your authorised accounts.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, for example to test with MCP Inspector.

Accounts added or removed while the server runs are picked up automatically.

Examples:
  gwcli mcp serve
  gwcli mcp serve --port 8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "gwcli": {
        "command": "/path/to/gwcli",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Accounts == nil {
		return errors.New("account service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Accounts: s.Accounts,
		Drive:    s.Drive,
		Docs:     s.Docs,
		Sheets:   s.Sheets,
		Slides:   s.Slides,
		Watch:    s.Watch,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf("localhost:%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
