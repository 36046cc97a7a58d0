// Package cli implements the gwcli command tree.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// errNoServices is returned when a command runs before services are wired.
var errNoServices = errors.New("services not configured")

// Services holds the core services the commands drive. Surface services
// may be nil; commands for a nil surface fail with a clear error.
type Services struct {
	Accounts driving.AccountService
	Settings driving.SettingsService
	Drive    driving.DriveService
	Docs     driving.DocsService
	Sheets   driving.SheetsService
	Slides   driving.SlidesService

	// ConfigDir is the resolved configuration directory.
	ConfigDir string

	// DownloadsDir returns the default download directory.
	DownloadsDir func() (string, error)

	// Watch reloads stored accounts when they change on disk and then
	// calls onChange. Optional; used by the MCP server.
	Watch func(ctx context.Context, onChange func()) error
}

// ServicesFactory builds services for a configuration directory.
// An empty directory selects the default.
type ServicesFactory func(configDir string) (*Services, error)

var (
	svcs            *Services
	servicesFactory ServicesFactory
)

// Global flags.
var (
	configDir    string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "gwcli",
	Short: "Google Workspace from the command line",
	Long: `gwcli works with Google Drive, Docs, Sheets and Slides on behalf of one or
more authorised Google accounts.

Get started:
  gwcli auth setup          # store your OAuth client ID and secret
  gwcli account add         # authorise an account in the browser
  gwcli drive list -a you@example.com`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $GWCLI_HOME or ~/.gwcli)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "",
		"output format: text, json or tsv (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices injects ready-built services.
func SetServices(s *Services) {
	svcs = s
}

// SetServicesFactory registers a factory called once global flags are parsed.
func SetServicesFactory(f ServicesFactory) {
	servicesFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// getServices returns the injected services, building them on first use.
func getServices() (*Services, error) {
	if svcs != nil {
		return svcs, nil
	}
	if servicesFactory == nil {
		return nil, errNoServices
	}
	s, err := servicesFactory(configDir)
	if err != nil {
		return nil, err
	}
	svcs = s
	return svcs, nil
}
