// Command gwcli works with Google Drive, Docs, Sheets and Slides from the
// command line and over MCP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/gwcli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gwcli/internal/adapters/driven/oauth"
	"github.com/custodia-labs/gwcli/internal/adapters/driving/cli"
	callback "github.com/custodia-labs/gwcli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/gwcli/internal/adapters/driving/tui"
	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/connectors/google/docs"
	"github.com/custodia-labs/gwcli/internal/connectors/google/drive"
	"github.com/custodia-labs/gwcli/internal/connectors/google/sheets"
	"github.com/custodia-labs/gwcli/internal/connectors/google/slides"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetServicesFactory(func(configDir string) (*cli.Services, error) {
		return buildServices(configDir, os.Stdin, os.Stderr)
	})

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires the file-backed stores, Google adapters and core
// services for configDir. Prompts and the authorisation URL go to out.
func buildServices(configDir string, in io.Reader, out io.Writer) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	credentials, err := file.NewCredentialStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	var opts google.Options
	driveService := drive.New(credentials, google.NewSurfaceRateLimiter(domain.SurfaceDrive, settings), opts)
	docsService := docs.New(credentials, google.NewSurfaceRateLimiter(domain.SurfaceDocs, settings), opts)
	sheetsService := sheets.New(credentials, google.NewSurfaceRateLimiter(domain.SurfaceSheets, settings), opts)
	slidesService := slides.New(credentials, google.NewSurfaceRateLimiter(domain.SurfaceSlides, settings), opts)

	accountService := services.NewAccountService(
		credentials,
		settingsService,
		oauth.Factory(),
		callback.ListenerFactory(callback.WithOutput(out)),
		tui.NewPrompter(in, out),
		driveService, docsService, sheetsService, slidesService,
	)

	return &cli.Services{
		Accounts:     accountService,
		Settings:     settingsService,
		Drive:        driveService,
		Docs:         docsService,
		Sheets:       sheetsService,
		Slides:       slidesService,
		ConfigDir:    credentials.ConfigDir(),
		DownloadsDir: credentials.DownloadsDir,
		Watch:        credentials.Watch,
	}, nil
}
