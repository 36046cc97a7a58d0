package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// clientOptions builds the option set shared by every surface.
func clientOptions(ctx context.Context, account domain.Account, opts Options) []option.ClientOption {
	ts := NewTokenSource(ctx, account, opts)

	var clientOpts []option.ClientOption
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(oauth2.NewClient(opts.context(ctx), ts)))
	} else {
		clientOpts = append(clientOpts, option.WithTokenSource(ts))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	return clientOpts
}

// NewDriveService creates a Google Drive API service for account.
func NewDriveService(ctx context.Context, account domain.Account, opts Options) (*drive.Service, error) {
	return drive.NewService(ctx, clientOptions(ctx, account, opts)...)
}

// NewDocsService creates a Google Docs API service for account.
func NewDocsService(ctx context.Context, account domain.Account, opts Options) (*docs.Service, error) {
	return docs.NewService(ctx, clientOptions(ctx, account, opts)...)
}

// NewSheetsService creates a Google Sheets API service for account.
func NewSheetsService(ctx context.Context, account domain.Account, opts Options) (*sheets.Service, error) {
	return sheets.NewService(ctx, clientOptions(ctx, account, opts)...)
}

// NewSlidesService creates a Google Slides API service for account.
func NewSlidesService(ctx context.Context, account domain.Account, opts Options) (*slides.Service, error) {
	return slides.NewService(ctx, clientOptions(ctx, account, opts)...)
}
