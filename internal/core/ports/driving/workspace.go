package driving

import (
	"context"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// DriveService issues Google Drive requests on behalf of an account.
type DriveService interface {
	List(ctx context.Context, email string, opts domain.DriveListOptions) (*domain.DriveFileList, error)
	Get(ctx context.Context, email, fileID string) (*domain.DriveFile, error)
	// Download writes the file into destDir and returns the written path.
	// Google-native files are exported.
	Download(ctx context.Context, email, fileID, destDir string) (string, error)
	Upload(ctx context.Context, email, localPath, parentID string) (*domain.DriveFile, error)
	CreateFolder(ctx context.Context, email, name, parentID string) (*domain.DriveFile, error)
	Delete(ctx context.Context, email, fileID string) error
	ClearCache(email string)
}

// DocsService issues Google Docs requests on behalf of an account.
type DocsService interface {
	Get(ctx context.Context, email, documentID string) (*domain.DocsDocument, error)
	Create(ctx context.Context, email, title string) (*domain.DocsDocument, error)
	AppendText(ctx context.Context, email, documentID, text string) error
	// ReplaceText replaces every match of find and returns the number replaced.
	ReplaceText(ctx context.Context, email, documentID, find, replace string) (int64, error)
	ClearCache(email string)
}

// SheetsService issues Google Sheets requests on behalf of an account.
type SheetsService interface {
	Get(ctx context.Context, email, spreadsheetID string) (*domain.Spreadsheet, error)
	Read(ctx context.Context, email, spreadsheetID, area string) (*domain.ValueRange, error)
	Write(ctx context.Context, email, spreadsheetID, area string, rows [][]string) (*domain.UpdateResult, error)
	Append(ctx context.Context, email, spreadsheetID, area string, rows [][]string) (*domain.UpdateResult, error)
	Clear(ctx context.Context, email, spreadsheetID, area string) error
	Create(ctx context.Context, email, title string) (*domain.Spreadsheet, error)
	ClearCache(email string)
}

// SlidesService issues Google Slides requests on behalf of an account.
type SlidesService interface {
	Get(ctx context.Context, email, presentationID string) (*domain.Presentation, error)
	Create(ctx context.Context, email, title string) (*domain.Presentation, error)
	// AddSlide appends a slide with a predefined layout and returns its object ID.
	AddSlide(ctx context.Context, email, presentationID, layout string) (string, error)
	DeleteSlide(ctx context.Context, email, presentationID, slideID string) error
	ClearCache(email string)
}
