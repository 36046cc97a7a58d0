package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gwcli/internal/connectors/google/docs"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// defaultListLimit caps drive_list results when no limit is given.
const defaultListLimit = 25

// ListAccountsInput is the input schema for the list_accounts tool.
type ListAccountsInput struct{}

// ListAccountsOutput is the output schema for the list_accounts tool.
type ListAccountsOutput struct {
	Accounts []string `json:"accounts"`
	Count    int      `json:"count"`
}

// DriveListInput is the input schema for the drive_list tool.
type DriveListInput struct {
	Account   string `json:"account,omitempty" jsonschema:"account email; may be omitted when exactly one account is stored"`
	Query     string `json:"query,omitempty" jsonschema:"Drive search expression, e.g. name contains 'report'"`
	FolderID  string `json:"folder_id,omitempty" jsonschema:"only list children of this folder"`
	Limit     int64  `json:"limit,omitempty" jsonschema:"maximum number of files to return (default 25)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous call to continue the listing"`
}

// DriveListOutput is the output schema for the drive_list tool.
type DriveListOutput struct {
	Files         []DriveFileOutput `json:"files"`
	Count         int               `json:"count"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// DriveFileOutput represents a single Drive file.
type DriveFileOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
}

// DocsReadInput is the input schema for the docs_read tool.
type DocsReadInput struct {
	Account    string `json:"account,omitempty" jsonschema:"account email; may be omitted when exactly one account is stored"`
	DocumentID string `json:"document_id" jsonschema:"the document ID from its URL"`
	Markdown   bool   `json:"markdown,omitempty" jsonschema:"render headings and bullets as Markdown"`
}

// DocsReadOutput is the output schema for the docs_read tool.
type DocsReadOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SheetsReadInput is the input schema for the sheets_read tool.
type SheetsReadInput struct {
	Account       string `json:"account,omitempty" jsonschema:"account email; may be omitted when exactly one account is stored"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"the spreadsheet ID from its URL"`
	Range         string `json:"range" jsonschema:"A1 notation range, e.g. Sheet1!A1:D20"`
}

// SheetsReadOutput is the output schema for the sheets_read tool.
type SheetsReadOutput struct {
	Range string     `json:"range"`
	Rows  [][]string `json:"rows"`
}

// SlidesReadInput is the input schema for the slides_read tool.
type SlidesReadInput struct {
	Account        string `json:"account,omitempty" jsonschema:"account email; may be omitted when exactly one account is stored"`
	PresentationID string `json:"presentation_id" jsonschema:"the presentation ID from its URL"`
}

// registerTools registers tool handlers for the configured surfaces.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_accounts",
		Description: "List the Google accounts gwcli is authorised for",
	}, s.handleListAccounts)

	if s.ports.Drive != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "drive_list",
			Description: "List Google Drive files, optionally filtered by a search query or folder",
		}, s.handleDriveList)
	}
	if s.ports.Docs != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "docs_read",
			Description: "Read the text of a Google Docs document",
		}, s.handleDocsRead)
	}
	if s.ports.Sheets != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "sheets_read",
			Description: "Read cell values from a Google Sheets range",
		}, s.handleSheetsRead)
	}
	if s.ports.Slides != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "slides_read",
			Description: "Read the slides and text of a Google Slides presentation",
		}, s.handleSlidesRead)
	}
}

func (s *Server) handleListAccounts(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListAccountsInput,
) (*mcp.CallToolResult, ListAccountsOutput, error) {
	accounts := s.ports.Accounts.List()
	output := ListAccountsOutput{
		Accounts: make([]string, len(accounts)),
		Count:    len(accounts),
	}
	for i, a := range accounts {
		output.Accounts[i] = a.Email
	}
	return nil, output, nil
}

func (s *Server) handleDriveList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DriveListInput,
) (*mcp.CallToolResult, DriveListOutput, error) {
	email, err := s.ports.resolveAccount(input.Account)
	if err != nil {
		return nil, DriveListOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	list, err := s.ports.Drive.List(ctx, email, domain.DriveListOptions{
		Query:     input.Query,
		FolderID:  input.FolderID,
		PageSize:  limit,
		PageToken: input.PageToken,
	})
	if err != nil {
		return nil, DriveListOutput{}, err
	}

	output := DriveListOutput{
		Files:         make([]DriveFileOutput, len(list.Files)),
		Count:         len(list.Files),
		NextPageToken: list.NextPageToken,
	}
	for i, f := range list.Files {
		output.Files[i] = DriveFileOutput{
			ID:          f.ID,
			Name:        f.Name,
			MimeType:    f.MimeType,
			Size:        f.Size,
			WebViewLink: f.WebViewLink,
		}
		if !f.ModifiedTime.IsZero() {
			output.Files[i].ModifiedTime = f.ModifiedTime.Format(time.RFC3339)
		}
	}
	return nil, output, nil
}

func (s *Server) handleDocsRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocsReadInput,
) (*mcp.CallToolResult, DocsReadOutput, error) {
	email, err := s.ports.resolveAccount(input.Account)
	if err != nil {
		return nil, DocsReadOutput{}, err
	}

	doc, err := s.ports.Docs.Get(ctx, email, input.DocumentID)
	if err != nil {
		return nil, DocsReadOutput{}, err
	}

	content := doc.Text()
	if input.Markdown {
		content = docs.ToMarkdown(*doc)
	}
	return nil, DocsReadOutput{ID: doc.ID, Title: doc.Title, Content: content}, nil
}

func (s *Server) handleSheetsRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetsReadInput,
) (*mcp.CallToolResult, SheetsReadOutput, error) {
	email, err := s.ports.resolveAccount(input.Account)
	if err != nil {
		return nil, SheetsReadOutput{}, err
	}

	vr, err := s.ports.Sheets.Read(ctx, email, input.SpreadsheetID, input.Range)
	if err != nil {
		return nil, SheetsReadOutput{}, err
	}

	rows := vr.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return nil, SheetsReadOutput{Range: vr.Range, Rows: rows}, nil
}

func (s *Server) handleSlidesRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlidesReadInput,
) (*mcp.CallToolResult, domain.Presentation, error) {
	email, err := s.ports.resolveAccount(input.Account)
	if err != nil {
		return nil, domain.Presentation{}, err
	}

	pres, err := s.ports.Slides.Get(ctx, email, input.PresentationID)
	if err != nil {
		return nil, domain.Presentation{}, err
	}
	if pres.Slides == nil {
		pres.Slides = []domain.Slide{}
	}
	return nil, *pres, nil
}
