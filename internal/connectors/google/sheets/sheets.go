// Package sheets implements the Google Sheets surface.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

// Ensure Service implements the interface.
var _ driving.SheetsService = (*Service)(nil)

// valueInput makes Sheets parse written values as if typed by a user.
const valueInput = "USER_ENTERED"

const spreadsheetFields = googleapi.Field("spreadsheetId,spreadsheetUrl,properties(title,locale)," +
	"sheets(properties(sheetId,title,index,gridProperties(rowCount,columnCount)))")

// Service issues Sheets requests for stored accounts.
type Service struct {
	cache   *google.ClientCache[*sheets.Service]
	limiter *google.RateLimiter
}

// New creates a Sheets service whose API handles are built from accounts.
func New(accounts google.AccountLookup, limiter *google.RateLimiter, opts google.Options) *Service {
	return &Service{
		cache: google.NewClientCache(accounts, func(ctx context.Context, account domain.Account) (*sheets.Service, error) {
			return google.NewSheetsService(ctx, account, opts)
		}),
		limiter: limiter,
	}
}

// Get returns spreadsheet metadata and its worksheets.
func (s *Service) Get(ctx context.Context, email, spreadsheetID string) (*domain.Spreadsheet, error) {
	if err := requireID(spreadsheetID); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Fields(spreadsheetFields).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, s.limiter.Observe(err))
	}
	return toSpreadsheet(resp), nil
}

// Read returns the formatted values in area, an A1 range such as "Sheet1!A1:C10".
func (s *Service) Read(ctx context.Context, email, spreadsheetID, area string) (*domain.ValueRange, error) {
	if err := requireArea(spreadsheetID, area); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", area, s.limiter.Observe(err))
	}

	out := &domain.ValueRange{Range: resp.Range, Rows: make([][]string, 0, len(resp.Values))}
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// Write overwrites area with rows.
func (s *Service) Write(ctx context.Context, email, spreadsheetID, area string, rows [][]string) (*domain.UpdateResult, error) {
	if err := requireArea(spreadsheetID, area); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Update(spreadsheetID, area, toValueRange(rows)).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", area, s.limiter.Observe(err))
	}
	return toUpdateResult(resp), nil
}

// Append adds rows after the last row of the table found in area.
func (s *Service) Append(ctx context.Context, email, spreadsheetID, area string, rows [][]string) (*domain.UpdateResult, error) {
	if err := requireArea(spreadsheetID, area); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Append(spreadsheetID, area, toValueRange(rows)).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("append to %s: %w", area, s.limiter.Observe(err))
	}
	return toUpdateResult(resp.Updates), nil
}

// Clear removes values, keeping formatting.
func (s *Service) Clear(ctx context.Context, email, spreadsheetID, area string) error {
	if err := requireArea(spreadsheetID, area); err != nil {
		return err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return err
	}

	_, err = svc.Spreadsheets.Values.Clear(spreadsheetID, area, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", area, s.limiter.Observe(err))
	}
	return nil
}

// Create creates a spreadsheet with one empty worksheet.
func (s *Service) Create(ctx context.Context, email, title string) (*domain.Spreadsheet, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet: %w", s.limiter.Observe(err))
	}
	return toSpreadsheet(resp), nil
}

// ClearCache drops cached handles for email, or all handles if email is empty.
func (s *Service) ClearCache(email string) {
	if s.cache != nil {
		s.cache.ClearCache(email)
	}
}

func (s *Service) client(ctx context.Context, email string) (*sheets.Service, error) {
	if s.cache == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, email)
}

func requireID(spreadsheetID string) error {
	if strings.TrimSpace(spreadsheetID) == "" {
		return fmt.Errorf("%w: spreadsheet id is required", domain.ErrInvalidInput)
	}
	return nil
}

func requireArea(spreadsheetID, area string) error {
	if err := requireID(spreadsheetID); err != nil {
		return err
	}
	if strings.TrimSpace(area) == "" {
		return fmt.Errorf("%w: range is required", domain.ErrInvalidInput)
	}
	return nil
}

func toSpreadsheet(resp *sheets.Spreadsheet) *domain.Spreadsheet {
	out := &domain.Spreadsheet{
		ID:     resp.SpreadsheetId,
		URL:    resp.SpreadsheetUrl,
		Sheets: make([]domain.SheetInfo, 0, len(resp.Sheets)),
	}
	if resp.Properties != nil {
		out.Title = resp.Properties.Title
		out.Locale = resp.Properties.Locale
	}
	for _, sheet := range resp.Sheets {
		if sheet == nil || sheet.Properties == nil {
			continue
		}
		info := domain.SheetInfo{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		}
		if grid := sheet.Properties.GridProperties; grid != nil {
			info.RowCount = grid.RowCount
			info.ColumnCount = grid.ColumnCount
		}
		out.Sheets = append(out.Sheets, info)
	}
	return out
}

func toValueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return &sheets.ValueRange{MajorDimension: "ROWS", Values: values}
}

func toUpdateResult(resp *sheets.UpdateValuesResponse) *domain.UpdateResult {
	if resp == nil {
		return &domain.UpdateResult{}
	}
	return &domain.UpdateResult{
		Range:          resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}
}

// formatCell renders one JSON cell value.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
