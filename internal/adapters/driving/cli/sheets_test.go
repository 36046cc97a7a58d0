package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

func TestSheetsGet(t *testing.T) {
	s := newTestServices(t, testEmail)
	s.Sheets.(*mockSheetsService).sheet = &domain.Spreadsheet{
		ID:     "ss1",
		Title:  "Budget",
		Sheets: []domain.SheetInfo{{ID: 0, Title: "Sheet1", RowCount: 1000, ColumnCount: 26}},
	}

	out, err := execute(t, s, "", "sheets", "get", "ss1")

	require.NoError(t, err)
	assert.Contains(t, out, "Budget")
	assert.Contains(t, out, "Sheet1")
	assert.Contains(t, out, "1000")
}

func TestSheetsRead(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "text as csv", format: "text", want: "a,\"b,c\"\n1,2\n"},
		{name: "tsv", format: "tsv", want: "a\tb,c\n1\t2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t, testEmail)
			s.Sheets.(*mockSheetsService).values = &domain.ValueRange{
				Range: "Sheet1!A1:B2",
				Rows:  [][]string{{"a", "b,c"}, {"1", "2"}},
			}

			out, err := execute(t, s, "", "sheets", "read", "ss1", "Sheet1!A1:B2", "--format", tt.format)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, []string{"ss1", "Sheet1!A1:B2"}, s.Sheets.(*mockSheetsService).last.args)
		})
	}
}

func TestSheetsRead_Empty(t *testing.T) {
	s := newTestServices(t, testEmail)
	s.Sheets.(*mockSheetsService).values = &domain.ValueRange{Range: "Sheet1!A1"}

	out, err := execute(t, s, "", "sheets", "read", "ss1", "Sheet1!A1")

	require.NoError(t, err)
	assert.Contains(t, out, "No values in Sheet1!A1")
}

func TestSheetsWrite_Values(t *testing.T) {
	s := newTestServices(t, testEmail)

	out, err := execute(t, s, "", "sheets", "write", "ss1", "A1", "--values", "a, b;c,d")

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, s.Sheets.(*mockSheetsService).rows)
	assert.Contains(t, out, "Updated 4 cell(s) in A1")
}

func TestSheetsAppend_File(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    [][]string
	}{
		{name: "csv", file: "rows.csv", content: "x,\"y,z\"\n1,2\n", want: [][]string{{"x", "y,z"}, {"1", "2"}}},
		{name: "tsv", file: "rows.TSV", content: "x\ty,z\n1\t2\n", want: [][]string{{"x", "y,z"}, {"1", "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t, testEmail)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			out, err := execute(t, s, "", "sheets", "append", "ss1", "Sheet1", "--file", path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Sheets.(*mockSheetsService).rows)
			assert.Contains(t, out, "Appended 2 row(s) at Sheet1")
		})
	}
}

func TestSheetsWrite_InputErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0600))

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"sheets", "write", "ss1", "A1"}},
		{name: "both inputs", args: []string{"sheets", "write", "ss1", "A1", "--values", "a", "--file", empty}},
		{name: "blank values", args: []string{"sheets", "write", "ss1", "A1", "--values", " ; "}},
		{name: "missing file", args: []string{"sheets", "write", "ss1", "A1", "--file", "/nonexistent/rows.csv"}},
		{name: "empty file", args: []string{"sheets", "write", "ss1", "A1", "--file", empty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t, testEmail)

			_, err := execute(t, s, "", tt.args...)

			assert.Error(t, err)
			assert.Nil(t, s.Sheets.(*mockSheetsService).rows)
		})
	}
}

func TestSheetsClearCreate(t *testing.T) {
	s := newTestServices(t, testEmail)
	sheets := s.Sheets.(*mockSheetsService)

	out, err := execute(t, s, "", "sheets", "clear", "ss1", "Sheet1!A1:Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"ss1", "Sheet1!A1:Z"}, sheets.last.args)
	assert.Contains(t, out, "Cleared Sheet1!A1:Z")

	out, err = execute(t, s, "", "sheets", "create", "Budget")
	require.NoError(t, err)
	assert.Contains(t, out, "Created spreadsheet Budget (ss1)")
}
