package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/connectors/google/sheets"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Work with Google Sheets",
	Long: `Work with Google Sheets.

Ranges use A1 notation, e.g. "Sheet1!A1:C10". Rows to write come from
--values ("a,b;c,d" or one row per line) or --file (CSV, or TSV for .tsv
files). Values are interpreted as if typed into the UI.`,
}

var sheetsGetCmd = &cobra.Command{
	Use:   "get <spreadsheet-id>",
	Short: "Show spreadsheet metadata and sheets",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetsGet,
}

var sheetsReadCmd = &cobra.Command{
	Use:   "read <spreadsheet-id> <range>",
	Short: "Read cell values",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsRead,
}

var sheetsWriteCmd = &cobra.Command{
	Use:   "write <spreadsheet-id> <range>",
	Short: "Overwrite cell values",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsWrite,
}

var sheetsAppendCmd = &cobra.Command{
	Use:   "append <spreadsheet-id> <range>",
	Short: "Append rows after the table in range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsAppend,
}

var sheetsClearCmd = &cobra.Command{
	Use:   "clear <spreadsheet-id> <range>",
	Short: "Clear cell values",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsClear,
}

var sheetsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetsCreate,
}

// Sheets flags.
var (
	sheetsValues string
	sheetsFile   string
)

func init() {
	for _, c := range []*cobra.Command{sheetsWriteCmd, sheetsAppendCmd} {
		c.Flags().StringVar(&sheetsValues, "values", "", `inline rows, e.g. "a,b;c,d"`)
		c.Flags().StringVar(&sheetsFile, "file", "", "CSV or TSV file with rows")
		c.MarkFlagsMutuallyExclusive("values", "file")
		c.MarkFlagsOneRequired("values", "file")
	}

	addAccountFlag(sheetsCmd)
	sheetsCmd.AddCommand(sheetsGetCmd)
	sheetsCmd.AddCommand(sheetsReadCmd)
	sheetsCmd.AddCommand(sheetsWriteCmd)
	sheetsCmd.AddCommand(sheetsAppendCmd)
	sheetsCmd.AddCommand(sheetsClearCmd)
	sheetsCmd.AddCommand(sheetsCreateCmd)
	rootCmd.AddCommand(sheetsCmd)
}

func sheetsContext(cmd *cobra.Command) (*Services, string, *printer, error) {
	s, err := getServices()
	if err != nil {
		return nil, "", nil, err
	}
	if s.Sheets == nil {
		return nil, "", nil, errors.New("sheets service not configured")
	}
	email, err := resolveAccount(s)
	if err != nil {
		return nil, "", nil, err
	}
	p, err := newPrinter(cmd, s)
	if err != nil {
		return nil, "", nil, err
	}
	return s, email, p, nil
}

// inputRows returns the rows given by --values or --file.
func inputRows() ([][]string, error) {
	if sheetsFile == "" {
		rows := sheets.ParseInline(sheetsValues)
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: --values is empty", domain.ErrInvalidInput)
		}
		return rows, nil
	}

	f, err := os.Open(sheetsFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sheetsFile, err)
	}
	defer f.Close()

	delimiter := sheets.CSV
	if strings.EqualFold(filepath.Ext(sheetsFile), ".tsv") {
		delimiter = sheets.TSV
	}
	rows, err := sheets.ParseRows(f, delimiter)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sheetsFile, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", domain.ErrInvalidInput, sheetsFile)
	}
	return rows, nil
}

func runSheetsGet(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}

	ss, err := s.Sheets.Get(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		rows = append(rows, []string{
			strconv.FormatInt(sh.ID, 10),
			sh.Title,
			strconv.FormatInt(sh.RowCount, 10),
			strconv.FormatInt(sh.ColumnCount, 10),
		})
	}
	if p.format == domain.OutputText {
		cmd.Println(p.styles.Title.Render(ss.Title))
	}
	return p.table(ss, []string{"SHEET ID", "TITLE", "ROWS", "COLUMNS"}, rows)
}

func runSheetsRead(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}

	vr, err := s.Sheets.Read(cmd.Context(), email, args[0], args[1])
	if err != nil {
		return err
	}

	switch p.format {
	case domain.OutputJSON:
		return p.json(vr)
	case domain.OutputTSV:
		return sheets.WriteRows(p.out, vr.Rows, sheets.TSV)
	}
	if len(vr.Rows) == 0 {
		return p.text(vr, p.styles.Muted.Render("No values in "+vr.Range))
	}
	return sheets.WriteRows(p.out, vr.Rows, sheets.CSV)
}

func runSheetsWrite(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}
	rows, err := inputRows()
	if err != nil {
		return err
	}

	res, err := s.Sheets.Write(cmd.Context(), email, args[0], args[1], rows)
	if err != nil {
		return err
	}
	return p.status(res, "Updated %d cell(s) in %s", res.UpdatedCells, res.Range)
}

func runSheetsAppend(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}
	rows, err := inputRows()
	if err != nil {
		return err
	}

	res, err := s.Sheets.Append(cmd.Context(), email, args[0], args[1], rows)
	if err != nil {
		return err
	}
	return p.status(res, "Appended %d row(s) at %s", res.UpdatedRows, res.Range)
}

func runSheetsClear(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}

	if err := s.Sheets.Clear(cmd.Context(), email, args[0], args[1]); err != nil {
		return err
	}
	return p.status(map[string]string{"cleared": args[1]}, "Cleared %s", args[1])
}

func runSheetsCreate(cmd *cobra.Command, args []string) error {
	s, email, p, err := sheetsContext(cmd)
	if err != nil {
		return err
	}

	ss, err := s.Sheets.Create(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}
	return p.status(ss, "Created spreadsheet %s (%s)", ss.Title, ss.ID)
}
