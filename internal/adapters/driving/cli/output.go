package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gwcli/internal/connectors/google/sheets"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// printer renders command results in the selected output format.
type printer struct {
	out    io.Writer
	format domain.OutputFormat
	styles *styles.Styles
}

// newPrinter resolves the output format: the --format flag wins over the
// output.format setting.
func newPrinter(cmd *cobra.Command, s *Services) (*printer, error) {
	format := domain.OutputFormat(strings.ToLower(outputFormat))
	if outputFormat == "" {
		format = domain.OutputText
		if s != nil && s.Settings != nil {
			if settings, err := s.Settings.Get(); err == nil {
				format = settings.Output
			}
		}
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, format)
	}
	return &printer{
		out:    cmd.OutOrStdout(),
		format: format,
		styles: styles.DefaultStyles(),
	}, nil
}

// json writes v as indented JSON.
func (p *printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// table writes rows under headers. v is what the JSON format encodes.
func (p *printer) table(v any, headers []string, rows [][]string) error {
	switch p.format {
	case domain.OutputJSON:
		return p.json(v)
	case domain.OutputTSV:
		return sheets.WriteRows(p.out, append([][]string{headers}, rows...), sheets.TSV)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.out, p.styles.Muted.Render("No results."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(p.styles.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.Title.PaddingRight(2)
			}
			return p.styles.Normal.PaddingRight(2)
		})
	_, err := fmt.Fprintln(p.out, t.Render())
	return err
}

// fields writes label/value pairs. v is what the JSON format encodes.
func (p *printer) fields(v any, pairs [][2]string) error {
	switch p.format {
	case domain.OutputJSON:
		return p.json(v)
	case domain.OutputTSV:
		rows := make([][]string, len(pairs))
		for i, pair := range pairs {
			rows[i] = []string{pair[0], pair[1]}
		}
		return sheets.WriteRows(p.out, rows, sheets.TSV)
	}

	width := 0
	for _, pair := range pairs {
		width = max(width, len(pair[0]))
	}
	for _, pair := range pairs {
		label := p.styles.Label.Render(fmt.Sprintf("%-*s", width+1, pair[0]+":"))
		if _, err := fmt.Fprintf(p.out, "%s %s\n", label, pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// status reports a completed action. v is what the JSON format encodes.
func (p *printer) status(v any, format string, args ...any) error {
	if p.format == domain.OutputJSON {
		return p.json(v)
	}
	msg := fmt.Sprintf(format, args...)
	if p.format == domain.OutputText {
		msg = p.styles.Success.Render(msg)
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

// text writes a block of plain text in every format except JSON, where v
// is encoded instead.
func (p *printer) text(v any, body string) error {
	if p.format == domain.OutputJSON {
		return p.json(v)
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	_, err := io.WriteString(p.out, body)
	return err
}
