package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Delimiters for ParseRows and WriteRows.
const (
	CSV = ','
	TSV = '\t'
)

// ParseRows reads delimited rows. Rows may have different lengths.
func ParseRows(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	if delimiter == TSV {
		reader.LazyQuotes = true
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}
	return rows, nil
}

// ParseInline parses rows given on the command line: rows separated by
// ';' or newlines, cells by ','. Blank rows are dropped.
func ParseInline(s string) [][]string {
	var rows [][]string
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' }) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

// WriteRows writes rows with the given delimiter.
func WriteRows(w io.Writer, rows [][]string, delimiter rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
