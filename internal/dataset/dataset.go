// Package dataset reads tabular feedback files and normalizes their schema.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Canonical column names
const (
	ColumnFeedback  = "feedback"
	ColumnSentiment = "sentiment"
)

// Error definitions for dataset ingestion
var (
	ErrEmpty             = errors.New("dataset is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// SchemaError reports required columns that are missing from a table
type SchemaError struct {
	Expected []string
	Missing  []string
	Found    []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"missing required columns: %s (expected: %s; found: %s)",
		strings.Join(e.Missing, ", "),
		strings.Join(e.Expected, ", "),
		strings.Join(e.Found, ", "),
	)
}

// Table is a parsed tabular file with normalized column names
type Table struct {
	Columns []string
	Rows    [][]string
}

// NormalizeColumn maps a raw header name to its canonical form.
func NormalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeColumns normalizes every header name in order.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}

// CheckFormat rejects any file that is not a CSV file.
func CheckFormat(filename string) error {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return fmt.Errorf("%w: %q is not a .csv file", ErrUnsupportedFormat, filepath.Base(filename))
	}
	return nil
}

// Open reads the CSV file at path.
func Open(path string) (*Table, error) {
	if err := CheckFormat(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses CSV data whose first record is the header row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	table := &Table{Columns: NormalizeColumns(header)}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		if len(record) > len(table.Columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrUnsupportedFormat, line, len(record), len(table.Columns))
		}
		for len(record) < len(table.Columns) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table has the named column
func (t *Table) Has(name string) bool {
	return t.index(name) >= 0
}

// Require returns a *SchemaError if any of the named columns is absent.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	found := make([]string, len(t.Columns))
	copy(found, t.Columns)

	return &SchemaError{
		Expected: names,
		Missing:  missing,
		Found:    found,
	}
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.index(name)
	if idx < 0 {
		return nil, t.Require(name)
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

func (t *Table) index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
