// Package ingest loads the engine's input tables from CSV files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingColumn is returned when a table lacks a column the engine needs.
var ErrMissingColumn = errors.New("missing required column")

// table is a parsed CSV file with a case-insensitive header index.
type table struct {
	columns map[string]int
	rows    [][]string
}

func openTable(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV has no header row")
	}

	t := &table{columns: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		key := normalizeColumn(name)
		if _, dup := t.columns[key]; !dup {
			t.columns[key] = i
		}
	}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// require returns the index of the first column matching one of the names.
func (t *table) require(names ...string) (int, error) {
	if idx, ok := t.lookup(names...); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w %q", ErrMissingColumn, names[0])
}

func (t *table) lookup(names ...string) (int, bool) {
	for _, n := range names {
		if idx, ok := t.columns[normalizeColumn(n)]; ok {
			return idx, true
		}
	}
	return 0, false
}

// cell returns a trimmed field, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
