// Package export escribe las tablas del reporte como CSV, JSON o Parquet.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/gocarina/gocsv"
	"github.com/parquet-go/parquet-go"
)

// Format is the on-disk encoding of exported tables.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

const allCohort = "All"

// ParseFormat valida el formato (csv, json, parquet).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("export: unsupported format %q (use: csv, json, parquet)", s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string { return string(f) }

// Exporter implementa ports.TableExporter.
type Exporter struct {
	format Format
	dir    string
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(format Format, dir string) (*Exporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export.NewExporter: mkdir %q: %w", dir, err)
	}
	return &Exporter{format: format, dir: dir}, nil
}

// Export writes one file per table: sides, hourly, instruments, cumulative,
// cohort_accounts and sentiment.
func (e *Exporter) Export(ctx context.Context, r domain.Report) error {
	steps := []struct {
		name  string
		write func(path string) error
	}{
		{"sides", func(p string) error { return save(e.format, p, sideRows(r)) }},
		{"hourly", func(p string) error { return save(e.format, p, hourRows(r)) }},
		{"instruments", func(p string) error { return save(e.format, p, instrumentRows(r)) }},
		{"cumulative", func(p string) error { return save(e.format, p, cumulativeRows(r)) }},
		{"cohort_accounts", func(p string) error { return save(e.format, p, accountRows(r)) }},
		{"sentiment", func(p string) error { return save(e.format, p, sentimentRows(r)) }},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := e.Path(s.name)
		if err := s.write(path); err != nil {
			return fmt.Errorf("export.Export %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// Path returns where the table with the given name is written.
func (e *Exporter) Path(table string) string {
	return filepath.Join(e.dir, table+"."+e.format.Extension())
}

func save[T any](f Format, path string, rows []T) error {
	switch f {
	case FormatCSV:
		return saveCSV(path, rows)
	case FormatJSON:
		return saveJSON(path, rows)
	case FormatParquet:
		return parquet.WriteFile(path, rows)
	}
	return fmt.Errorf("unsupported format %q", f)
}

func saveCSV[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.MarshalFile(&rows, file)
}

func saveJSON[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if rows == nil {
		rows = []T{}
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
