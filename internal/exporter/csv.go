package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stoichcli/internal/config"
	"stoichcli/internal/layout"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.paths.GetReportPath(filePath)

	slog.Info("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps spreadsheet applications recognize UTF-8, so the ± glyph
	// survives. A leading "+" in a label may still be read as a formula by
	// some consumers; that is an accepted limitation of the delimited form.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteGrid serializes the finished grid as a delimited file: one header
// row (label header plus column labels), then one record per output row.
// Presentation details (header spans, indentation) have no delimited form
// and are dropped here.
func (w *CSVWriter) WriteGrid(filePath string, grid *layout.Grid) error {
	headers := make([]string, 0, len(grid.Columns)+1)
	headers = append(headers, grid.LabelHeader)
	for _, col := range grid.Columns {
		headers = append(headers, col.Label)
	}

	records := make([][]string, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Label)
		record = append(record, row.Cells...)
		records = append(records, record)
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}
