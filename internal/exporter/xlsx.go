package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"stoichcli/internal/config"
	"stoichcli/internal/layout"
)

// sheetName is the single worksheet the report is written to.
const sheetName = "Table 1"

// XLSXWriter renders the finished grid as a styled Excel workbook: merged
// header-span cells, bold headers, indented row labels, and a footnote row.
type XLSXWriter struct {
	paths *config.Paths
}

// NewXLSXWriter creates a new XLSX writer instance
func NewXLSXWriter(paths *config.Paths) *XLSXWriter {
	return &XLSXWriter{paths: paths}
}

// WriteGrid writes the grid to an .xlsx report file.
func (w *XLSXWriter) WriteGrid(filePath string, grid *layout.Grid, opts RenderOptions) error {
	if err := opts.Validate(grid); err != nil {
		return err
	}

	fullPath := w.paths.GetReportPath(filePath)

	slog.Info("Writing XLSX table",
		slog.String("full_path", fullPath),
		slog.Int("row_count", len(grid.Rows)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	indentStyles := make(map[int]int)
	for depth := 1; depth <= 2; depth++ {
		style, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Indent: depth},
		})
		if err != nil {
			return fmt.Errorf("create indent style: %w", err)
		}
		indentStyles[depth] = style
	}

	sheetRow := 1

	// Spanning header row: one merged cell per header group over its data
	// columns, nothing above the label column.
	if len(opts.HeaderGroups) > 0 {
		col := 2
		for _, g := range opts.HeaderGroups {
			start, err := excelize.CoordinatesToCellName(col, sheetRow)
			if err != nil {
				return fmt.Errorf("header group cell: %w", err)
			}
			end, err := excelize.CoordinatesToCellName(col+g.Span-1, sheetRow)
			if err != nil {
				return fmt.Errorf("header group cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, start, g.Label); err != nil {
				return fmt.Errorf("write header group: %w", err)
			}
			if g.Span > 1 {
				if err := f.MergeCell(sheetName, start, end); err != nil {
					return fmt.Errorf("merge header group: %w", err)
				}
			}
			if err := f.SetCellStyle(sheetName, start, end, headerStyle); err != nil {
				return fmt.Errorf("style header group: %w", err)
			}
			col += g.Span
		}
		sheetRow++
	}

	// Column header row
	if err := w.writeRow(f, sheetRow, grid.LabelHeader, columnLabels(grid)); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, sheetRow)
	last, _ := excelize.CoordinatesToCellName(len(grid.Columns)+1, sheetRow)
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	sheetRow++

	// Data rows, label cell indented per the explicit row-index lists
	for i, row := range grid.Rows {
		if err := w.writeRow(f, sheetRow, row.Label, row.Cells); err != nil {
			return err
		}
		if depth := opts.indentDepth(i); depth > 0 {
			cell, _ := excelize.CoordinatesToCellName(1, sheetRow)
			if err := f.SetCellStyle(sheetName, cell, cell, indentStyles[depth]); err != nil {
				return fmt.Errorf("style indented label: %w", err)
			}
		}
		sheetRow++
	}

	// Footnote row merged across the table width
	if opts.Footnote != "" {
		start, _ := excelize.CoordinatesToCellName(1, sheetRow)
		end, _ := excelize.CoordinatesToCellName(len(grid.Columns)+1, sheetRow)
		if err := f.SetCellValue(sheetName, start, opts.Footnote); err != nil {
			return fmt.Errorf("write footnote: %w", err)
		}
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return fmt.Errorf("merge footnote: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeRow writes a label plus data cells into one sheet row.
func (w *XLSXWriter) writeRow(f *excelize.File, sheetRow int, label string, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, sheetRow)
	if err != nil {
		return fmt.Errorf("row cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, label); err != nil {
		return fmt.Errorf("write row label: %w", err)
	}
	for j, value := range cells {
		cell, err := excelize.CoordinatesToCellName(j+2, sheetRow)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("write row cell: %w", err)
		}
	}
	return nil
}

func columnLabels(grid *layout.Grid) []string {
	labels := make([]string, len(grid.Columns))
	for i, col := range grid.Columns {
		labels[i] = col.Label
	}
	return labels
}
