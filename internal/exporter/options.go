package exporter

import (
	"fmt"

	"stoichcli/internal/errors"
	"stoichcli/internal/layout"
)

// HeaderGroup is one spanning cell of the top header row, covering Span
// adjacent data columns.
type HeaderGroup struct {
	Label string `yaml:"label"`
	Span  int    `yaml:"span"`
}

// RenderOptions carries the presentation-only settings shared by the
// renderers: title, footnote, header grouping, and per-row indentation.
// Indentation is driven by explicit row indices per level, never inferred
// from content.
type RenderOptions struct {
	Title        string        `yaml:"title"`
	Footnote     string        `yaml:"footnote"`
	HeaderGroups []HeaderGroup `yaml:"header_groups"`
	// IndentRows[0] holds the row indices indented one level (sub-group),
	// IndentRows[1] the indices indented two levels (sub-sub-group).
	IndentRows [][]int `yaml:"indent_rows"`
}

// Validate checks the options against the grid they will render.
func (o *RenderOptions) Validate(grid *layout.Grid) error {
	if len(o.HeaderGroups) > 0 {
		span := 0
		for _, g := range o.HeaderGroups {
			if g.Span <= 0 {
				return errors.NewValidationError("header group span must be positive")
			}
			span += g.Span
		}
		if span != len(grid.Columns) {
			return errors.NewValidationError(
				fmt.Sprintf("header groups span %d columns, grid has %d", span, len(grid.Columns)))
		}
	}
	for _, level := range o.IndentRows {
		for _, idx := range level {
			if idx < 0 || idx >= len(grid.Rows) {
				return errors.NewValidationError(
					fmt.Sprintf("indent row index %d out of range for %d rows", idx, len(grid.Rows)))
			}
		}
	}
	return nil
}

// indentDepth returns the indent level for a row index, zero for the base
// level. Deeper levels win when an index is listed more than once.
func (o *RenderOptions) indentDepth(row int) int {
	depth := 0
	for level, indices := range o.IndentRows {
		for _, idx := range indices {
			if idx == row {
				depth = level + 1
			}
		}
	}
	return depth
}
