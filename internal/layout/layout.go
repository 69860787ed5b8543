// Package layout arranges aggregated rows into the shape of the published
// table: data slices interleaved with blank spacer rows, a row-label column,
// and relabeled data columns. It is purely structural; no aggregation or
// formatting happens here.
package layout

import (
	"fmt"

	"stoichcli/internal/errors"
	"stoichcli/pkg/contracts/domain"
)

// RatioKey selects the derived ratio cell instead of a value-field cell.
const RatioKey = "ratio"

// BlankCell is the display value of every cell in a spacer row. A single
// space keeps spreadsheet consumers from collapsing the row.
const BlankCell = " "

// Segment is one step of the row layout: either a run of blank rows or a
// half-open slice [From, To) of the aggregated rows.
type Segment struct {
	Blank int `yaml:"blank"`
	From  int `yaml:"from"`
	To    int `yaml:"to"`
}

// Column maps an aggregated cell onto a display column. Label is an opaque
// display string; it may carry markup (italics, symbols, line breaks) that
// only the renderer interprets.
type Column struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Layout is the declarative description of the target table shape. The
// RowLabels slice must have exactly one entry per output row, blanks
// included; the mismatch check replaces hand-spliced label arrays.
type Layout struct {
	Segments    []Segment `yaml:"segments"`
	RowLabels   []string  `yaml:"row_labels"`
	LabelHeader string    `yaml:"label_header"`
	Columns     []Column  `yaml:"columns"`
}

// Row is one output row of the finished grid.
type Row struct {
	Label string
	Cells []string
	Blank bool
}

// Grid is the finished label+data table handed to the renderers.
type Grid struct {
	LabelHeader string
	Columns     []Column
	Rows        []Row
}

// Build produces the final row sequence from the aggregated rows. It fails
// before any rendering when a segment is out of range or the row-label
// count does not match the produced row count.
func (l *Layout) Build(rows []domain.AggregatedRow) (*Grid, error) {
	if len(l.Columns) == 0 {
		return nil, errors.NewLayoutError("layout has no columns", nil)
	}

	out := make([]Row, 0, len(l.RowLabels))
	for i, seg := range l.Segments {
		switch {
		case seg.Blank > 0 && seg.To == 0 && seg.From == 0:
			for j := 0; j < seg.Blank; j++ {
				out = append(out, l.blankRow())
			}
		case seg.Blank == 0:
			if seg.From < 0 || seg.To < seg.From || seg.To > len(rows) {
				return nil, errors.NewLayoutError(
					fmt.Sprintf("segment %d slice [%d,%d) out of range for %d aggregated rows",
						i, seg.From, seg.To, len(rows)), nil)
			}
			for _, agg := range rows[seg.From:seg.To] {
				out = append(out, l.dataRow(agg))
			}
		default:
			return nil, errors.NewLayoutError(
				fmt.Sprintf("segment %d mixes a blank run with a data slice", i), nil)
		}
	}

	if len(l.RowLabels) != len(out) {
		return nil, errors.NewLayoutError("row label count does not match produced row count", nil).
			WithContext("labels", len(l.RowLabels)).
			WithContext("rows", len(out))
	}
	for i := range out {
		out[i].Label = l.RowLabels[i]
	}

	return &Grid{
		LabelHeader: l.LabelHeader,
		Columns:     l.Columns,
		Rows:        out,
	}, nil
}

func (l *Layout) blankRow() Row {
	cells := make([]string, len(l.Columns))
	for i := range cells {
		cells[i] = BlankCell
	}
	return Row{Cells: cells, Blank: true}
}

func (l *Layout) dataRow(agg domain.AggregatedRow) Row {
	cells := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		if col.Key == RatioKey {
			cells[i] = agg.Ratio
			continue
		}
		if cell, ok := agg.Cells[col.Key]; ok {
			cells[i] = cell
		} else {
			cells[i] = BlankCell
		}
	}
	return Row{Cells: cells}
}

// RowCount returns the number of rows the layout will produce, without
// touching any data.
func (l *Layout) RowCount() int {
	n := 0
	for _, seg := range l.Segments {
		if seg.Blank > 0 {
			n += seg.Blank
		} else {
			n += seg.To - seg.From
		}
	}
	return n
}
