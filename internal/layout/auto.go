package layout

import (
	"strings"

	"stoichcli/pkg/contracts/domain"
)

// Auto builds a minimal layout over all aggregated rows in order: no blank
// rows, one label per row derived from its group key. It is the fallback
// when no table spec file describes the publication shape.
func Auto(rows []domain.AggregatedRow, labelHeader string, columns []Column) *Layout {
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = strings.Join(row.Key, " / ")
	}
	return &Layout{
		Segments:    []Segment{{From: 0, To: len(rows)}},
		RowLabels:   labels,
		LabelHeader: labelHeader,
		Columns:     columns,
	}
}
