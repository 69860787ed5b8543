package dataset

import (
	"strconv"
	"strings"

	"stoichcli/internal/errors"
	"stoichcli/pkg/contracts/domain"
)

// missingMarkers are the cell values treated as a missing observation.
// "NA" is what the upstream statistics tooling writes for absent values.
var missingMarkers = map[string]struct{}{
	"":    {},
	"NA":  {},
	"NaN": {},
	".":   {},
}

// Table is the in-memory source dataset: an ordered sequence of rows with
// named columns fixed at load time. Rows are immutable once loaded.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and data rows.
func NewTable(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}
	return &Table{columns: columns, index: index, rows: rows}
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// RequireColumns verifies that every named column exists, reporting all
// missing columns at once. This runs before aggregation so a misconfigured
// field name fails the run up front rather than per-row.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewSchemaError(
			"required columns not found in source table: "+strings.Join(missing, ", "), nil).
			WithContext("missing", missing).
			WithContext("available", t.columns)
	}
	return nil
}

// Value returns the raw cell string at (row, column). Unknown columns and
// out-of-range rows return the empty string.
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// Observation parses the cell at (row, column) as a numeric observation.
// Missing markers and unparseable values both come back invalid, matching
// the source convention of coercing bad cells to NA rather than failing
// mid-aggregation.
func (t *Table) Observation(row int, column string) domain.Observation {
	raw := strings.TrimSpace(t.Value(row, column))
	if _, missing := missingMarkers[raw]; missing {
		return domain.Missing()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Missing()
	}
	return domain.Obs(v)
}

// ColumnMapping names the source columns holding the categorical factors
// and the three measured concentrations.
type ColumnMapping struct {
	Site       string
	Period     string
	Treatment  string
	Carbon     string
	Nitrogen   string
	Phosphorus string
}

// Measurements decodes the table into typed measurement records.
func (t *Table) Measurements(m ColumnMapping) ([]domain.Measurement, error) {
	if err := t.RequireColumns(m.Site, m.Period, m.Treatment, m.Carbon, m.Nitrogen, m.Phosphorus); err != nil {
		return nil, err
	}
	out := make([]domain.Measurement, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, domain.Measurement{
			Site:       strings.TrimSpace(t.Value(i, m.Site)),
			Period:     strings.TrimSpace(t.Value(i, m.Period)),
			Treatment:  strings.TrimSpace(t.Value(i, m.Treatment)),
			Carbon:     t.Observation(i, m.Carbon),
			Nitrogen:   t.Observation(i, m.Nitrogen),
			Phosphorus: t.Observation(i, m.Phosphorus),
		})
	}
	return out, nil
}
