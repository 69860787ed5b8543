package stats

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"stoichcli/internal/dataset"
	"stoichcli/pkg/contracts/domain"
)

// keySeparator joins key tuples for map identity. It never appears in
// categorical data.
const keySeparator = "\x1f"

// Summarizer reduces the source table to per-group display rows: one
// "mean ± se" cell per value field plus the derived C:N:P ratio cell.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new group summarizer.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// SummarizeMeanSE groups the table rows by the tuple of groupFields and
// reduces every value field to a formatted cell. Group order is the
// first-occurrence order of key tuples in the source table; downstream
// layout depends on that ordering and it must not change.
//
// Mean and standard error are computed over non-missing values only. A
// group with no valid observations for a field gets the literal "NA" cell.
// When exactly three value fields are configured they are read as carbon,
// nitrogen, and phosphorus in that order and the ratio cell is derived
// from their full-precision means.
func (s *Summarizer) SummarizeMeanSE(ctx context.Context, table *dataset.Table, groupFields, valueFields []string) ([]domain.AggregatedRow, error) {
	// A misnamed field is a configuration error, reported before any
	// aggregation happens.
	required := append(append([]string{}, groupFields...), valueFields...)
	if err := table.RequireColumns(required...); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "aggregating source table",
		slog.Int("rows", table.Len()),
		slog.Any("group_fields", groupFields),
		slog.Any("value_fields", valueFields))

	groupRows, order := s.groupRows(table, groupFields)

	rows := make([]domain.AggregatedRow, 0, len(order))
	for _, key := range order {
		indices := groupRows[key]
		row := domain.AggregatedRow{
			Key:      strings.Split(key, keySeparator),
			Cells:    make(map[string]string, len(valueFields)),
			RawMeans: make(map[string]float64, len(valueFields)),
			Counts:   make(map[string]int, len(valueFields)),
		}

		for _, field := range valueFields {
			mean, se, n := meanSE(table, indices, field)
			row.Counts[field] = n
			if n == 0 {
				row.Cells[field] = NA
				continue
			}
			row.RawMeans[field] = mean
			row.Cells[field] = FormatMeanSE(mean, se)
		}

		if len(valueFields) == 3 {
			row.Ratio = ComputeRatio(
				rawMean(row, valueFields[0]),
				rawMean(row, valueFields[1]),
				rawMean(row, valueFields[2]),
			)
		}

		rows = append(rows, row)
	}

	s.logger.InfoContext(ctx, "aggregated source table",
		slog.Int("groups", len(rows)))

	return rows, nil
}

// groupRows buckets row indices by key tuple, preserving first-occurrence
// order of the tuples.
func (s *Summarizer) groupRows(table *dataset.Table, groupFields []string) (map[string][]int, []string) {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < table.Len(); i++ {
		parts := make([]string, len(groupFields))
		for j, field := range groupFields {
			parts[j] = strings.TrimSpace(table.Value(i, field))
		}
		key := strings.Join(parts, keySeparator)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	return grouped, order
}

// meanSE computes arithmetic mean and sample standard error over the
// non-missing observations of field in the given rows. A single valid
// observation has a standard error of zero.
func meanSE(table *dataset.Table, rows []int, field string) (mean, se float64, n int) {
	var sum float64
	values := make([]float64, 0, len(rows))
	for _, i := range rows {
		obs := table.Observation(i, field)
		if !obs.Valid {
			continue
		}
		values = append(values, obs.Value)
		sum += obs.Value
	}

	n = len(values)
	if n == 0 {
		return 0, 0, 0
	}
	mean = sum / float64(n)
	if n == 1 {
		return mean, 0, n
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(n-1))
	se = stddev / math.Sqrt(float64(n))
	return mean, se, n
}

// rawMean lifts a stored raw mean into an observation, missing when the
// field had no valid values in the group.
func rawMean(row domain.AggregatedRow, field string) domain.Observation {
	if row.Counts[field] == 0 {
		return domain.Missing()
	}
	return domain.Obs(row.RawMeans[field])
}

// ComputeRatio derives the "<1000*C/P>:<1000*N/P>:1" display ratio from the
// full-precision group means. The ratio is "NA" whenever the phosphorus
// mean is undefined or zero; a missing carbon or nitrogen mean also yields
// "NA" so a cell is never part number, part placeholder.
func ComputeRatio(meanC, meanN, meanP domain.Observation) string {
	if !meanP.Valid || meanP.Value == 0 {
		return NA
	}
	if !meanC.Valid || !meanN.Valid {
		return NA
	}
	c := math.Round(1000 * meanC.Value / meanP.Value)
	n := math.Round(1000 * meanN.Value / meanP.Value)
	return formatWhole(c) + ":" + formatWhole(n) + ":1"
}

func formatWhole(x float64) string {
	return strconv.FormatFloat(x, 'f', 0, 64)
}
