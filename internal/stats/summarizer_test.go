package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoichcli/internal/dataset"
	"stoichcli/internal/errors"
	"stoichcli/pkg/contracts/domain"
)

var (
	groupFields = []string{"site", "date", "treatment"}
	valueFields = []string{"C", "N", "P"}
)

func summarize(t *testing.T, rows [][]string) []domain.AggregatedRow {
	t.Helper()
	table := dataset.NewTable([]string{"site", "date", "treatment", "C", "N", "P"}, rows)
	got, err := NewSummarizer(nil).SummarizeMeanSE(context.Background(), table, groupFields, valueFields)
	require.NoError(t, err)
	return got
}

func TestSummarizeMeanSE_SingleGroup(t *testing.T) {
	// The worked example: C 10 and 12 -> mean 11, se 1; P entirely missing.
	rows := summarize(t, [][]string{
		{"BW", "2010", "AMB", "10", "5", "NA"},
		{"BW", "2010", "AMB", "12", "7", "NA"},
	})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, domain.GroupKey{"BW", "2010", "AMB"}, row.Key)
	assert.Equal(t, "11 ± 1", row.Cells["C"])
	assert.Equal(t, "6 ± 1", row.Cells["N"])
	assert.Equal(t, "NA", row.Cells["P"])
	assert.Equal(t, "NA", row.Ratio)
	assert.Equal(t, 2, row.Counts["C"])
	assert.Equal(t, 0, row.Counts["P"])
}

func TestSummarizeMeanSE_SkipsMissingValues(t *testing.T) {
	rows := summarize(t, [][]string{
		{"BW", "2010", "AMB", "10", "NA", "2"},
		{"BW", "2010", "AMB", "NA", "4", "2"},
		{"BW", "2010", "AMB", "14", "", "2"},
	})
	require.Len(t, rows, 1)

	row := rows[0]
	// C mean over {10, 14} = 12, sd = sqrt(8), se = 2
	assert.Equal(t, "12 ± 2", row.Cells["C"])
	assert.Equal(t, 2, row.Counts["C"])
	// N has a single valid value; its standard error is zero
	assert.Equal(t, "4 ± 0", row.Cells["N"])
	assert.Equal(t, "2 ± 0", row.Cells["P"])
}

func TestSummarizeMeanSE_GroupOrderIsFirstOccurrence(t *testing.T) {
	rows := summarize(t, [][]string{
		{"HF", "2011", "+N", "1", "1", "1"},
		{"BW", "2010", "AMB", "1", "1", "1"},
		{"HF", "2011", "+N", "2", "2", "2"},
		{"BW", "2011", "AMB", "1", "1", "1"},
	})
	require.Len(t, rows, 3)

	assert.Equal(t, domain.GroupKey{"HF", "2011", "+N"}, rows[0].Key)
	assert.Equal(t, domain.GroupKey{"BW", "2010", "AMB"}, rows[1].Key)
	assert.Equal(t, domain.GroupKey{"BW", "2011", "AMB"}, rows[2].Key)
}

func TestSummarizeMeanSE_Ratio(t *testing.T) {
	rows := summarize(t, [][]string{
		{"BW", "2010", "AMB", "10", "5", "2"},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "5000:2500:1", rows[0].Ratio)
}

func TestSummarizeMeanSE_RatioUsesRawMeans(t *testing.T) {
	// Display cells round the means; the ratio must not.
	rows := summarize(t, [][]string{
		{"BW", "2010", "AMB", "452.337", "12.061", "1.043"},
		{"BW", "2010", "AMB", "448.221", "11.854", "0.987"},
	})
	require.Len(t, rows, 1)

	// raw means: C 450.279, N 11.9575, P 1.015
	assert.Equal(t, "443625:11781:1", rows[0].Ratio)
}

func TestSummarizeMeanSE_MissingColumnIsSchemaError(t *testing.T) {
	table := dataset.NewTable([]string{"site", "date", "treatment", "C", "N"}, nil)
	_, err := NewSummarizer(nil).SummarizeMeanSE(context.Background(), table, groupFields, valueFields)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestSummarizeMeanSE_Deterministic(t *testing.T) {
	input := [][]string{
		{"BW", "2010", "AMB", "10.123", "5.456", "2.789"},
		{"BW", "2010", "+N", "12.321", "7.654", "NA"},
		{"HF", "2010", "AMB", "9.87", "4.32", "1.23"},
	}
	first := summarize(t, input)
	second := summarize(t, input)
	assert.Equal(t, first, second)
}

func TestComputeRatio(t *testing.T) {
	tests := []struct {
		name    string
		c, n, p domain.Observation
		want    string
	}{
		{"worked example", domain.Obs(10), domain.Obs(5), domain.Obs(2), "5000:2500:1"},
		{"missing phosphorus", domain.Obs(10), domain.Obs(5), domain.Missing(), "NA"},
		{"zero phosphorus", domain.Obs(10), domain.Obs(5), domain.Obs(0), "NA"},
		{"missing carbon", domain.Missing(), domain.Obs(5), domain.Obs(2), "NA"},
		{"missing nitrogen", domain.Obs(10), domain.Missing(), domain.Obs(2), "NA"},
		{"rounds components", domain.Obs(1.0004), domain.Obs(0.5006), domain.Obs(1), "1000:501:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRatio(tt.c, tt.n, tt.p))
		})
	}
}
