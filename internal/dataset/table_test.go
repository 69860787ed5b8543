package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoichcli/internal/errors"
	"stoichcli/pkg/contracts/domain"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"site", "date", "treatment", "C", "N", "P"},
		[][]string{
			{"BW", "2010", "AMB", "10", "5", "NA"},
			{"BW", "2010", "AMB", "12", "7", ""},
			{"HF", "2011", "+N", "430.5", "bad", "0.9"},
		},
	)
}

func TestTable_RequireColumns(t *testing.T) {
	table := sampleTable()

	require.NoError(t, table.RequireColumns("site", "C", "P"))

	err := table.RequireColumns("site", "K", "Mg")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "K")
	assert.Contains(t, err.Error(), "Mg")
}

func TestTable_Observation(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		row    int
		column string
		want   domain.Observation
	}{
		{"valid integer", 0, "C", domain.Obs(10)},
		{"valid decimal", 2, "C", domain.Obs(430.5)},
		{"NA marker", 0, "P", domain.Missing()},
		{"empty cell", 1, "P", domain.Missing()},
		{"unparseable coerced to missing", 2, "N", domain.Missing()},
		{"unknown column", 0, "K", domain.Missing()},
		{"row out of range", 9, "C", domain.Missing()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Observation(tt.row, tt.column))
		})
	}
}

func TestTable_Measurements(t *testing.T) {
	table := sampleTable()
	mapping := ColumnMapping{
		Site: "site", Period: "date", Treatment: "treatment",
		Carbon: "C", Nitrogen: "N", Phosphorus: "P",
	}

	ms, err := table.Measurements(mapping)
	require.NoError(t, err)
	require.Len(t, ms, 3)

	assert.Equal(t, "BW", ms[0].Site)
	assert.Equal(t, domain.TreatmentAmbient, ms[0].Treatment)
	assert.Equal(t, domain.Obs(10), ms[0].Carbon)
	assert.False(t, ms[0].Phosphorus.Valid)
	assert.Equal(t, domain.TreatmentNitrogen, ms[2].Treatment)
}

func TestTable_Measurements_MissingColumn(t *testing.T) {
	table := sampleTable()
	mapping := ColumnMapping{
		Site: "site", Period: "date", Treatment: "treatment",
		Carbon: "carbon_pct", Nitrogen: "N", Phosphorus: "P",
	}

	_, err := table.Measurements(mapping)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestProfiled(t *testing.T) {
	table := sampleTable()
	ms, err := table.Measurements(ColumnMapping{
		Site: "site", Period: "date", Treatment: "treatment",
		Carbon: "C", Nitrogen: "N", Phosphorus: "P",
	})
	require.NoError(t, err)

	p := Profiled(ms)
	assert.Equal(t, 3, p.Rows)
	assert.Equal(t, 2, p.RowsPerTreatment[domain.TreatmentAmbient])
	assert.Equal(t, 1, p.RowsPerTreatment[domain.TreatmentNitrogen])
	assert.Equal(t, 0, p.MissingCarbon)
	assert.Equal(t, 1, p.MissingNitrogen)
	assert.Equal(t, 2, p.MissingPhosphorus)
}
