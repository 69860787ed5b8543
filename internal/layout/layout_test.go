package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoichcli/internal/errors"
	"stoichcli/pkg/contracts/domain"
)

func aggRows() []domain.AggregatedRow {
	return []domain.AggregatedRow{
		{
			Key:   domain.GroupKey{"BW", "2010", "AMB"},
			Cells: map[string]string{"C": "450 ± 2.1", "N": "12 ± 0.4", "P": "1.02 ± 0.03"},
			Ratio: "441176:11765:1",
		},
		{
			Key:   domain.GroupKey{"BW", "2010", "+N"},
			Cells: map[string]string{"C": "448 ± 1.8", "N": "14.2 ± 0.6", "P": "NA"},
			Ratio: "NA",
		},
		{
			Key:   domain.GroupKey{"HF", "2011", "AMB"},
			Cells: map[string]string{"C": "430 ± 3.2", "N": "11.1 ± 0.2", "P": "0.95 ± 0.02"},
			Ratio: "452632:11684:1",
		},
	}
}

func testColumns() []Column {
	return []Column{
		{Key: "C", Label: "C (mg g⁻¹)"},
		{Key: "N", Label: "N (mg g⁻¹)"},
		{Key: "P", Label: "P (mg g⁻¹)"},
		{Key: RatioKey, Label: "C:N:P"},
	}
}

func TestLayout_Build(t *testing.T) {
	l := &Layout{
		Segments: []Segment{
			{Blank: 1},
			{From: 0, To: 2},
			{Blank: 1},
			{From: 2, To: 3},
		},
		RowLabels:   []string{"Bear Brook", "Ambient", "+N", "Harvard Forest", "Ambient"},
		LabelHeader: "Site and treatment",
		Columns:     testColumns(),
	}

	grid, err := l.Build(aggRows())
	require.NoError(t, err)

	require.Len(t, grid.Rows, 5)
	assert.Equal(t, "Site and treatment", grid.LabelHeader)

	// blank section-heading row
	assert.True(t, grid.Rows[0].Blank)
	assert.Equal(t, "Bear Brook", grid.Rows[0].Label)
	assert.Equal(t, []string{" ", " ", " ", " "}, grid.Rows[0].Cells)

	// data rows keep aggregation order and map cells through column keys
	assert.False(t, grid.Rows[1].Blank)
	assert.Equal(t, "Ambient", grid.Rows[1].Label)
	assert.Equal(t, []string{"450 ± 2.1", "12 ± 0.4", "1.02 ± 0.03", "441176:11765:1"}, grid.Rows[1].Cells)
	assert.Equal(t, []string{"448 ± 1.8", "14.2 ± 0.6", "NA", "NA"}, grid.Rows[2].Cells)

	assert.True(t, grid.Rows[3].Blank)
	assert.Equal(t, []string{"430 ± 3.2", "11.1 ± 0.2", "0.95 ± 0.02", "452632:11684:1"}, grid.Rows[4].Cells)
}

func TestLayout_Build_RowCountInvariant(t *testing.T) {
	l := &Layout{
		Segments:  []Segment{{Blank: 2}, {From: 0, To: 3}},
		RowLabels: []string{"only", "four", "labels", "here"},
		Columns:   testColumns(),
	}

	_, err := l.Build(aggRows())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLayout))
}

func TestLayout_Build_SegmentOutOfRange(t *testing.T) {
	l := &Layout{
		Segments:  []Segment{{From: 0, To: 9}},
		RowLabels: []string{"a"},
		Columns:   testColumns(),
	}

	_, err := l.Build(aggRows())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLayout))
}

func TestLayout_Build_MixedSegment(t *testing.T) {
	l := &Layout{
		Segments:  []Segment{{Blank: 1, From: 0, To: 2}},
		RowLabels: []string{"a", "b", "c"},
		Columns:   testColumns(),
	}

	_, err := l.Build(aggRows())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLayout))
}

func TestLayout_Build_NoColumns(t *testing.T) {
	l := &Layout{Segments: []Segment{{Blank: 1}}, RowLabels: []string{"a"}}
	_, err := l.Build(nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLayout))
}

func TestLayout_RowCount(t *testing.T) {
	l := &Layout{
		Segments: []Segment{{Blank: 2}, {From: 0, To: 3}, {Blank: 1}},
	}
	assert.Equal(t, 6, l.RowCount())
}
