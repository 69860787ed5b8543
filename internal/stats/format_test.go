package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMean(t *testing.T) {
	tests := []struct {
		name string
		mean float64
		want string
	}{
		{"whole number keeps no decimals", 11.0, "11"},
		{"trailing zero drops", 45.10, "45.1"},
		{"three significant figures", 430.456, "430"},
		{"small value keeps precision", 0.456, "0.46"},
		{"two decimals before sig figs", 1.2345, "1.23"},
		{"rounding carries", 9.999, "10"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMean(tt.mean))
		})
	}
}

func TestFormatSE(t *testing.T) {
	tests := []struct {
		name string
		se   float64
		want string
	}{
		{"exact one", 1.0, "1"},
		{"sub-one keeps two figures", 0.456, "0.46"},
		{"trailing zero drops", 0.10, "0.1"},
		{"two significant figures", 12.34, "12"},
		{"tiny value rounds to zero", 0.004, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSE(tt.se))
		})
	}
}

func TestFormatMeanSE(t *testing.T) {
	assert.Equal(t, "11 ± 1", FormatMeanSE(11, 1))
	assert.Equal(t, "45.1 ± 0.35", FormatMeanSE(45.1, 0.346))
}

func TestSignif(t *testing.T) {
	assert.InDelta(t, 0.35, signif(0.345678, 2), 1e-12)
	assert.InDelta(t, 123000, signif(123456, 3), 1e-6)
	assert.InDelta(t, 0.0, signif(0, 3), 1e-12)
	assert.InDelta(t, -1.2, signif(-1.234, 2), 1e-12)
}
