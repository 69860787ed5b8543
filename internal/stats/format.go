package stats

import (
	"math"
	"strconv"
	"strings"
)

// PlusMinus is the glyph separating mean and standard error in a cell.
const PlusMinus = "±"

// NA is the cell value for a group with no valid observations.
const NA = "NA"

// meanSigFigs and seSigFigs are the significant-figure stages of the
// display rounding policy.
const (
	meanSigFigs = 3
	seSigFigs   = 2
)

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

// signif rounds x to n significant figures.
func signif(x float64, n int) float64 {
	if x == 0 {
		return 0
	}
	magnitude := math.Ceil(math.Log10(math.Abs(x)))
	pow := math.Pow(10, float64(n)-magnitude)
	return math.Round(x*pow) / pow
}

// formatSignif renders x with n significant figures and trims trailing
// zeros. Formatting at a fixed decimal count first keeps binary-float noise
// out of the output.
func formatSignif(x float64, n int) string {
	x = signif(x, n)
	decimals := n
	if x != 0 {
		decimals = n - int(math.Ceil(math.Log10(math.Abs(x))))
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 6 {
		decimals = 6
	}
	s := strconv.FormatFloat(x, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatMean applies the display rounding policy for means: round to
// 2 decimals, then to 3 significant figures. The two-stage rounding and
// the trailing-zero drop mirror the publication's digit convention and are
// preserved exactly, cosmetic unevenness included.
func FormatMean(mean float64) string {
	return formatSignif(roundTo(mean, 2), meanSigFigs)
}

// FormatSE applies the display rounding policy for standard errors: round
// to 2 decimals, then to 2 significant figures.
func FormatSE(se float64) string {
	return formatSignif(roundTo(se, 2), seSigFigs)
}

// FormatMeanSE renders one display cell: "<mean> ± <se>".
func FormatMeanSE(mean, se float64) string {
	return FormatMean(mean) + " " + PlusMinus + " " + FormatSE(se)
}
