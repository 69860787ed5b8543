package domain

// Observation is a single numeric measurement that may be missing.
// Missing observations carry Valid=false and are excluded from every
// aggregate; they are never treated as zero.
type Observation struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Obs returns a valid observation for v.
func Obs(v float64) Observation {
	return Observation{Value: v, Valid: true}
}

// Missing returns an invalid (missing) observation.
func Missing() Observation {
	return Observation{}
}

// Measurement represents one sampled row of the nutrient dataset:
// the categorical factors identifying the sample and the three measured
// concentrations. Measurements are immutable once loaded.
type Measurement struct {
	Site       string      `json:"site" csv:"Site" validate:"required"`
	Period     string      `json:"period" csv:"Period" validate:"required"`
	Treatment  string      `json:"treatment" csv:"Treatment" validate:"required"`
	Carbon     Observation `json:"carbon" csv:"C"`
	Nitrogen   Observation `json:"nitrogen" csv:"N"`
	Phosphorus Observation `json:"phosphorus" csv:"P"`
}

// Treatment codes as they appear in the source dataset. The leading "+"
// is part of the code; downstream spreadsheet consumers may mangle it,
// which is an accepted limitation of the delimited export.
const (
	TreatmentAmbient    = "AMB"
	TreatmentNitrogen   = "+N"
	TreatmentPhosphorus = "+P"
	TreatmentCombined   = "+NP"
)

// GroupKey is an ordered tuple of categorical values identifying one
// aggregation bucket. The tuple order matches the grouping fields.
type GroupKey []string

// AggregatedRow is the summary of one group: the identifying key plus a
// formatted display cell per value field, the derived ratio cell, and the
// raw (full-precision) means the ratio was computed from.
type AggregatedRow struct {
	Key      GroupKey           `json:"key"`
	Cells    map[string]string  `json:"cells"`
	Ratio    string             `json:"ratio"`
	RawMeans map[string]float64 `json:"raw_means"`
	Counts   map[string]int     `json:"counts"`
}
