package dataset

import (
	"stoichcli/pkg/contracts/domain"
)

// Profile summarizes a decoded dataset for logging: row counts per treatment
// and how many observations of each nutrient are missing. It is a quick
// sanity check on the loaded data, not part of the report itself.
type Profile struct {
	Rows              int
	RowsPerTreatment  map[string]int
	MissingCarbon     int
	MissingNitrogen   int
	MissingPhosphorus int
}

// Profiled builds a Profile over the decoded measurements.
func Profiled(measurements []domain.Measurement) Profile {
	p := Profile{
		Rows:             len(measurements),
		RowsPerTreatment: make(map[string]int),
	}
	for _, m := range measurements {
		p.RowsPerTreatment[m.Treatment]++
		if !m.Carbon.Valid {
			p.MissingCarbon++
		}
		if !m.Nitrogen.Valid {
			p.MissingNitrogen++
		}
		if !m.Phosphorus.Valid {
			p.MissingPhosphorus++
		}
	}
	return p
}
