package exporter

import (
	"os"

	"gopkg.in/yaml.v2"

	"stoichcli/internal/errors"
	"stoichcli/internal/layout"
)

// TableSpec is the on-disk description of one report table: the row layout
// and the presentation options. Keeping it as data makes the publication
// shape checkable instead of hand-spliced.
type TableSpec struct {
	Layout layout.Layout `yaml:"layout"`
	Render RenderOptions `yaml:"render"`
}

// LoadTableSpec reads a table spec from a YAML file.
func LoadTableSpec(path string) (*TableSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read table spec", err).
			WithContext("path", path)
	}
	var spec TableSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.NewConfigError("failed to parse table spec", err).
			WithContext("path", path)
	}
	return &spec, nil
}
