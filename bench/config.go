package bench

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options configures benchmark construction. Loadable from YAML.
type Options struct {
	Family      string             `yaml:"family,omitempty"`       // used by the CLI; New takes the family explicitly
	DataPath    string             `yaml:"data_path"`              // directory holding backing data
	MetadataDir string             `yaml:"metadata_dir,omitempty"` // constraint tables (default <data_path>/metadata)
	Dataset     string             `yaml:"dataset"`
	Quantiles   map[string]float64 `yaml:"quantiles,omitempty"`    // constraint objective -> quantile level
	MetricNames []string           `yaml:"metric_names,omitempty"` // empty = every objective of the family
	Seed        *int64             `yaml:"seed,omitempty"`         // nil = wall-clock seeded
}

// LoadOptions reads and validates a YAML options file. Unknown fields are
// rejected so typos surface as errors.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	var opts Options
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil {
		return nil, fmt.Errorf("parsing options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Validate checks field presence and quantile levels.
func (o *Options) Validate() error {
	if o.DataPath == "" {
		return fmt.Errorf("%w: data_path must be set", ErrInvalidValue)
	}
	if o.Dataset == "" {
		return fmt.Errorf("%w: dataset must be set", ErrInvalidValue)
	}
	for name, q := range o.Quantiles {
		if !IsQuantileLevel(q) {
			return fmt.Errorf("%w: quantile for %q must be in %v, but got %v", ErrInvalidValue, name, QuantileLevels, q)
		}
	}
	return nil
}

// metadataDir returns the constraint table directory.
func (o *Options) metadataDir() string {
	if o.MetadataDir != "" {
		return o.MetadataDir
	}
	return filepath.Join(o.DataPath, "metadata")
}
