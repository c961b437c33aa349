package bench

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Benchmark is a constructed, ready-to-query benchmark instance. Backing data
// and constraints are immutable after New; only the seed sampler has state.
// A Benchmark is safe for concurrent Query calls.
type Benchmark struct {
	family      Family
	dataset     string
	backend     Backend
	constraints Constraints
	metrics     []string
	seeds       *SeedSampler
}

// New constructs a Benchmark of the named family. Construction is strictly
// sequential: validate dataset name -> open backing data -> resolve
// constraints -> validate metric names. Any failure returns a nil Benchmark.
func New(familyName string, opts Options) (*Benchmark, error) {
	fam, ok := LookupFamily(familyName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown benchmark family %q (available: %v)", ErrInvalidValue, familyName, Families())
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !containsString(fam.DatasetNames, opts.Dataset) {
		return nil, fmt.Errorf("%w: dataset of %s must be in %v, but got %q", ErrInvalidValue, fam.Name, fam.DatasetNames, opts.Dataset)
	}

	metrics := opts.MetricNames
	if len(metrics) == 0 {
		metrics = fam.ObjectiveNames
	}
	metrics = append([]string(nil), metrics...)

	backend, err := fam.Open(OpenRequest{DataPath: opts.DataPath, Dataset: opts.Dataset, MetricNames: metrics})
	if err != nil {
		return nil, fmt.Errorf("open %s/%s: %w", fam.Name, opts.Dataset, err)
	}

	constraints, err := resolveFamilyConstraints(fam, &opts)
	if err != nil {
		return nil, err
	}

	for _, m := range metrics {
		if !containsString(fam.ObjectiveNames, m) {
			return nil, fmt.Errorf("%w: metric names of %s must be in %v, but got %q", ErrInvalidValue, fam.Name, fam.ObjectiveNames, m)
		}
	}
	for name := range constraints {
		if !containsString(metrics, name) {
			return nil, fmt.Errorf("%w: constrained objective %q must be among metric names %v", ErrInvalidValue, name, metrics)
		}
	}

	logrus.Infof("Constructed %s/%s: metrics=%v, constraints=%v", fam.Name, opts.Dataset, metrics, constraints)
	return &Benchmark{
		family:      fam,
		dataset:     opts.Dataset,
		backend:     backend,
		constraints: constraints,
		metrics:     metrics,
		seeds:       NewSeedSampler(opts.Seed, fam.NumSeeds),
	}, nil
}

// resolveFamilyConstraints loads the dataset's constraint table and resolves
// the requested quantiles. No table is read when no quantile is requested.
func resolveFamilyConstraints(fam Family, opts *Options) (Constraints, error) {
	if len(opts.Quantiles) == 0 {
		return Constraints{}, nil
	}
	for name := range opts.Quantiles {
		if !containsString(fam.ConstraintNames, name) {
			return nil, fmt.Errorf("%w: constraint names of %s must be in %v, but got %q", ErrInvalidValue, fam.Name, fam.ConstraintNames, name)
		}
	}
	table, err := LoadConstraintTable(ConstraintTablePath(opts.metadataDir(), opts.Dataset))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	for _, d := range table.Dims {
		if !containsString(fam.ConstraintNames, d) {
			return nil, fmt.Errorf("%w: constraint table dimension %q is not a constraint of %s", ErrConfiguration, d, fam.Name)
		}
	}
	return ResolveConstraints(table, opts.Quantiles)
}

// Query validates cfg and fidels against their declared domains, fills
// fidelity defaults, draws a noise seed and returns the requested metrics.
//
// Errors: ErrInvalidValue (domain violation), ErrOutOfRange (fidelity
// outside numeric bounds), ErrNotFound (configuration not tabulated).
func (b *Benchmark) Query(cfg Config, fidels Fidels) (Objectives, error) {
	if err := b.family.ConfigSpace.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := b.family.FidelSpace.ValidateFidels(fidels); err != nil {
		return nil, err
	}

	full := make(Fidels, len(b.family.FidelDefaults))
	for k, v := range b.family.FidelDefaults {
		full[k] = v
	}
	for k, v := range fidels {
		full[k] = v
	}
	cfgCopy := make(Config, len(cfg))
	for k, v := range cfg {
		cfgCopy[k] = v
	}

	seed := b.seeds.Next()
	results, err := b.backend.Query(cfgCopy, full, seed)
	if err != nil {
		return nil, err
	}

	out := make(Objectives, len(b.metrics))
	for _, m := range b.metrics {
		v, ok := results[m]
		if !ok {
			return nil, fmt.Errorf("%w: %s backend did not report %q", ErrConfiguration, b.family.Name, m)
		}
		out[m] = v
	}
	logrus.Debugf("%s/%s query seed=%d fidels=%v -> %v", b.family.Name, b.dataset, seed, full, out)
	return out, nil
}

// Constraints returns a copy of the resolved thresholds.
func (b *Benchmark) Constraints() Constraints {
	return b.constraints.Clone()
}

// Family returns the family name.
func (b *Benchmark) Family() string { return b.family.Name }

// Dataset returns the dataset name.
func (b *Benchmark) Dataset() string { return b.dataset }

// MetricNames returns the metrics Query reports.
func (b *Benchmark) MetricNames() []string {
	return append([]string(nil), b.metrics...)
}

// DatasetNames returns the datasets the family supports.
func (b *Benchmark) DatasetNames() []string {
	return append([]string(nil), b.family.DatasetNames...)
}

// ObjectiveNames returns every objective the family can supply.
func (b *Benchmark) ObjectiveNames() []string {
	return append([]string(nil), b.family.ObjectiveNames...)
}

// ConstraintNames returns the objectives that can be constrained.
func (b *Benchmark) ConstraintNames() []string {
	return append([]string(nil), b.family.ConstraintNames...)
}

// Directions returns the optimization direction of each family objective.
func (b *Benchmark) Directions() map[string]Direction {
	out := make(map[string]Direction, len(b.family.ObjectiveNames))
	for _, name := range b.family.ObjectiveNames {
		out[name] = DirectionOf(name)
	}
	return out
}

// ConfigSpace returns the configuration space in canonical order.
func (b *Benchmark) ConfigSpace() Space {
	return append(Space(nil), b.family.ConfigSpace...)
}

// FidelSpace returns the fidelity space.
func (b *Benchmark) FidelSpace() Space {
	return append(Space(nil), b.family.FidelSpace...)
}
