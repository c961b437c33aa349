// Package hpobench serves the HPOBench tabular MLP benchmark: eight OpenML
// classification datasets, five recorded seeds per configuration, and an
// epoch budget fidelity.
package hpobench

import (
	_ "embed"
	"fmt"

	"github.com/chpobench/chpobench/bench"
	"github.com/chpobench/chpobench/bench/tabular"
)

// Name is the family name used with bench.New.
const Name = "hpobench"

// NumSeeds is the number of recorded runs per configuration.
const NumSeeds = 5

// EpochChoices are the tabulated epoch budgets; the last is the default.
var EpochChoices = []any{3, 9, 27, 81, 243}

// DatasetNames lists the supported datasets.
var DatasetNames = []string{
	"australian",
	"blood_transfusion",
	"car",
	"credit_g",
	"kc1",
	"phoneme",
	"segment",
	"vehicle",
}

//go:embed spaces.yaml
var spacesYAML []byte

var (
	configSpace = bench.MustParseSpace(spacesYAML, "hpobench")
	fidelSpace  = bench.MustParseSpace(spacesYAML, "fidelity")
)

// Entry is the recorded data of one configuration. Each metric holds one
// epoch -> value map per seed.
type Entry struct {
	BalAcc    []map[int]float64 `json:"bal_acc"`
	Runtime   []map[int]float64 `json:"runtime"`
	F1        []map[int]float64 `json:"f1"`
	Precision []map[int]float64 `json:"precision"`
}

type backend struct {
	table *tabular.Table[Entry]
}

func open(req bench.OpenRequest) (bench.Backend, error) {
	path, err := tabular.FindDataFile(req.DataPath, req.Dataset)
	if err != nil {
		return nil, err
	}
	rows, err := tabular.LoadJSON[Entry](path)
	if err != nil {
		return nil, err
	}
	return &backend{table: tabular.NewTable("HPOBench", configSpace, tabular.IndexKey, rows)}, nil
}

func (b *backend) Query(cfg bench.Config, fidels bench.Fidels, seed int) (bench.Objectives, error) {
	entry, err := b.table.Lookup(cfg)
	if err != nil {
		return nil, err
	}
	epochs, ok := bench.AsInt(fidels["epochs"])
	if !ok {
		return nil, fmt.Errorf("%w: epochs must be an integer, got %v", bench.ErrInvalidValue, fidels["epochs"])
	}

	balAcc, err := valueAt(entry.BalAcc, "bal_acc", seed, epochs)
	if err != nil {
		return nil, err
	}
	runtime, err := valueAt(entry.Runtime, "runtime", seed, epochs)
	if err != nil {
		return nil, err
	}
	f1, err := valueAt(entry.F1, "f1", seed, epochs)
	if err != nil {
		return nil, err
	}
	precision, err := valueAt(entry.Precision, "precision", seed, epochs)
	if err != nil {
		return nil, err
	}
	return bench.Objectives{
		bench.Loss:      1.0 - balAcc,
		bench.Runtime:   runtime,
		bench.F1:        f1,
		bench.Precision: precision,
	}, nil
}

// valueAt reads series[seed][epochs]. Short series are a data defect.
func valueAt(series []map[int]float64, metric string, seed, epochs int) (float64, error) {
	if seed < 0 || seed >= len(series) {
		return 0, fmt.Errorf("%w: %s has %d seeds, seed %d requested", bench.ErrConfiguration, metric, len(series), seed)
	}
	v, ok := series[seed][epochs]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no record at epochs=%d", bench.ErrNotFound, metric, epochs)
	}
	return v, nil
}

// New constructs an HPOBench benchmark.
func New(opts bench.Options) (*bench.Benchmark, error) {
	return bench.New(Name, opts)
}
