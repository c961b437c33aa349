// Package hpolib serves the HPOLib FCNet regression benchmark: four UCI
// datasets, four recorded seeds per configuration, epochs in [1, 100].
package hpolib

import (
	_ "embed"
	"fmt"

	"github.com/chpobench/chpobench/bench"
	"github.com/chpobench/chpobench/bench/tabular"
)

const (
	// Name is the family name used with bench.New.
	Name = "hpolib"
	// NumSeeds is the number of recorded runs per configuration.
	NumSeeds = 4
	// MaxEpochs is the full training budget and the default fidelity.
	MaxEpochs = 100
)

// DatasetNames lists the supported datasets.
var DatasetNames = []string{
	"parkinsons_telemonitoring",
	"protein_structure",
	"naval_propulsion",
	"slice_localization",
}

//go:embed spaces.yaml
var spacesYAML []byte

var (
	configSpace = bench.MustParseSpace(spacesYAML, "hpolib")
	fidelSpace  = bench.MustParseSpace(spacesYAML, "fidelity")
)

// Entry is the recorded data of one configuration. ValidMSE holds one
// epoch -> value map per seed; Runtime is the full-budget runtime per seed.
type Entry struct {
	ValidMSE []map[int]float64 `json:"valid_mse"`
	NParams  float64           `json:"n_params"`
	Runtime  []float64         `json:"runtime"`
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
	return &backend{table: tabular.NewTable("HPOLib", configSpace, tabular.IndexKey, rows)}, nil
}

// Query reports valid_mse at the requested epoch as loss, the parameter count
// as model_size, and the full-budget runtime scaled linearly to epochs.
func (b *backend) Query(cfg bench.Config, fidels bench.Fidels, seed int) (bench.Objectives, error) {
	entry, err := b.table.Lookup(cfg)
	if err != nil {
		return nil, err
	}
	epochs, ok := bench.AsInt(fidels["epochs"])
	if !ok || epochs < 1 || epochs > MaxEpochs {
		return nil, fmt.Errorf("%w: epochs of HPOLib must be in [1, %d], but got %v", bench.ErrOutOfRange, MaxEpochs, fidels["epochs"])
	}
	if seed < 0 || seed >= len(entry.ValidMSE) || seed >= len(entry.Runtime) {
		return nil, fmt.Errorf("%w: HPOLib entry has %d/%d seeds, seed %d requested",
			bench.ErrConfiguration, len(entry.ValidMSE), len(entry.Runtime), seed)
	}
	loss, ok := entry.ValidMSE[seed][epochs]
	if !ok {
		return nil, fmt.Errorf("%w: valid_mse has no record at epochs=%d", bench.ErrNotFound, epochs)
	}
	return bench.Objectives{
		bench.Loss:      loss,
		bench.ModelSize: entry.NParams,
		bench.Runtime:   entry.Runtime[seed] * float64(epochs) / MaxEpochs,
	}, nil
}

// New constructs an HPOLib benchmark.
func New(opts bench.Options) (*bench.Benchmark, error) {
	return bench.New(Name, opts)
}
