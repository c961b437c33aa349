// Package jahs serves JAHS-Bench-201 in two forms:
//   - "jahs-bench-201": continuous learning rate and weight decay, answered by
//     an external regression surrogate (see NewSurrogateFunc)
//   - "jahs-grid": the collected grid over discretized learning rate and
//     weight decay, answered by a serialized-key table lookup
package jahs

import (
	_ "embed"
	"fmt"

	"github.com/chpobench/chpobench/bench"
)

const (
	// SurrogateName is the family name of the surrogate-backed benchmark.
	SurrogateName = "jahs-bench-201"
	// GridName is the family name of the grid-table benchmark.
	GridName = "jahs-grid"

	// MaxEpochs is the full training budget and the default epoch fidelity.
	MaxEpochs = 200
	// DefaultResolution is the default image resolution fidelity.
	DefaultResolution = 1.0
	// Optimizer is fixed for every query.
	Optimizer = "SGD"
)

// Surrogate metric names.
const (
	MetricValidAcc = "valid-acc"
	MetricValidErr = "valid-err"
	MetricRuntime  = "runtime"
	MetricSizeMB   = "size_MB"
)

// DatasetNames lists the supported tasks.
var DatasetNames = []string{"colorectal_histology", "cifar10", "fashion_mnist"}

//go:embed spaces.yaml
var spacesYAML []byte

var (
	surrogateSpace = bench.MustParseSpace(spacesYAML, "surrogate")
	gridSpace      = bench.MustParseSpace(spacesYAML, "grid")
	fidelSpace     = bench.MustParseSpace(spacesYAML, "fidelity")
)

// objectiveToMetric maps objective names to surrogate metric names.
var objectiveToMetric = map[string]string{
	bench.Loss:      MetricValidAcc,
	bench.Runtime:   MetricRuntime,
	bench.ModelSize: MetricSizeMB,
}

// Surrogate predicts JAHS metrics (valid-acc, runtime, size_MB) for a full
// feature vector (configuration plus Optimizer and Resolution) trained for
// epochs. Implementations are in-memory model evaluations.
type Surrogate interface {
	Predict(features map[string]any, epochs int) (map[string]float64, error)
}

// NewSurrogateFunc loads the surrogate of task from saveDir, restricted to
// metrics. It is nil until the host program registers a loader; constructing
// a jahs-bench-201 benchmark without one fails with bench.ErrConfiguration.
var NewSurrogateFunc func(task, saveDir string, metrics []string) (Surrogate, error)

type surrogateBackend struct {
	surrogate Surrogate
}

func openSurrogate(req bench.OpenRequest) (bench.Backend, error) {
	if NewSurrogateFunc == nil {
		return nil, fmt.Errorf("%w: no JAHS surrogate loader registered (set jahs.NewSurrogateFunc)", bench.ErrConfiguration)
	}
	metrics := make([]string, 0, len(req.MetricNames))
	for _, name := range req.MetricNames {
		if m, ok := objectiveToMetric[name]; ok {
			metrics = append(metrics, m)
		}
	}
	s, err := NewSurrogateFunc(req.Dataset, req.DataPath, metrics)
	if err != nil {
		return nil, fmt.Errorf("load JAHS surrogate: %w", err)
	}
	return &surrogateBackend{surrogate: s}, nil
}

// Query forwards the configuration, with Optimizer and Resolution filled in,
// to the surrogate. Loss is 100 - valid-acc.
func (b *surrogateBackend) Query(cfg bench.Config, fidels bench.Fidels, _ int) (bench.Objectives, error) {
	epochs, ok := bench.AsInt(fidels["epochs"])
	if !ok {
		return nil, fmt.Errorf("%w: epochs must be an integer, got %v", bench.ErrInvalidValue, fidels["epochs"])
	}
	features := make(map[string]any, len(cfg)+2)
	for k, v := range cfg {
		features[k] = v
	}
	features["Optimizer"] = Optimizer
	features["Resolution"] = fidels["Resolution"]

	preds, err := b.surrogate.Predict(features, epochs)
	if err != nil {
		return nil, fmt.Errorf("JAHS surrogate prediction: %w", err)
	}
	out := make(bench.Objectives, len(preds))
	for name, metric := range objectiveToMetric {
		v, ok := preds[metric]
		if !ok {
			continue
		}
		if metric == MetricValidAcc {
			v = 100.0 - v
		}
		out[name] = v
	}
	return out, nil
}

// NewSurrogate constructs a surrogate-backed JAHS-Bench-201 benchmark.
func NewSurrogate(opts bench.Options) (*bench.Benchmark, error) {
	return bench.New(SurrogateName, opts)
}
