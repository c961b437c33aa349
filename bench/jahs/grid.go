package jahs

import (
	"fmt"
	"path/filepath"

	"github.com/chpobench/chpobench/bench"
	"github.com/chpobench/chpobench/bench/tabular"
)

// gridMetrics are the value columns of a collected grid CSV.
var gridMetrics = []string{MetricValidErr, MetricSizeMB, MetricRuntime}

type gridBackend struct {
	table *tabular.Table[map[string]float64]
}

// openGrid loads <data-path>/<dataset>.csv.
func openGrid(req bench.OpenRequest) (bench.Backend, error) {
	path := filepath.Join(req.DataPath, req.Dataset+".csv")
	rows, err := tabular.LoadGridCSV(path, gridSpace, gridMetrics)
	if err != nil {
		return nil, err
	}
	return &gridBackend{table: tabular.NewTable("JAHS grid", gridSpace, tabular.SerializedKey, rows)}, nil
}

func (b *gridBackend) Query(cfg bench.Config, _ bench.Fidels, _ int) (bench.Objectives, error) {
	row, err := b.table.Lookup(cfg)
	if err != nil {
		return nil, err
	}
	out := make(bench.Objectives, len(gridMetrics))
	for _, m := range gridMetrics {
		v, ok := row[m]
		if !ok {
			return nil, fmt.Errorf("%w: grid row has no %q", bench.ErrConfiguration, m)
		}
		switch m {
		case MetricValidErr:
			out[bench.Loss] = v
		case MetricSizeMB:
			out[bench.ModelSize] = v
		case MetricRuntime:
			out[bench.Runtime] = v
		}
	}
	return out, nil
}

// NewGrid constructs a grid-table JAHS-Bench-201 benchmark.
func NewGrid(opts bench.Options) (*bench.Benchmark, error) {
	return bench.New(GridName, opts)
}
