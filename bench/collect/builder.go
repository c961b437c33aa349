package collect

import (
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/chpobench/chpobench/bench"
)

// Global loss ranks used for the overlap columns.
const (
	top10Level = 0.1
	top1Level  = 0.01
)

// Samples holds one column of objective values per objective name. All
// columns have one entry per (configuration, seed) pair, aligned by row.
type Samples map[string][]float64

// Len validates that loss is present and every column has the same length,
// and returns that length.
func (s Samples) Len() (int, error) {
	loss, ok := s[bench.Loss]
	if !ok {
		return 0, fmt.Errorf("samples have no %q column", bench.Loss)
	}
	n := len(loss)
	if n == 0 {
		return 0, fmt.Errorf("samples are empty")
	}
	for name, col := range s {
		if len(col) != n {
			return 0, fmt.Errorf("samples column %q has %d values, %q has %d", name, len(col), bench.Loss, n)
		}
	}
	return n, nil
}

// Builder computes constraint tables over a fixed set of quantile levels.
type Builder struct {
	Levels []float64
}

// NewBuilder returns a Builder over bench.QuantileLevels.
func NewBuilder() *Builder {
	return &Builder{Levels: slices.Clone(bench.QuantileLevels)}
}

// Build computes one row per combination of levels over dims (one or two
// auxiliary objectives). The first dimension varies slowest.
func (b *Builder) Build(samples Samples, dims []string) (*bench.ConstraintTable, error) {
	n, err := samples.Len()
	if err != nil {
		return nil, err
	}
	if len(dims) == 0 || len(dims) > 2 {
		return nil, fmt.Errorf("constraint tables need 1 or 2 dimensions, got %v", dims)
	}
	if len(dims) == 2 && dims[0] == dims[1] {
		return nil, fmt.Errorf("duplicate constraint dimension %q", dims[0])
	}
	for _, d := range dims {
		if d == bench.Loss || !bench.IsKnownObjective(d) {
			return nil, fmt.Errorf("%q is not an auxiliary objective", d)
		}
	}
	levels := b.Levels
	if len(levels) == 0 {
		levels = bench.QuantileLevels
	}

	stats, err := ComputeStatistics(samples, dims, levels)
	if err != nil {
		return nil, err
	}

	loss := samples[bench.Loss]
	sortedLoss := slices.Clone(loss)
	slices.Sort(sortedLoss)
	top10 := sortedLoss[clamp(int(math.Floor(float64(n)*top10Level)), 0, n-1)]
	top1 := sortedLoss[clamp(int(math.Floor(float64(n)*top1Level)), 0, n-1)]

	table := &bench.ConstraintTable{Dims: slices.Clone(dims)}
	eval := func(idx []int) {
		lv := make([]float64, len(dims))
		th := make([]float64, len(dims))
		for d, i := range idx {
			lv[d] = levels[i]
			th[d] = stats[dims[d]][i]
		}
		table.Rows = append(table.Rows, evaluateRow(samples, dims, lv, th, top10, top1, n))
	}

	if len(dims) == 1 {
		for i := range levels {
			eval([]int{i})
		}
	} else {
		for i := range levels {
			for j := range levels {
				eval([]int{i, j})
			}
		}
	}
	logrus.Infof("Built constraint table over %v: %d samples, %d rows, top-10%% loss %g, top-1%% loss %g",
		dims, n, len(table.Rows), top10, top1)
	return table, nil
}

// evaluateRow computes the feasibility statistics of one threshold vector.
func evaluateRow(samples Samples, dims []string, levels, thresholds []float64, top10, top1 float64, n int) bench.ConstraintRow {
	loss := samples[bench.Loss]
	feasibleLoss := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		ok := true
		for d, name := range dims {
			if !bench.Satisfies(name, samples[name][i], thresholds[d]) {
				ok = false
				break
			}
		}
		if ok {
			feasibleLoss = append(feasibleLoss, loss[i])
		}
	}

	row := bench.ConstraintRow{
		Levels:        levels,
		Thresholds:    thresholds,
		OptimalVal:    math.NaN(),
		FeasibleRatio: float64(len(feasibleLoss)) / float64(n),
	}
	if len(feasibleLoss) == 0 {
		return row
	}
	row.OptimalVal = floats.Min(feasibleLoss)
	row.Top10Overlap = overlap(feasibleLoss, top10, n)
	row.Top1Overlap = overlap(feasibleLoss, top1, n)
	return row
}

// overlap returns the share of all n samples that are feasible and have a
// loss at or below top.
func overlap(feasibleLoss []float64, top float64, n int) float64 {
	count := 0
	for _, l := range feasibleLoss {
		if l <= top {
			count++
		}
	}
	return float64(count) / float64(n)
}
