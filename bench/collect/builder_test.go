package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chpobench/chpobench/bench"
)

func TestBuild_SingleDimSmallSample(t *testing.T) {
	samples := Samples{
		bench.Loss:    {0.5, 0.3, 0.9},
		bench.Runtime: {1, 2, 3},
	}
	b := &Builder{Levels: []float64{0.33}}
	table, err := b.Build(samples, []string{bench.Runtime})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, []float64{0.33}, row.Levels)
	assert.Equal(t, []float64{1.0}, row.Thresholds, "rank index clamps to the smallest runtime")
	assert.InDelta(t, 1.0/3.0, row.FeasibleRatio, 1e-12)
	assert.Equal(t, 0.5, row.OptimalVal)
	// Global top-10% loss is 0.3 and the only feasible loss is 0.5.
	assert.Equal(t, 0.0, row.Top10Overlap)
	assert.Equal(t, 0.0, row.Top1Overlap)
}

func TestBuild_FullGridShapes(t *testing.T) {
	samples := syntheticSamples(200)

	table, err := NewBuilder().Build(samples, []string{bench.ModelSize, bench.Runtime})
	require.NoError(t, err)
	assert.Equal(t, []string{bench.ModelSize, bench.Runtime}, table.Dims)
	require.Len(t, table.Rows, len(bench.QuantileLevels)*len(bench.QuantileLevels))

	// First dimension varies slowest.
	assert.Equal(t, []float64{0.001, 0.005}, table.Rows[1].Levels)
	assert.Equal(t, []float64{0.005, 0.001}, table.Rows[len(bench.QuantileLevels)].Levels)

	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, []float64{1.0, 1.0}, last.Levels)
	assert.Equal(t, 1.0, last.FeasibleRatio, "level 1.0 on every dim admits everything")

	single, err := NewBuilder().Build(samples, []string{bench.Runtime})
	require.NoError(t, err)
	assert.Len(t, single.Rows, len(bench.QuantileLevels))
}

func TestBuild_NothingFeasible(t *testing.T) {
	// Runtime and model size are anti-correlated, so requiring both to be in
	// their best 10% excludes everything.
	samples := Samples{
		bench.Loss:      {0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		bench.Runtime:   {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		bench.ModelSize: {10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	}
	b := &Builder{Levels: []float64{0.1, 1.0}}
	table, err := b.Build(samples, []string{bench.Runtime, bench.ModelSize})
	require.NoError(t, err)

	row := table.Rows[0]
	assert.Equal(t, []float64{0.1, 0.1}, row.Levels)
	assert.Equal(t, []float64{1, 1}, row.Thresholds)
	assert.Equal(t, 0.0, row.FeasibleRatio)
	assert.False(t, row.HasOptimal())
	assert.Equal(t, 0.0, row.Top10Overlap)

	// (0.1, 1.0): only the fastest config, which also has the best loss.
	row = table.Rows[1]
	assert.Equal(t, 0.1, row.FeasibleRatio)
	assert.Equal(t, 0.1, row.OptimalVal)
	assert.Equal(t, 0.1, row.Top10Overlap, "overlap is a share of all samples, not of the feasible ones")
}

func TestBuild_OverlapIsShareOfAllSamples(t *testing.T) {
	samples := Samples{
		bench.Loss:    {0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		bench.Runtime: {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	b := &Builder{Levels: []float64{0.1, 1.0}}
	table, err := b.Build(samples, []string{bench.Runtime})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Level 0.1 keeps one sample, which is also in the global top 10%.
	assert.Equal(t, 0.1, table.Rows[0].FeasibleRatio)
	assert.Equal(t, 0.1, table.Rows[0].Top10Overlap)

	// Level 1.0 keeps everything; top-10% loss is sortedLoss[1] = 0.2.
	assert.Equal(t, 1.0, table.Rows[1].FeasibleRatio)
	assert.Equal(t, 0.2, table.Rows[1].Top10Overlap)
	assert.Equal(t, 0.1, table.Rows[1].Top1Overlap)

	for _, row := range table.Rows {
		assert.LessOrEqual(t, row.Top10Overlap, row.FeasibleRatio)
	}
}

func TestBuild_MaximizedDimension(t *testing.T) {
	samples := Samples{
		bench.Loss:      {0.4, 0.3, 0.2, 0.1},
		bench.Precision: {0.1, 0.2, 0.3, 0.4},
	}
	b := &Builder{Levels: []float64{0.25, 0.5}}
	table, err := b.Build(samples, []string{bench.Precision})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.4}, table.Rows[0].Thresholds)
	assert.Equal(t, 0.25, table.Rows[0].FeasibleRatio)
	assert.Equal(t, 0.1, table.Rows[0].OptimalVal)

	assert.Equal(t, []float64{0.3}, table.Rows[1].Thresholds)
	assert.Equal(t, 0.5, table.Rows[1].FeasibleRatio)
	// Top-10% loss over 4 samples is sortedLoss[0] = 0.1; one of four samples.
	assert.Equal(t, 0.25, table.Rows[1].Top10Overlap)
}

func TestBuild_Errors(t *testing.T) {
	samples := syntheticSamples(20)
	tests := []struct {
		name    string
		samples Samples
		dims    []string
	}{
		{"no dims", samples, nil},
		{"three dims", samples, []string{bench.Runtime, bench.ModelSize, bench.Precision}},
		{"duplicate dim", samples, []string{bench.Runtime, bench.Runtime}},
		{"loss as dim", samples, []string{bench.Loss}},
		{"unknown objective", samples, []string{"flops"}},
		{"dim missing from samples", samples, []string{bench.F1}},
		{"no loss column", Samples{bench.Runtime: {1, 2}}, []string{bench.Runtime}},
		{"ragged columns", Samples{bench.Loss: {1, 2}, bench.Runtime: {1}}, []string{bench.Runtime}},
		{"empty", Samples{bench.Loss: {}, bench.Runtime: {}}, []string{bench.Runtime}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Build(tt.samples, tt.dims)
			assert.Error(t, err)
		})
	}
}

// syntheticSamples returns n samples where loss falls as model size and
// runtime grow, with a little deterministic jitter.
func syntheticSamples(n int) Samples {
	s := Samples{
		bench.Loss:      make([]float64, n),
		bench.Runtime:   make([]float64, n),
		bench.ModelSize: make([]float64, n),
		bench.Precision: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		s[bench.ModelSize][i] = 1 + 100*x
		s[bench.Runtime][i] = 10 + 50*x + float64((i*7)%5)
		s[bench.Loss][i] = 1 - 0.8*x + 0.01*float64((i*3)%4)
		s[bench.Precision][i] = 0.5 + 0.4*x
	}
	return s
}
