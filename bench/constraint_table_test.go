package bench

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoDimTable builds a full 11x11 table where the threshold of each dimension
// equals 10*level and the feasible ratio is the product of both levels.
func twoDimTable() *ConstraintTable {
	t := &ConstraintTable{Dims: []string{ModelSize, Runtime}}
	for _, q1 := range QuantileLevels {
		for _, q2 := range QuantileLevels {
			t.Rows = append(t.Rows, ConstraintRow{
				Levels:        []float64{q1, q2},
				Thresholds:    []float64{10 * q1, 100 * q2},
				OptimalVal:    1 - q1*q2,
				FeasibleRatio: q1 * q2,
				Top10Overlap:  0.5,
				Top1Overlap:   0.05,
			})
		}
	}
	return t
}

func TestConstraintTable_WriteReadRoundTrip(t *testing.T) {
	table := twoDimTable()
	table.Rows[0].OptimalVal = math.NaN()

	var buf bytes.Buffer
	require.NoError(t, WriteConstraintTable(&buf, table))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, "model_size_quantile,model_size_threshold,runtime_quantile,runtime_threshold,optimal_val,feasible_ratio,top_10%_overlap,top_1%_overlap", header)

	got, err := ReadConstraintTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Dims, got.Dims)
	require.Len(t, got.Rows, len(QuantileLevels)*len(QuantileLevels))

	assert.False(t, got.Rows[0].HasOptimal(), "missing optimal_val must survive the round trip")
	for i := 1; i < len(got.Rows); i++ {
		assert.Equal(t, table.Rows[i], got.Rows[i], "row %d", i)
	}
}

func TestConstraintTable_SaveAndLoad(t *testing.T) {
	path := ConstraintTablePath(filepath.Join(t.TempDir(), "metadata"), "cifar10")
	assert.Equal(t, "cifar10.csv", filepath.Base(path))

	require.NoError(t, SaveConstraintTable(path, twoDimTable()))
	got, err := LoadConstraintTable(path)
	require.NoError(t, err)
	assert.Len(t, got.Rows, 121)
}

func TestReadConstraintTable_SingleDim(t *testing.T) {
	csv := "runtime_quantile,runtime_threshold,optimal_val,feasible_ratio,top_10%_overlap,top_1%_overlap\n" +
		"0.5,2.0,0.3,0.6666666666666666,0.5,0\n" +
		"1,3,0.3,1,0.3333333333333333,0\n"
	table, err := ReadConstraintTable(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{Runtime}, table.Dims)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []float64{1}, table.Rows[1].Levels)
	assert.Equal(t, []float64{3}, table.Rows[1].Thresholds)
	assert.Equal(t, 0, table.DimIndex(Runtime))
	assert.Equal(t, -1, table.DimIndex(ModelSize))
}

func TestReadConstraintTable_Malformed(t *testing.T) {
	stats := "optimal_val,feasible_ratio,top_10%_overlap,top_1%_overlap"
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"quantile without threshold", "runtime_quantile," + stats + "\n"},
		{"threshold for another objective", "runtime_quantile,model_size_threshold," + stats + "\n"},
		{"no quantile columns", stats + "\n"},
		{"missing stat column", "runtime_quantile,runtime_threshold,optimal_val,feasible_ratio,top_10%_overlap\n"},
		{"unexpected column", "runtime_quantile,runtime_threshold,notes," + stats + "\n"},
		{"short row", "runtime_quantile,runtime_threshold," + stats + "\n0.5,2,0.3\n"},
		{"bad float", "runtime_quantile,runtime_threshold," + stats + "\nhalf,2,0.3,1,0,0\n"},
		{"missing threshold", "runtime_quantile,runtime_threshold," + stats + "\n0.5,,0.3,1,0,0\n"},
		{"duplicate dimension", "runtime_quantile,runtime_threshold,runtime_quantile,runtime_threshold," + stats + "\n"},
		{"duplicate stat column", "runtime_quantile,runtime_threshold," + stats + ",feasible_ratio\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConstraintTable(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "want ErrConfiguration, got %v", err)
		})
	}
}

func TestWriteConstraintTable_RejectsMisalignedRow(t *testing.T) {
	table := &ConstraintTable{
		Dims: []string{Runtime},
		Rows: []ConstraintRow{{Levels: []float64{0.5, 0.5}, Thresholds: []float64{1}}},
	}
	var buf bytes.Buffer
	assert.Error(t, WriteConstraintTable(&buf, table))
}
