package jahs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chpobench/chpobench/bench"
	"github.com/chpobench/chpobench/bench/internal/testutil"
)

// linearSurrogate predicts accuracy from the learning rate and runtime from
// epochs, and records what it was asked.
type linearSurrogate struct {
	metrics  []string
	features map[string]any
	epochs   int
}

func (s *linearSurrogate) Predict(features map[string]any, epochs int) (map[string]float64, error) {
	s.features, s.epochs = features, epochs
	lr, _ := bench.AsFloat(features["LearningRate"])
	res, _ := bench.AsFloat(features["Resolution"])
	out := map[string]float64{}
	for _, m := range s.metrics {
		switch m {
		case MetricValidAcc:
			out[m] = 90 - 10*lr
		case MetricRuntime:
			out[m] = float64(epochs) * res * 10
		case MetricSizeMB:
			out[m] = 1.5
		}
	}
	return out, nil
}

func withSurrogate(t *testing.T) *linearSurrogate {
	t.Helper()
	s := &linearSurrogate{}
	prev := NewSurrogateFunc
	NewSurrogateFunc = func(task, saveDir string, metrics []string) (Surrogate, error) {
		if task == "fashion_mnist" {
			return nil, fmt.Errorf("no model saved for %s", task)
		}
		s.metrics = metrics
		return s, nil
	}
	t.Cleanup(func() { NewSurrogateFunc = prev })
	return s
}

func surrogateCfg(lr float64) bench.Config {
	return bench.Config{
		"LearningRate":   lr,
		"WeightDecay":    1e-4,
		"Activation":     "Mish",
		"N":              5,
		"Op1":            0,
		"Op2":            1,
		"Op3":            2,
		"Op4":            3,
		"Op5":            4,
		"Op6":            0,
		"TrivialAugment": true,
		"W":              16,
	}
}

func TestSurrogate_Query(t *testing.T) {
	s := withSurrogate(t)
	b, err := NewSurrogate(bench.Options{DataPath: t.TempDir(), Dataset: "cifar10"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{MetricSizeMB, MetricRuntime, MetricValidAcc}, s.metrics)

	got, err := b.Query(surrogateCfg(0.5), nil)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got[bench.Loss], 1e-9, "loss is 100 - valid-acc")
	assert.Equal(t, 2000.0, got[bench.Runtime], "defaults: 200 epochs at resolution 1.0")
	assert.Equal(t, 1.5, got[bench.ModelSize])

	assert.Equal(t, Optimizer, s.features["Optimizer"])
	assert.Equal(t, MaxEpochs, s.epochs)

	got, err = b.Query(surrogateCfg(0.5), bench.Fidels{"epochs": 20, "Resolution": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got[bench.Runtime])
}

func TestSurrogate_QueryValidation(t *testing.T) {
	withSurrogate(t)
	b, err := NewSurrogate(bench.Options{DataPath: t.TempDir(), Dataset: "cifar10"})
	require.NoError(t, err)

	_, err = b.Query(surrogateCfg(2.0), nil)
	assert.True(t, errors.Is(err, bench.ErrInvalidValue), "learning rate above 1: %v", err)

	_, err = b.Query(surrogateCfg(0.5), bench.Fidels{"epochs": 201})
	assert.True(t, errors.Is(err, bench.ErrOutOfRange), "got %v", err)

	_, err = b.Query(surrogateCfg(0.5), bench.Fidels{"Resolution": 1.5})
	assert.True(t, errors.Is(err, bench.ErrOutOfRange), "got %v", err)
}

func TestSurrogate_OnlyRequestedMetricsLoaded(t *testing.T) {
	s := withSurrogate(t)
	b, err := NewSurrogate(bench.Options{DataPath: t.TempDir(), Dataset: "cifar10", MetricNames: []string{bench.Loss}})
	require.NoError(t, err)
	assert.Equal(t, []string{MetricValidAcc}, s.metrics)

	got, err := b.Query(surrogateCfg(0.1), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSurrogate_LoaderErrors(t *testing.T) {
	prev := NewSurrogateFunc
	NewSurrogateFunc = nil
	_, err := NewSurrogate(bench.Options{DataPath: t.TempDir(), Dataset: "cifar10"})
	assert.True(t, errors.Is(err, bench.ErrConfiguration), "no loader: %v", err)
	NewSurrogateFunc = prev

	withSurrogate(t)
	_, err = NewSurrogate(bench.Options{DataPath: t.TempDir(), Dataset: "fashion_mnist"})
	assert.ErrorContains(t, err, "no model saved")
}

// gridCSV writes a two-row grid for cifar10 in the collected column layout.
func gridCSV(t *testing.T) string {
	t.Helper()
	header := "LearningRate,WeightDecay,Activation,N,Op1,Op2,Op3,Op4,Op5,Op6,TrivialAugment,W,valid-err,size_MB,runtime\n"
	rows := []string{
		"0.1,0.0001,Mish,5,0,1,2,3,4,0,True,16,12.5,1.5,3600",
		"1.0,0.01,ReLU,1,0,0,0,0,0,0,False,4,80,0.1,900",
	}
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "cifar10.csv", header+strings.Join(rows, "\n")+"\n")
	return dir
}

func TestGrid_Query(t *testing.T) {
	b, err := NewGrid(bench.Options{DataPath: gridCSV(t), Dataset: "cifar10"})
	require.NoError(t, err)
	assert.Empty(t, b.FidelSpace())

	got, err := b.Query(surrogateCfg(0.1), nil)
	require.NoError(t, err)
	assert.Equal(t, bench.Objectives{bench.Loss: 12.5, bench.ModelSize: 1.5, bench.Runtime: 3600}, got)

	_, err = b.Query(surrogateCfg(0.01), nil)
	assert.True(t, errors.Is(err, bench.ErrNotFound), "grid point not collected: %v", err)

	_, err = b.Query(surrogateCfg(0.5), nil)
	assert.True(t, errors.Is(err, bench.ErrInvalidValue), "off-grid learning rate: %v", err)

	_, err = b.Query(surrogateCfg(0.1), bench.Fidels{"epochs": 10})
	assert.True(t, errors.Is(err, bench.ErrInvalidValue), "grid has no fidelities: %v", err)
}

func TestRegisteredFamilies(t *testing.T) {
	sur, ok := bench.LookupFamily(SurrogateName)
	require.True(t, ok)
	grid, ok := bench.LookupFamily(GridName)
	require.True(t, ok)
	assert.Equal(t, sur.ConfigSpace.Names(), grid.ConfigSpace.Names(), "both forms share the canonical order")
	assert.Equal(t, 0, sur.NumSeeds)
	assert.Equal(t, bench.Fidels{"epochs": MaxEpochs, "Resolution": DefaultResolution}, sur.FidelDefaults)
}
