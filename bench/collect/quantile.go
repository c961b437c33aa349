// Package collect computes, offline, the per-dataset constraint tables that
// bench loads at construction time. Input is an exhaustive enumeration of the
// objective values of every configuration (and every recorded seed) of one
// dataset, not a sample.
package collect

import (
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/chpobench/chpobench/bench"
)

// NearestRankIndex returns the 0-based position floor(n*q) - 1 of the
// nearest-rank quantile q over n sorted values, clamped into [0, n-1].
// clamped reports whether the raw index fell outside that range.
func NearestRankIndex(n int, q float64) (idx int, clamped bool) {
	raw := int(math.Floor(float64(n)*q)) - 1
	idx = clamp(raw, 0, n-1)
	return idx, idx != raw
}

// Thresholds returns the value at each level of values under the
// nearest-rank estimator. Values are ranked ascending, or descending when
// higherIsBetter, so that level 1.0 is always the least restrictive
// threshold. values is not modified.
func Thresholds[T constraints.Float](values []T, levels []float64, higherIsBetter bool) ([]T, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("quantile thresholds of an empty sample")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if higherIsBetter {
		slices.Reverse(sorted)
	}

	out := make([]T, len(levels))
	for i, q := range levels {
		if q <= 0 || q > 1 || math.IsNaN(q) {
			return nil, fmt.Errorf("quantile level must be in (0, 1], got %v", q)
		}
		idx, clamped := NearestRankIndex(n, q)
		if clamped {
			logrus.Warnf("Quantile %g over %d samples: rank index clamped to %d", q, n, idx)
		}
		out[i] = sorted[idx]
	}
	return out, nil
}

// ComputeStatistics returns, for each named objective, its thresholds at
// every level. Objectives are ranked by their bench.Direction.
func ComputeStatistics(samples Samples, names []string, levels []float64) (map[string][]float64, error) {
	if _, err := samples.Len(); err != nil {
		return nil, err
	}
	stats := make(map[string][]float64, len(names))
	for _, name := range names {
		values, ok := samples[name]
		if !ok {
			return nil, fmt.Errorf("samples have no objective %q", name)
		}
		th, err := Thresholds(values, levels, bench.HigherIsBetter(name))
		if err != nil {
			return nil, fmt.Errorf("thresholds of %q: %w", name, err)
		}
		stats[name] = th
	}
	return stats, nil
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
