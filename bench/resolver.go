package bench

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Constraints maps auxiliary objective names to numeric thresholds.
type Constraints map[string]float64

// Clone returns an independent copy.
func (c Constraints) Clone() Constraints {
	out := make(Constraints, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ResolveConstraints finds the unique row of t whose levels match requested
// on every dimension, with absent dimensions taken as Unconstrained, and
// returns the thresholds of the requested dimensions only.
//
// Errors: ErrInvalidValue for an unknown dimension or a level outside
// QuantileLevels; ErrConfiguration when zero or several rows match;
// ErrTooRestrictive when the matched row has feasible ratio 0.
func ResolveConstraints(t *ConstraintTable, requested map[string]float64) (Constraints, error) {
	if t == nil || len(t.Dims) == 0 {
		return nil, fmt.Errorf("%w: empty constraint table", ErrConfiguration)
	}
	levels := make([]float64, len(t.Dims))
	for i := range levels {
		levels[i] = Unconstrained
	}
	for name, q := range requested {
		d := t.DimIndex(name)
		if d < 0 {
			return nil, fmt.Errorf("%w: %q is not a constraint dimension (available: %v)", ErrInvalidValue, name, t.Dims)
		}
		if !IsQuantileLevel(q) {
			return nil, fmt.Errorf("%w: quantile for %q must be in %v, but got %v", ErrInvalidValue, name, QuantileLevels, q)
		}
		levels[d] = q
	}

	match := -1
	nMatches := 0
	for i, row := range t.Rows {
		if rowMatches(row, levels) {
			match = i
			nMatches++
		}
	}
	if nMatches != 1 {
		return nil, fmt.Errorf("%w: %d constraint table rows match levels %v of %v, want exactly 1",
			ErrConfiguration, nMatches, levels, t.Dims)
	}

	row := t.Rows[match]
	if row.FeasibleRatio == 0 {
		return nil, fmt.Errorf("%w: no configuration satisfies levels %v of %v; loosen at least one quantile",
			ErrTooRestrictive, levels, t.Dims)
	}

	out := make(Constraints, len(requested))
	for name := range requested {
		out[name] = row.Thresholds[t.DimIndex(name)]
	}
	logrus.Debugf("Resolved constraints %v -> %v (feasible ratio %.4f)", sortedLevels(requested), out, row.FeasibleRatio)
	return out, nil
}

func rowMatches(row ConstraintRow, levels []float64) bool {
	if len(row.Levels) != len(levels) {
		return false
	}
	for i, q := range levels {
		if row.Levels[i] != q {
			return false
		}
	}
	return true
}

func sortedLevels(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, fmt.Sprintf("%s=%g", k, v))
	}
	sort.Strings(out)
	return out
}
