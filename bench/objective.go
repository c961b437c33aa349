package bench

import "sort"

// Objective names.
const (
	Loss      = "loss"
	Runtime   = "runtime"
	ModelSize = "model_size"
	Precision = "precision"
	F1        = "f1"
)

// Objectives maps objective names to values. Loss is always present in a
// full result; Query trims it to the requested metrics.
type Objectives map[string]float64

// Direction is the optimization direction of an objective.
type Direction string

const (
	Minimize Direction = "minimize"
	Maximize Direction = "maximize"
)

// objectiveDirections is the direction of every known objective.
var objectiveDirections = map[string]Direction{
	Loss:      Minimize,
	Runtime:   Minimize,
	ModelSize: Minimize,
	Precision: Maximize,
	F1:        Maximize,
}

// IsKnownObjective reports whether name is a recognized objective.
func IsKnownObjective(name string) bool {
	_, ok := objectiveDirections[name]
	return ok
}

// DirectionOf returns the optimization direction of name. Unknown names
// minimize.
func DirectionOf(name string) Direction {
	if d, ok := objectiveDirections[name]; ok {
		return d
	}
	return Minimize
}

// HigherIsBetter reports whether larger values of name are preferred.
func HigherIsBetter(name string) bool {
	return DirectionOf(name) == Maximize
}

// Satisfies reports whether value meets threshold for objective name:
// value <= threshold when minimizing, value >= threshold when maximizing.
func Satisfies(name string, value, threshold float64) bool {
	if HigherIsBetter(name) {
		return value >= threshold
	}
	return value <= threshold
}

// QuantileLevels is the closed, ordered set of valid quantile levels.
var QuantileLevels = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 1.0}

// Unconstrained is the least restrictive quantile level.
const Unconstrained = 1.0

// IsQuantileLevel reports whether q is exactly one of QuantileLevels.
func IsQuantileLevel(q float64) bool {
	i := sort.SearchFloat64s(QuantileLevels, q)
	return i < len(QuantileLevels) && QuantileLevels[i] == q
}
