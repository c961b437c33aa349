// Package bench provides a uniform query interface over pre-computed
// hyperparameter-optimization benchmarks, plus a constraint layer that turns
// quantile levels over auxiliary objectives into numeric thresholds.
//
// # Reading Guide
//
// Start with these files:
//   - domain.go: parameter domains and configuration validation
//   - constraint_table.go: persisted constraint table rows and CSV format
//   - resolver.go: quantile levels -> numeric thresholds
//   - benchmark.go: the construction pipeline and the Query call
//
// # Architecture
//
// The bench package owns the Backend interface and the Family registry;
// implementations live in sub-packages:
//   - bench/hpobench/: indexed-table backend over HPOBench tabular MLP data
//   - bench/hpolib/: indexed-table backend over HPOLib FCNet data
//   - bench/jahs/: surrogate backend (JAHS-Bench-201) and serialized-key grid backend
//   - bench/tabular/: in-memory lookup tables shared by the table backends
//   - bench/collect/: offline quantile statistics and constraint table builder
//
// Sub-packages register their families via init(). Import them (blank import
// is enough) before calling New.
//
// Constraints are reported, not enforced: a Benchmark exposes the thresholds
// and the raw objective values, and the caller decides feasibility.
package bench
