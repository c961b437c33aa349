// register.go wires the HPOBench family into the bench registry. The init()
// runs when any package imports bench/hpobench.

package hpobench

import "github.com/chpobench/chpobench/bench"

func init() {
	bench.Register(bench.Family{
		Name:            Name,
		DatasetNames:    DatasetNames,
		ObjectiveNames:  []string{bench.Precision, bench.F1, bench.Runtime, bench.Loss},
		ConstraintNames: []string{bench.Precision, bench.Runtime},
		ConfigSpace:     configSpace,
		FidelSpace:      fidelSpace,
		FidelDefaults:   bench.Fidels{"epochs": EpochChoices[len(EpochChoices)-1]},
		NumSeeds:        NumSeeds,
		Open:            open,
	})
}
