package hpolib

import "github.com/chpobench/chpobench/bench"

func init() {
	bench.Register(bench.Family{
		Name:            Name,
		DatasetNames:    DatasetNames,
		ObjectiveNames:  []string{bench.ModelSize, bench.Runtime, bench.Loss},
		ConstraintNames: []string{bench.ModelSize, bench.Runtime},
		ConfigSpace:     configSpace,
		FidelSpace:      fidelSpace,
		FidelDefaults:   bench.Fidels{"epochs": MaxEpochs},
		NumSeeds:        NumSeeds,
		Open:            open,
	})
}
