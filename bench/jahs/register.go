package jahs

import "github.com/chpobench/chpobench/bench"

func init() {
	objectives := []string{bench.ModelSize, bench.Runtime, bench.Loss}
	constraints := []string{bench.ModelSize, bench.Runtime}

	bench.Register(bench.Family{
		Name:            SurrogateName,
		DatasetNames:    DatasetNames,
		ObjectiveNames:  objectives,
		ConstraintNames: constraints,
		ConfigSpace:     surrogateSpace,
		FidelSpace:      fidelSpace,
		FidelDefaults:   bench.Fidels{"epochs": MaxEpochs, "Resolution": DefaultResolution},
		Open:            openSurrogate,
	})
	bench.Register(bench.Family{
		Name:            GridName,
		DatasetNames:    DatasetNames,
		ObjectiveNames:  objectives,
		ConstraintNames: constraints,
		ConfigSpace:     gridSpace,
		FidelSpace:      bench.Space{},
		Open:            openGrid,
	})
}
