package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chpobench/chpobench/bench"
)

var describeFamily string // family to describe; empty lists families

// FamilyDescription is the YAML document printed by the describe command.
type FamilyDescription struct {
	Name            string                     `yaml:"name"`
	Datasets        []string                   `yaml:"datasets"`
	Objectives      map[string]bench.Direction `yaml:"objectives"`
	ConstraintNames []string                   `yaml:"constraint_names"`
	ConfigSpace     []bench.DomainSpec         `yaml:"config_space"`
	FidelSpace      []bench.DomainSpec         `yaml:"fidel_space"`
	FidelDefaults   bench.Fidels               `yaml:"fidel_defaults,omitempty"`
	NumSeeds        int                        `yaml:"num_seeds"`
}

// describeCmd prints the introspection surface of a family
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a benchmark family, or list families",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDescribe(cmd.OutOrStdout(), describeFamily); err != nil {
			logrus.Fatalf("describe failed: %v", err)
		}
	},
}

func runDescribe(w io.Writer, name string) error {
	if name == "" {
		return yaml.NewEncoder(w).Encode(bench.Families())
	}
	fam, ok := bench.LookupFamily(name)
	if !ok {
		return fmt.Errorf("%w: unknown benchmark family %q (available: %v)", bench.ErrInvalidValue, name, bench.Families())
	}
	directions := make(map[string]bench.Direction, len(fam.ObjectiveNames))
	for _, obj := range fam.ObjectiveNames {
		directions[obj] = bench.DirectionOf(obj)
	}
	return yaml.NewEncoder(w).Encode(FamilyDescription{
		Name:            fam.Name,
		Datasets:        fam.DatasetNames,
		Objectives:      directions,
		ConstraintNames: fam.ConstraintNames,
		ConfigSpace:     fam.ConfigSpace.Specs(),
		FidelSpace:      fam.FidelSpace.Specs(),
		FidelDefaults:   fam.FidelDefaults,
		NumSeeds:        fam.NumSeeds,
	})
}

func init() {
	describeCmd.Flags().StringVar(&describeFamily, "family", "", "Benchmark family name")
}
