package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chpobench/chpobench/bench"
	"github.com/chpobench/chpobench/bench/collect"
)

var (
	samplesPath string            // CSV of objective values, one row per (config, seed)
	buildDims   []string          // constrained objectives, 1 or 2
	renameCols  map[string]string // raw column -> objective name
	tableOut    string            // output constraint table path
)

// buildCmd computes a dataset's constraint table from its full objective enumeration
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a constraint table from an exhaustive samples CSV",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBuild(samplesPath, buildDims, renameCols, tableOut); err != nil {
			logrus.Fatalf("build failed: %v", err)
		}
		logrus.Infof("Wrote constraint table to %s", tableOut)
	},
}

// runBuild loads samples, builds the table over bench.QuantileLevels and
// saves it to out.
func runBuild(samples string, dims []string, rename map[string]string, out string) error {
	if samples == "" || out == "" {
		return fmt.Errorf("--samples and --out are required")
	}
	s, err := collect.LoadSamplesCSV(samples, rename)
	if err != nil {
		return err
	}
	table, err := collect.NewBuilder().Build(s, dims)
	if err != nil {
		return err
	}
	return bench.SaveConstraintTable(out, table)
}

func init() {
	buildCmd.Flags().StringVar(&samplesPath, "samples", "", "CSV with one column per objective")
	buildCmd.Flags().StringSliceVar(&buildDims, "dims", []string{bench.ModelSize, bench.Runtime}, "Constrained objectives (1 or 2)")
	buildCmd.Flags().StringToStringVar(&renameCols, "rename", nil, "Rename raw columns, e.g. valid_mse=loss,n_params=model_size")
	buildCmd.Flags().StringVar(&tableOut, "out", "", "Output constraint table CSV, conventionally <metadata-dir>/<dataset>.csv")
}
