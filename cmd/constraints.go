package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chpobench/chpobench/bench"
)

var (
	tablePath      string            // constraint table CSV
	quantileLevels map[string]string // objective -> quantile level
)

// constraintsCmd resolves quantile levels against a persisted table
var constraintsCmd = &cobra.Command{
	Use:   "constraints",
	Short: "Resolve quantile levels to thresholds using a constraint table",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConstraints(cmd.OutOrStdout(), tablePath, quantileLevels); err != nil {
			logrus.Fatalf("resolve failed: %v", err)
		}
	},
}

func runConstraints(w io.Writer, path string, levels map[string]string) error {
	requested, err := parseLevels(levels)
	if err != nil {
		return err
	}
	table, err := bench.LoadConstraintTable(path)
	if err != nil {
		return err
	}
	constraints, err := bench.ResolveConstraints(table, requested)
	if err != nil {
		return err
	}
	return yaml.NewEncoder(w).Encode(constraints)
}

// parseLevels converts name=level flag pairs to floats.
func parseLevels(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for name, s := range raw {
		q, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: quantile for %q: %v", bench.ErrInvalidValue, name, err)
		}
		out[name] = q
	}
	return out, nil
}

func init() {
	constraintsCmd.Flags().StringVar(&tablePath, "table", "", "Constraint table CSV")
	constraintsCmd.Flags().StringToStringVar(&quantileLevels, "quantile", nil, "Quantile levels, e.g. runtime=0.1,model_size=0.5")
}
