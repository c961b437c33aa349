package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chpobench/chpobench/bench"
)

var (
	optionsPath string            // benchmark options YAML
	configPath  string            // configuration YAML
	fidelFlags  map[string]string // fidelity overrides
)

// QueryResult is the JSON document printed by the query command.
type QueryResult struct {
	Family      string            `json:"family"`
	Dataset     string            `json:"dataset"`
	Constraints bench.Constraints `json:"constraints"`
	Objectives  bench.Objectives  `json:"objectives"`
}

// queryCmd evaluates one configuration
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a benchmark for one configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runQuery(cmd.OutOrStdout(), optionsPath, configPath, fidelFlags); err != nil {
			logrus.Fatalf("query failed: %v", err)
		}
	},
}

func runQuery(w io.Writer, optsPath, cfgPath string, rawFidels map[string]string) error {
	opts, err := bench.LoadOptions(optsPath)
	if err != nil {
		return err
	}
	if opts.Family == "" {
		return fmt.Errorf("%w: options must name a family (one of %v)", bench.ErrInvalidValue, bench.Families())
	}
	b, err := bench.New(opts.Family, *opts)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg bench.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	fidels, err := parseScalars(rawFidels)
	if err != nil {
		return err
	}

	objectives, err := b.Query(cfg, fidels)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(QueryResult{
		Family:      b.Family(),
		Dataset:     b.Dataset(),
		Constraints: b.Constraints(),
		Objectives:  objectives,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// parseScalars decodes each flag value as a YAML scalar so "27" becomes an
// int and "0.5" a float.
func parseScalars(raw map[string]string) (bench.Fidels, error) {
	out := make(bench.Fidels, len(raw))
	for name, s := range raw {
		var v any
		if err := yaml.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("%w: fidelity %q: %v", bench.ErrInvalidValue, name, err)
		}
		out[name] = v
	}
	return out, nil
}

func init() {
	queryCmd.Flags().StringVar(&optionsPath, "options", "", "Benchmark options YAML (family, data_path, dataset, quantiles, ...)")
	queryCmd.Flags().StringVar(&configPath, "config", "", "Configuration YAML")
	queryCmd.Flags().StringToStringVar(&fidelFlags, "fidel", nil, "Fidelity values, e.g. epochs=27")
}
