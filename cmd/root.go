package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Benchmark families register themselves on import.
	_ "github.com/chpobench/chpobench/bench/hpobench"
	_ "github.com/chpobench/chpobench/bench/hpolib"
	_ "github.com/chpobench/chpobench/bench/jahs"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "chpobench",
	Short: "Constrained HPO benchmark lookups and constraint tables",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(constraintsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(describeCmd)
}
