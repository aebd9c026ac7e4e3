// Package cmd contains all CLI commands for dashgen.
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/output"
)

// Version is the current version of dashgen
var Version = "0.1.0"

// Global flags
var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashgen",
	Short: "Dashboard image generator",
	Long: `dashgen renders presentation-ready dashboard images from JSON
specifications.

It composes charts, KPI cards, tables, and gauges onto a grid, exports
PNG/SVG/PDF, and can optionally use a language model to analyze data,
interpret feedback, and visually validate renders.

Every command reads its input from a file argument or stdin and prints
exactly one JSON object to stdout with at least {"success": bool}.

Examples:
  dashgen dashboard spec.json                 # Render a dashboard
  dashgen dashboard spec.json --vlm-validate  # Render with visual validation
  dashgen chart config.json --theme dark      # Render a single chart
  dashgen analyze data.json                   # Recommend widgets for a dataset
  dashgen config save spec.json --name sales  # Save a spec for reuse

See 'dashgen <command> --help' for command-specific options.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Failures surface as a JSON envelope on
// stdout and a nonzero exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Fail(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .dashgen/config.yaml)")
}

// logf writes progress to stderr when --verbose is set, keeping stdout
// reserved for the JSON envelope.
func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
