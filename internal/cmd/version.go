package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dashgen version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Emit(map[string]any{"version": Version})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
