package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/config"
	"github.com/dashkite/dashgen/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .dashgen directory with a default config",
	Long: `Write the default configuration to .dashgen/config.yaml in the current
directory. Fails when a config file already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.SaveDefault(".")
		if err != nil {
			return err
		}
		return output.Emit(map[string]any{"config_path": path})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
