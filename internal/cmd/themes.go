package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the built-in themes with their color palettes. Any command that
takes --theme also accepts a path to a JSON or YAML theme file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := theme.Names()
		themes := make(map[string]theme.Theme, len(names))
		for _, name := range names {
			t, err := theme.Load(name)
			if err != nil {
				return err
			}
			themes[name] = t
		}
		return output.Emit(map[string]any{"themes": names, "details": themes})
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
