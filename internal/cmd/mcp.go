package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/mcp"
)

var mcpOutputDir string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start a Model Context Protocol server over stdio.

Exposes dashgen as tools an AI agent can call directly:
  render_dashboard - render a dashboard image from a JSON spec
  analyze_data     - analyze a dataset and suggest widgets
  list_themes      - list built-in themes
  suggest_layout   - suggest a grid arrangement for N widgets

The server speaks MCP over stdin/stdout, so it is meant to be
launched by an MCP client, not run interactively.`,
	Example: `  dashgen mcp
  dashgen mcp --output-dir renders`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir := stringOr(mcpOutputDir, cfg.Render.OutputDir)

	logf("starting MCP server (output dir %s)", outputDir)
	s := mcp.New(mcp.Config{
		OutputDir: outputDir,
		Version:   Version,
	})
	return s.ServeStdio()
}

func init() {
	mcpCmd.Flags().StringVar(&mcpOutputDir, "output-dir", "", "directory for rendered images (default from config)")
	rootCmd.AddCommand(mcpCmd)
}
