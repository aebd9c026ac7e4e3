package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/export"
	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
	"github.com/dashkite/dashgen/internal/widget"
)

// Shared flags for the single-widget render commands
var (
	widgetTheme      string
	widgetOutputDir  string
	widgetFilename   string
	widgetFormat     string
	widgetResolution string
	widgetScale      float64
)

var chartCmd = &cobra.Command{
	Use:   "chart [config-file]",
	Short: "Render a single chart widget",
	Long: `Render one chart widget to an image from a JSON config.

The config is the widget's config block: chart_type (bar, line, pie,
scatter, area, heatmap), data, and optional title/labels.

Examples:
  dashgen chart config.json
  echo '{"chart_type":"bar","data":{"x":["a","b"],"y":[1,2]}}' | dashgen chart
  dashgen chart config.json --theme dark --format svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidget(spec.TypeChart, args)
	},
}

var kpiCmd = &cobra.Command{
	Use:   "kpi [config-file]",
	Short: "Render a single KPI card",
	Long: `Render one KPI card to an image from a JSON config.

The config carries value, label, and optional delta/format/sparkline.

Examples:
  dashgen kpi config.json
  echo '{"value":42000,"label":"Revenue","delta":"+12%"}' | dashgen kpi`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidget(spec.TypeKPI, args)
	},
}

var tableCmd = &cobra.Command{
	Use:   "table [config-file]",
	Short: "Render a single table widget",
	Long: `Render one data table to an image from a JSON config.

The config carries headers and row-major rows, with optional title,
column widths, and a highlighted column.

Examples:
  dashgen table config.json --theme minimal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidget(spec.TypeTable, args)
	},
}

var gaugeCmd = &cobra.Command{
	Use:   "gauge [config-file]",
	Short: "Render a single gauge widget",
	Long: `Render one gauge to an image from a JSON config.

The config carries value, min/max, label, unit, and optional thresholds
that color the dial.

Examples:
  echo '{"value":72,"label":"CPU","unit":"%"}' | dashgen gauge`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidget(spec.TypeGauge, args)
	},
}

func runWidget(widgetType string, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	var cfg json.RawMessage
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%w: parse widget config: %v", spec.ErrInvalidInput, err)
	}

	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	th, err := theme.Load(stringOr(widgetTheme, appCfg.Render.Theme))
	if err != nil {
		return err
	}

	fig, err := widget.Render(spec.Widget{Type: widgetType, Config: cfg}, th, 1.0)
	if err != nil {
		return err
	}
	theme.ApplyLayout(fig, th)

	format, err := export.ParseFormat(stringOr(widgetFormat, appCfg.Render.Format))
	if err != nil {
		return err
	}
	w, h, err := export.ParseResolution(stringOr(widgetResolution, appCfg.Render.Resolution))
	if err != nil {
		return err
	}

	scale := widgetScale
	if scale == 0 {
		scale = appCfg.Render.Scale
	}

	logf("rendering %s widget to %s", widgetType, widgetOutputDir)
	path, err := export.Export(fig, export.Options{
		Dir:      stringOr(widgetOutputDir, appCfg.Render.OutputDir),
		Filename: stringOr(widgetFilename, widgetType),
		Format:   format,
		Width:    w,
		Height:   h,
		Scale:    scale,
	})
	if err != nil {
		return err
	}

	return output.Emit(map[string]any{"path": path, "widget_type": widgetType})
}

func init() {
	for _, c := range []*cobra.Command{chartCmd, kpiCmd, tableCmd, gaugeCmd} {
		c.Flags().StringVar(&widgetTheme, "theme", "", "Theme name or theme file path")
		c.Flags().StringVar(&widgetOutputDir, "output-dir", "", "Output directory (default from config)")
		c.Flags().StringVar(&widgetFilename, "filename", "", "Output filename without extension (default: widget type)")
		c.Flags().StringVar(&widgetFormat, "format", "", "Output format: png, svg, pdf")
		c.Flags().StringVar(&widgetResolution, "resolution", "", "Resolution preset (1080p, 4k, 720p) or WxH")
		c.Flags().Float64Var(&widgetScale, "scale", 0, "Raster scale multiplier")
		rootCmd.AddCommand(c)
	}
}
