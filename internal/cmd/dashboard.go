package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/dashboard"
	"github.com/dashkite/dashgen/internal/export"
	"github.com/dashkite/dashgen/internal/llm"
	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
	"github.com/dashkite/dashgen/internal/validate"
)

var (
	dashTheme        string
	dashOutputDir    string
	dashFilename     string
	dashFormat       string
	dashResolution   string
	dashScale        float64
	vlmValidate      bool
	vlmMaxIterations int
	vlmModel         string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [spec-file]",
	Short: "Render a complete dashboard from a spec",
	Long: `Render a multi-widget dashboard image from a JSON spec.

The spec carries a title, a grid layout (columns, rows), an optional
style block (preset plus field overrides), and a list of widgets with
grid positions.

With --vlm-validate the render is shown to a vision model, reported
layout issues are mapped to spec corrections, and the dashboard is
re-rendered until the model accepts the layout or the iteration cap is
reached. Each extra iteration writes {filename}_iter{n}.

Examples:
  dashgen dashboard spec.json
  dashgen dashboard spec.json --theme dark --resolution 4k
  dashgen dashboard spec.json --vlm-validate --vlm-max-iterations 5
  cat spec.json | dashgen dashboard --format pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	d, err := spec.Parse(data)
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	th, err := theme.Load(stringOr(dashTheme, appCfg.Render.Theme))
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(stringOr(dashFormat, appCfg.Render.Format))
	if err != nil {
		return err
	}

	scale := dashScale
	if scale == 0 {
		scale = appCfg.Render.Scale
	}
	opts := dashboard.RenderOptions{
		OutputDir:  stringOr(dashOutputDir, appCfg.Render.OutputDir),
		Filename:   stringOr(dashFilename, "dashboard"),
		Format:     format,
		Resolution: stringOr(dashResolution, appCfg.Render.Resolution),
		Scale:      scale,
	}

	if !vlmValidate {
		logf("rendering dashboard with %d widgets", len(d.Widgets))
		path, err := dashboard.Render(d, th, opts)
		if err != nil {
			return err
		}
		return output.Emit(map[string]any{"path": path, "widgets": len(d.Widgets)})
	}

	maxIter := vlmMaxIterations
	if maxIter == 0 {
		maxIter = appCfg.Validation.MaxIterations
	}
	engine := validate.Engine{
		MaxRows:    appCfg.Validation.MaxGridRows,
		MaxColumns: appCfg.Validation.MaxGridColumns,
	}
	evaluator := validate.NewVLMEvaluator(llm.New(), stringOr(vlmModel, appCfg.Models.Vision))

	logf("rendering dashboard with validation, max %d iterations", maxIter)
	result, err := dashboard.RenderValidated(cmd.Context(), d, th, opts, evaluator, engine, maxIter)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"path":       result.Path,
		"paths":      result.Paths,
		"iterations": result.Iterations,
		"accepted":   result.Accepted,
	}
	if len(result.History) > 0 {
		fields["validation"] = result.History
	}
	if len(result.Corrections) > 0 {
		fields["corrections"] = result.Corrections
	}
	if result.Warning != "" {
		fields["warning"] = result.Warning
	}
	if result.VLMError != "" {
		fields["vlm_error"] = result.VLMError
	}
	return output.Emit(fields)
}

func init() {
	dashboardCmd.Flags().StringVar(&dashTheme, "theme", "", "Theme name or theme file path")
	dashboardCmd.Flags().StringVar(&dashOutputDir, "output-dir", "", "Output directory (default from config)")
	dashboardCmd.Flags().StringVar(&dashFilename, "filename", "dashboard", "Output filename without extension")
	dashboardCmd.Flags().StringVar(&dashFormat, "format", "", "Output format: png, svg, pdf")
	dashboardCmd.Flags().StringVar(&dashResolution, "resolution", "", "Resolution preset (1080p, 4k, 720p) or WxH")
	dashboardCmd.Flags().Float64Var(&dashScale, "scale", 0, "Raster scale multiplier")
	dashboardCmd.Flags().BoolVar(&vlmValidate, "vlm-validate", false, "Validate the render with a vision model and auto-correct the layout")
	dashboardCmd.Flags().IntVar(&vlmMaxIterations, "vlm-max-iterations", 0, "Maximum validation iterations (default from config)")
	dashboardCmd.Flags().StringVar(&vlmModel, "vlm-model", "", "Vision model id (default: DASHGEN_VLM_MODEL or config)")
	rootCmd.AddCommand(dashboardCmd)
}
