package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/iterate"
	"github.com/dashkite/dashgen/internal/llm"
	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/spec"
)

var (
	iterateSpecPath string
	iterateImage    string
	iterateModel    string
)

var iterateCmd = &cobra.Command{
	Use:   "iterate <feedback>",
	Short: "Modify a dashboard spec from natural-language feedback",
	Long: `Interpret feedback about a rendered dashboard and apply the resulting
spec changes.

The language model translates the feedback (optionally alongside the
current render image) into structured style, layout, and widget changes,
which are applied to a copy of the spec. Unlike analyze, a model failure
fails the command.

Examples:
  dashgen iterate "fonts are too small" --spec spec.json
  dashgen iterate "too much empty space at the top" --spec spec.json --image output/dashboard.png`,
	Args: cobra.ExactArgs(1),
	RunE: runIterate,
}

func runIterate(cmd *cobra.Command, args []string) error {
	feedback := args[0]

	var specArgs []string
	if iterateSpecPath != "" {
		specArgs = []string{iterateSpecPath}
	}
	raw, err := readInput(specArgs)
	if err != nil {
		return err
	}
	d, err := spec.Parse(raw)
	if err != nil {
		return err
	}

	var image []byte
	if iterateImage != "" {
		image, err = os.ReadFile(iterateImage)
		if err != nil {
			return fmt.Errorf("%w: read image %s: %v", spec.ErrInvalidInput, iterateImage, err)
		}
	}

	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	modifier := &iterate.Modifier{
		Client: llm.New(),
		Model:  stringOr(iterateModel, appCfg.Models.Worker),
	}

	logf("interpreting feedback: %s", feedback)
	mod, err := modifier.Interpret(cmd.Context(), feedback, d, image)
	if err != nil {
		return err
	}
	modified := iterate.Apply(d, mod)

	return output.Emit(map[string]any{
		"spec":      modified,
		"reasoning": mod.Reasoning,
		"changes":   iterate.Describe(mod),
	})
}

func init() {
	iterateCmd.Flags().StringVar(&iterateSpecPath, "spec", "", "Current spec file (default: stdin)")
	iterateCmd.Flags().StringVar(&iterateImage, "image", "", "Current render image for visual context")
	iterateCmd.Flags().StringVar(&iterateModel, "model", "", "Model id (default: DASHGEN_MODEL or config)")
	rootCmd.AddCommand(iterateCmd)
}
