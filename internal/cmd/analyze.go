package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/analyze"
	"github.com/dashkite/dashgen/internal/llm"
	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/repo"
	"github.com/dashkite/dashgen/internal/spec"
)

var (
	analyzeNoLLM     bool
	analyzeModel     string
	analyzeQuestions bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [data-file]",
	Short: "Analyze a dataset and recommend dashboard widgets",
	Long: `Analyze a JSON dataset and recommend a dashboard design.

The input is an object whose keys are field names and whose values are
arrays of samples. Field types are inferred by rules (numeric, temporal,
categorical, ...), visualization patterns are detected, and widgets are
suggested with priorities. A schema fingerprint is computed and matched
against saved configs.

By default a language model refines the rule-based analysis; --no-llm
or --questions=false keep it rule-based (refinement rides on the same
model call that generates questions), and any model failure silently
keeps the rule-based result.

Examples:
  dashgen analyze data.json
  dashgen analyze data.json --no-llm
  cat data.json | dashgen analyze --questions=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: parse dataset: %v", spec.ErrInvalidInput, err)
	}

	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	analyzer := &analyze.Analyzer{Model: stringOr(analyzeModel, appCfg.Models.Worker)}
	if !analyzeNoLLM {
		analyzer.Client = llm.New()
	}

	// Fingerprint matching needs the config store; skip silently when the
	// project has no .dashgen directory yet.
	if dir, err := storeDir(); err == nil {
		store, err := repo.Open(dir)
		if err == nil {
			defer store.Close()
			analyzer.MatchConfigs = func(fp string) []string {
				matches, err := store.FindByFingerprint(fp)
				if err != nil {
					logf("fingerprint lookup failed: %v", err)
					return nil
				}
				names := make([]string, len(matches))
				for i, m := range matches {
					names[i] = m.Name
				}
				return names
			}
		}
	}

	logf("analyzing %d fields", len(data))
	res := analyzer.Analyze(cmd.Context(), data, analyzeQuestions)

	return output.Emit(map[string]any{
		"fields":             res.Fields,
		"patterns":           res.Patterns,
		"suggested_widgets":  res.SuggestedWidgets,
		"questions":          res.Questions,
		"schema_fingerprint": res.SchemaFingerprint,
		"matching_configs":   res.MatchingConfigs,
	})
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoLLM, "no-llm", false, "Use rule-based analysis only")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Model id (default: DASHGEN_MODEL or config)")
	analyzeCmd.Flags().BoolVar(&analyzeQuestions, "questions", true, "Include clarifying questions")
	rootCmd.AddCommand(analyzeCmd)
}
