package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashkite/dashgen/internal/analyze"
	"github.com/dashkite/dashgen/internal/config"
	"github.com/dashkite/dashgen/internal/output"
	"github.com/dashkite/dashgen/internal/repo"
	"github.com/dashkite/dashgen/internal/spec"
)

var (
	saveName        string
	saveDescription string
	saveTags        []string
	saveDataPath    string
	savePreview     string
	listQuery       string
	listTag         string
	matchDataPath   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage saved dashboard configs",
	Long: `Save, list, retrieve, match, and delete named dashboard specs.

Saved configs live under the nearest .dashgen directory: metadata in
configs.db, one spec JSON file per config. Each config carries a schema
fingerprint so 'config match' and 'analyze' can find specs that fit a
new dataset with the same shape.`,
}

var configSaveCmd = &cobra.Command{
	Use:   "save [spec-file]",
	Short: "Save a dashboard spec under a name",
	Long: `Save a spec for later reuse. Saving an existing name overwrites the
stored spec while keeping its id and usage history.

With --data the dataset's schema fingerprint is computed and stored so
the config can be matched against similar data later.

Examples:
  dashgen config save spec.json --name sales-weekly
  dashgen config save spec.json --name ops --tags monitoring,infra --data data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSave,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved configs",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <name-or-id>",
	Short: "Retrieve a saved config and its spec",
	Long: `Retrieve a config by name or id. Retrieval counts as a use: the
config's usage_count and last_used_at are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configMatchCmd = &cobra.Command{
	Use:   "match [data-file]",
	Short: "Find saved configs matching a dataset's schema",
	Long: `Compute the dataset's schema fingerprint and list saved configs with
the exact same fingerprint, most used first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigMatch,
}

var configDeleteCmd = &cobra.Command{
	Use:   "delete <name-or-id>",
	Short: "Delete a saved config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigDelete,
}

// openStore opens the config store in the directory storeDir resolves,
// creating a .dashgen directory in the working directory when none exists.
func openStore() (*repo.Store, error) {
	dir, err := storeDir()
	if err != nil {
		dir, err = config.EnsureConfigDir(".")
		if err != nil {
			return nil, err
		}
	}
	return repo.Open(dir)
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}
	d, err := spec.Parse(raw)
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	fingerprint := ""
	if saveDataPath != "" {
		dataRaw, err := os.ReadFile(saveDataPath)
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", spec.ErrInvalidInput, saveDataPath, err)
		}
		var data map[string]any
		if err := json.Unmarshal(dataRaw, &data); err != nil {
			return fmt.Errorf("%w: parse dataset: %v", spec.ErrInvalidInput, err)
		}
		fingerprint = analyze.Fingerprint(data)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	meta, err := store.Save(saveName, saveDescription, saveTags, d, fingerprint, savePreview)
	if err != nil {
		return err
	}
	return output.Emit(map[string]any{"config": meta})
}

func runConfigList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	configs, err := store.List(listQuery, listTag)
	if err != nil {
		return err
	}
	if configs == nil {
		configs = []repo.ConfigMetadata{}
	}
	return output.Emit(map[string]any{"configs": configs, "count": len(configs)})
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	meta, d, err := store.Get(args[0])
	if err != nil {
		return err
	}
	return output.Emit(map[string]any{"config": meta, "spec": d})
}

func runConfigMatch(cmd *cobra.Command, args []string) error {
	var inputArgs []string
	if matchDataPath != "" {
		inputArgs = []string{matchDataPath}
	} else {
		inputArgs = args
	}
	raw, err := readInput(inputArgs)
	if err != nil {
		return err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: parse dataset: %v", spec.ErrInvalidInput, err)
	}
	fingerprint := analyze.Fingerprint(data)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	matches, err := store.FindByFingerprint(fingerprint)
	if err != nil {
		return err
	}
	if matches == nil {
		matches = []repo.ConfigMetadata{}
	}
	return output.Emit(map[string]any{
		"schema_fingerprint": fingerprint,
		"matches":            matches,
		"count":              len(matches),
	})
}

func runConfigDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	return output.Emit(map[string]any{"deleted": args[0]})
}

func init() {
	configSaveCmd.Flags().StringVar(&saveName, "name", "", "Config name (required)")
	configSaveCmd.Flags().StringVar(&saveDescription, "description", "", "Config description")
	configSaveCmd.Flags().StringSliceVar(&saveTags, "tags", nil, "Comma-separated tags")
	configSaveCmd.Flags().StringVar(&saveDataPath, "data", "", "Dataset file for schema fingerprinting")
	configSaveCmd.Flags().StringVar(&savePreview, "preview", "", "Path to a preview image of the rendered config")
	configSaveCmd.MarkFlagRequired("name")

	configListCmd.Flags().StringVar(&listQuery, "query", "", "Substring filter on name and description")
	configListCmd.Flags().StringVar(&listTag, "tag", "", "Exact tag filter")

	configMatchCmd.Flags().StringVar(&matchDataPath, "data", "", "Dataset file (default: positional arg or stdin)")

	configCmd.AddCommand(configSaveCmd, configListCmd, configGetCmd, configMatchCmd, configDeleteCmd)
	rootCmd.AddCommand(configCmd)
}
