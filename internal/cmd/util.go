package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dashkite/dashgen/internal/config"
	"github.com/dashkite/dashgen/internal/spec"
)

// readInput returns the contents of the first argument as a file, or
// stdin when no argument is given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", spec.ErrInvalidInput, args[0], err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: read stdin: %v", spec.ErrInvalidInput, err)
	}
	return data, nil
}

// loadConfig loads the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// storeDir resolves the directory holding the config store, honoring
// --config: the store lives next to the named config file.
func storeDir() (string, error) {
	if configPath != "" {
		return filepath.Dir(configPath), nil
	}
	return config.FindConfigDir(".")
}

// stringOr returns the flag value when set, otherwise the fallback.
func stringOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
