package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the dashgen configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the dashgen configuration directory
const ConfigDirName = ".dashgen"

// Config holds all dashgen configuration
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Models     ModelsConfig     `yaml:"models"`
	Validation ValidationConfig `yaml:"validation"`
}

// RenderConfig holds defaults for image rendering
type RenderConfig struct {
	Theme      string  `yaml:"theme"`
	OutputDir  string  `yaml:"output_dir"`
	Resolution string  `yaml:"resolution"`
	Format     string  `yaml:"format"`
	Scale      float64 `yaml:"scale"`
}

// ModelsConfig holds language model identifiers. Empty values fall back
// to the DASHGEN_MODEL / DASHGEN_VLM_MODEL environment variables.
type ModelsConfig struct {
	Worker string `yaml:"worker"`
	Vision string `yaml:"vision"`
}

// ValidationConfig holds configuration for the validated-render loop
type ValidationConfig struct {
	MaxIterations  int `yaml:"max_iterations"`
	MaxGridRows    int `yaml:"max_grid_rows"`
	MaxGridColumns int `yaml:"max_grid_columns"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .dashgen/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge with defaults
	merged := Merge(loaded, DefaultConfig())

	// Validate the merged config
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .dashgen directory by walking up from startDir.
// Returns the path to the .dashgen directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		// Move to parent directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .dashgen directory if it doesn't exist.
// Returns the path to the .dashgen directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if !IsValidFormat(cfg.Render.Format) {
		return fmt.Errorf("%w: format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Render.Format)
	}

	if cfg.Render.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %f",
			ErrInvalidConfig, cfg.Render.Scale)
	}

	if cfg.Validation.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d",
			ErrInvalidConfig, cfg.Validation.MaxIterations)
	}

	if cfg.Validation.MaxGridRows <= 0 {
		return fmt.Errorf("%w: max_grid_rows must be positive, got %d",
			ErrInvalidConfig, cfg.Validation.MaxGridRows)
	}

	if cfg.Validation.MaxGridColumns <= 0 {
		return fmt.Errorf("%w: max_grid_columns must be positive, got %d",
			ErrInvalidConfig, cfg.Validation.MaxGridColumns)
	}

	return nil
}

// SaveDefault writes the default configuration to .dashgen/config.yaml in
// workDir. Creates the .dashgen directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	// Add header comment
	header := "# dashgen configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
