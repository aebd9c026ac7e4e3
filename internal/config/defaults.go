package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Theme:      "corporate",
			OutputDir:  "output",
			Resolution: "1080p",
			Format:     "png",
			Scale:      1.0,
		},
		Models: ModelsConfig{
			Worker: "",
			Vision: "",
		},
		Validation: ValidationConfig{
			MaxIterations:  3,
			MaxGridRows:    6,
			MaxGridColumns: 24,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Render = mergeRenderConfig(loaded.Render, defaults.Render)
	result.Models = mergeModelsConfig(loaded.Models, defaults.Models)
	result.Validation = mergeValidationConfig(loaded.Validation, defaults.Validation)

	return result
}

func mergeRenderConfig(loaded, defaults RenderConfig) RenderConfig {
	result := RenderConfig{}

	if loaded.Theme != "" {
		result.Theme = loaded.Theme
	} else {
		result.Theme = defaults.Theme
	}

	if loaded.OutputDir != "" {
		result.OutputDir = loaded.OutputDir
	} else {
		result.OutputDir = defaults.OutputDir
	}

	if loaded.Resolution != "" {
		result.Resolution = loaded.Resolution
	} else {
		result.Resolution = defaults.Resolution
	}

	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	if loaded.Scale != 0 {
		result.Scale = loaded.Scale
	} else {
		result.Scale = defaults.Scale
	}

	return result
}

func mergeModelsConfig(loaded, defaults ModelsConfig) ModelsConfig {
	result := ModelsConfig{}

	if loaded.Worker != "" {
		result.Worker = loaded.Worker
	} else {
		result.Worker = defaults.Worker
	}

	if loaded.Vision != "" {
		result.Vision = loaded.Vision
	} else {
		result.Vision = defaults.Vision
	}

	return result
}

func mergeValidationConfig(loaded, defaults ValidationConfig) ValidationConfig {
	result := ValidationConfig{}

	if loaded.MaxIterations != 0 {
		result.MaxIterations = loaded.MaxIterations
	} else {
		result.MaxIterations = defaults.MaxIterations
	}

	if loaded.MaxGridRows != 0 {
		result.MaxGridRows = loaded.MaxGridRows
	} else {
		result.MaxGridRows = defaults.MaxGridRows
	}

	if loaded.MaxGridColumns != 0 {
		result.MaxGridColumns = loaded.MaxGridColumns
	} else {
		result.MaxGridColumns = defaults.MaxGridColumns
	}

	return result
}

// ValidFormats lists the valid values for the render format
var ValidFormats = []string{"png", "svg", "pdf"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
