// =============================================================================
// GEMINI Metadata Import - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. The main config file (config.yaml), if it exists
//   3. A .env file in the working directory, if it exists
//   4. GEMINI_* environment variables
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputFile is the spreadsheet export to import. Files ending in .xlsx
	// are read as workbooks, anything else as CSV.
	// Default: "./input/metadata.csv"
	InputFile string `yaml:"input_file"`

	// InputSheet is the worksheet to read for .xlsx input.
	// Default: "" (first sheet)
	InputSheet string `yaml:"input_sheet"`

	// TemplateFile is the GEMINI template to clone for every row.
	// Default: "" (the template compiled into the binary)
	TemplateFile string `yaml:"template_file"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir receives one <uuid>.xml file per imported row. It is cleared
	// at the start of every run.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// KeepFiles lists file names in OutputDir that survive the cleanup.
	// Default: [".gitignore"]
	KeepFiles []string `yaml:"keep_files"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the append-mode error log.
	// Default: "./error.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of the error log.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "debug"
	LogLevel string `yaml:"log_level"`
}

// envOverrides maps environment variables onto config fields.
var envOverrides = map[string]func(c *MainConfig, v string){
	"GEMINI_INPUT_FILE":    func(c *MainConfig, v string) { c.InputFile = v },
	"GEMINI_INPUT_SHEET":   func(c *MainConfig, v string) { c.InputSheet = v },
	"GEMINI_TEMPLATE_FILE": func(c *MainConfig, v string) { c.TemplateFile = v },
	"GEMINI_OUTPUT_DIR":    func(c *MainConfig, v string) { c.OutputDir = v },
	"GEMINI_LOG_FILE":      func(c *MainConfig, v string) { c.LogFile = v },
	"GEMINI_LOG_LEVEL":     func(c *MainConfig, v string) { c.LogLevel = v },
	"GEMINI_KEEP_FILES": func(c *MainConfig, v string) {
		c.KeepFiles = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.KeepFiles = append(c.KeepFiles, name)
			}
		}
	},
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML config file. A missing file is not an
//     error; the defaults and environment are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file exists but cannot be parsed, or the resulting
//     configuration is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	applyEnvOverrides(&config)

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides copies set GEMINI_* variables into the config.
func applyEnvOverrides(config *MainConfig) {
	for key, set := range envOverrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			set(config, value)
		}
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputFile == "" {
		config.InputFile = "./input/metadata.csv"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.KeepFiles == nil {
		config.KeepFiles = []string{".gitignore"}
	}
	if config.LogFile == "" {
		config.LogFile = "./error.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "debug"
	}
}

// validateMainConfig validates the main configuration and creates the
// output directory if it does not exist yet.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", config.OutputDir, err)
	}

	return nil
}
