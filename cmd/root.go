// =============================================================================
// GEMINI Metadata Import - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (gemini-import)
//   ├── processCmd  (gemini-import process)
//   ├── validateCmd (gemini-import validate)
//   └── versionCmd  (gemini-import version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/gemini-metadata-import/internal/config"
	"github.com/ginjaninja78/gemini-metadata-import/internal/csvparser"
	"github.com/ginjaninja78/gemini-metadata-import/internal/xlsxparser"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose prints the resolved configuration before running.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gemini-import",
	Short: "Convert spreadsheet rows into GEMINI / ISO 19139 metadata records",
	Long: `gemini-import turns a metadata spreadsheet (CSV or XLSX, one dataset per
row, 30 fixed columns) into GEMINI 2.3 XML records. Each row is written to
<output_dir>/<uuid>.xml by cloning a template record and filling it in.

Rows that fail are recorded in the error log and skipped; the rest of the
batch carries on.

Example Usage:
  gemini-import process --all          # Import every row
  gemini-import process -n 10          # Import the first 10 rows
  gemini-import process                # Ask how many rows to import
  gemini-import validate               # Check the input without writing records`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Print the resolved configuration before running",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadInput reads the configured input file as a workbook or CSV.
func loadInput(cfg *config.MainConfig) (*csvparser.Table, error) {
	if xlsxparser.IsWorkbook(cfg.InputFile) {
		return xlsxparser.Parse(cfg.InputFile, cfg.InputSheet)
	}
	return csvparser.Parse(cfg.InputFile)
}

// printConfig writes the resolved configuration.
func printConfig(cmd *cobra.Command, cfg *config.MainConfig) {
	out := cmd.OutOrStdout()
	tmplName := cfg.TemplateFile
	if tmplName == "" {
		tmplName = "(embedded)"
	}
	fmt.Fprintf(out, "Input:      %s\n", cfg.InputFile)
	if cfg.InputSheet != "" {
		fmt.Fprintf(out, "Sheet:      %s\n", cfg.InputSheet)
	}
	fmt.Fprintf(out, "Template:   %s\n", tmplName)
	fmt.Fprintf(out, "Output dir: %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "Log file:   %s (%s)\n", cfg.LogFile, cfg.LogLevel)
}
