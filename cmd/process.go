// =============================================================================
// GEMINI Metadata Import - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs an import batch.
//
// COMMAND USAGE:
//   gemini-import process [flags]
//
// FLAGS:
//   -a, --all           : Import every data row
//   -n, --numrows N     : Import the first N data rows
//       --pretty        : Indent the written records
//
//   Without --all or --numrows the command asks for the row count.
//
// PROCESSING PIPELINE:
//   1. Load configuration and open the error log
//   2. Resolve the row-count selector
//   3. Load the template and the input file
//   4. Clear the output directory
//   5. Convert the selected rows, one record per row
//   6. Print a summary
//
// =============================================================================

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/gemini-metadata-import/internal/config"
	"github.com/ginjaninja78/gemini-metadata-import/internal/converter"
	"github.com/ginjaninja78/gemini-metadata-import/internal/logging"
	"github.com/ginjaninja78/gemini-metadata-import/internal/template"
	"github.com/ginjaninja78/gemini-metadata-import/internal/xmlwriter"
	"github.com/ginjaninja78/gemini-metadata-import/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processOptions holds the flags of one 'process' invocation.
type processOptions struct {
	configPath string
	all        bool
	numRows    string
	numRowsSet bool
	pretty     bool
}

var processFlags processOptions

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert spreadsheet rows into metadata records",
	Long: `The process command reads the input spreadsheet and writes one GEMINI
record per data row to the output directory, named <uuid>.xml.

The output directory is emptied first (files listed in keep_files stay).
A row that cannot be converted is logged to the error log with its title and
produces no file; the remaining rows are still imported. Fields that cannot
be written (an unrecognized date, an invalid bounding box) are left out of
the record and logged as warnings.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		opts := processFlags
		opts.configPath = cfgFile
		opts.numRowsSet = cmd.Flags().Changed("numrows")
		return runProcess(cmd, opts)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVarP(
		&processFlags.all,
		"all",
		"a",
		false,
		"Import every data row",
	)

	processCmd.Flags().StringVarP(
		&processFlags.numRows,
		"numrows",
		"n",
		"",
		"Import the first N data rows",
	)

	processCmd.Flags().BoolVar(
		&processFlags.pretty,
		"pretty",
		false,
		"Indent the written records",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess runs one import batch.
func runProcess(cmd *cobra.Command, opts processOptions) error {
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Fprintln(out, "=== GEMINI Metadata Import ===")

	cfg, err := config.LoadMainConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}
	if verbose {
		printConfig(cmd, cfg)
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open error log: %w", err)
	}
	defer closeLog()

	// =========================================================================
	// STEP 2: RESOLVE ROW SELECTOR
	// =========================================================================

	raw, err := selectorInput(cmd.InOrStdin(), out, opts)
	if err != nil {
		return fmt.Errorf("failed to read row count: %w", err)
	}

	selector, err := config.ParseRowSelector(raw)
	if err != nil {
		fmt.Fprintf(out, "Invalid row count %q: enter a whole number or 'all'. No rows imported.\n", raw)
		logger.Warn("invalid row-count selector, no rows imported", zap.String("selector", raw))
		return nil
	}
	if selector.IsAll() {
		fmt.Fprintln(out, "Importing all rows")
	} else {
		fmt.Fprintf(out, "Importing up to %s row(s)\n", selector)
	}

	// =========================================================================
	// STEP 3: LOAD TEMPLATE AND INPUT
	// =========================================================================
	// Both are fatal, and both happen before the previous output is cleared.

	tmpl, err := template.Load(cfg.TemplateFile)
	if err != nil {
		logger.Error("template could not be loaded", zap.Error(err))
		return err
	}

	table, err := loadInput(cfg)
	if err != nil {
		logger.Error("input could not be read", zap.String("file", cfg.InputFile), zap.Error(err))
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintf(out, "Read %d data row(s) from %s\n", table.RowCount(), table.SourceFile)

	// =========================================================================
	// STEP 4: CLEAR OUTPUT DIRECTORY
	// =========================================================================

	fm := utils.NewFileManager(cfg.OutputDir, cfg.KeepFiles)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}
	removed, err := fm.CleanOutputDir()
	if err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}
	logger.Debug("output directory cleared", zap.String("dir", cfg.OutputDir), zap.Int("removed", removed))

	// =========================================================================
	// STEP 5: CONVERT
	// =========================================================================

	writerOptions := xmlwriter.DefaultOptions()
	if opts.pretty {
		writerOptions.Indent = 2
	}

	conv := converter.New(tmpl,
		xmlwriter.NewWithOptions(cfg.OutputDir, writerOptions),
		logger,
		converter.WithEcho(out))

	summary := conv.Run(table.Rows, selector)

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	printSummary(out, summary, cfg.LogFile)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// selectorInput returns the raw row-count selector from the flags, or asks
// for it on in when neither flag is given.
func selectorInput(in io.Reader, out io.Writer, opts processOptions) (string, error) {
	switch {
	case opts.all:
		return "all", nil
	case opts.numRowsSet:
		return opts.numRows, nil
	}

	fmt.Fprint(out, "How many rows should be imported? (a number or 'all'): ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func printSummary(out io.Writer, summary converter.Summary, logFile string) {
	fmt.Fprintln(out, "\n=== Import Complete ===")
	fmt.Fprintf(out, "Rows available:  %d\n", summary.Available)
	fmt.Fprintf(out, "Rows selected:   %d\n", summary.Selected)
	fmt.Fprintf(out, "Records written: %d\n", summary.Written)
	fmt.Fprintf(out, "Rows failed:     %d\n", summary.Failed)
	fmt.Fprintf(out, "Fields skipped:  %d\n", summary.Warnings)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.Elapsed)

	if summary.Failed > 0 || summary.Warnings > 0 {
		fmt.Fprintf(out, "\nSee %s for details.\n", logFile)
	}
}
