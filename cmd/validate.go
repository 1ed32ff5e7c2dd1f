// =============================================================================
// GEMINI Metadata Import - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It checks the configuration,
// the template and every input row without writing any records.
//
// COMMAND USAGE:
//   gemini-import validate [--strict]
//
// EXIT STATUS:
//   Non-zero when a row is too short, a bounding box is invalid, or (with
//   --strict) any warning was found.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/gemini-metadata-import/internal/config"
	"github.com/ginjaninja78/gemini-metadata-import/internal/template"
	"github.com/ginjaninja78/gemini-metadata-import/internal/types"
	"github.com/ginjaninja78/gemini-metadata-import/internal/validation"
	"github.com/spf13/cobra"
)

// errValidationFailed is returned when the input has error-level findings.
var errValidationFailed = errors.New("validation failed")

// strict treats warnings as errors.
var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input spreadsheet without writing records",
	Long: `The validate command loads the configuration and the template, reads the
input spreadsheet and checks every row: column count, bounding box
coordinates, code list values (topic categories, maintenance frequency,
scope), contact email, transfer URL and scale denominator.

Nothing is written to the output directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, cfgFile, strict)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Fail on warnings as well as errors",
	)
}

// runValidate validates the configured input.
func runValidate(cmd *cobra.Command, configPath string, strict bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadMainConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}
	if verbose {
		printConfig(cmd, cfg)
	}

	tmpl, err := template.Load(cfg.TemplateFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Template %s: %d anchors resolved\n", tmpl.Source, len(tmpl.Anchors()))

	table, err := loadInput(cfg)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	// Short rows cannot be validated field by field; report them as errors.
	var shapeErrors []*validation.ValidationError
	rows := make([]*types.InputRow, 0, table.RowCount())
	for i, columns := range table.Rows {
		row, err := types.ParseRow(i+1, columns)
		if err != nil {
			shapeErrors = append(shapeErrors, &validation.ValidationError{
				Severity:  validation.SeverityError,
				Field:     "row",
				Value:     fmt.Sprintf("%d columns", len(columns)),
				Rule:      "columns",
				Message:   err.Error(),
				RowNumber: i + 1,
				Title:     types.TitleOf(columns),
			})
			continue
		}
		rows = append(rows, row)
	}

	validator := validation.NewValidatorWithOptions(validation.ValidationOptions{
		TreatWarningsAsErrors: strict,
	})
	result := validator.ValidateAll(rows)

	findings := append(shapeErrors, result.Errors...)
	fmt.Fprintf(out, "Checked %d row(s) from %s\n\n", table.RowCount(), table.SourceFile)
	fmt.Fprintln(out, strings.TrimSuffix(validation.FormatErrors(findings), "\n"))

	if len(shapeErrors) > 0 || !result.IsValid {
		return errValidationFailed
	}
	return nil
}
