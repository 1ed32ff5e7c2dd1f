// =============================================================================
// GEMINI Metadata Import - Main Entry Point
// =============================================================================
//
// USAGE:
//   gemini-import process   - Convert spreadsheet rows into metadata records
//   gemini-import validate  - Check the input without writing records
//   gemini-import version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Import pipeline (input parsing, template, converter, output)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/gemini-metadata-import/cmd"
)

func main() {
	cmd.Execute()
}
