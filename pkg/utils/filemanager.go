// =============================================================================
// GEMINI Metadata Import - File Manager Utility
// =============================================================================
//
// This module provides the file handling the importer needs around the
// conversion itself:
//   - Directory management
//   - Output directory housekeeping between runs
//   - Atomic file writes, so a record is either fully on disk or absent
//
// HOUSEKEEPING:
//   Every run starts from an empty output directory. Entries listed in
//   KeepFiles (by default the version-control placeholder .gitignore)
//   survive the cleanup.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles the output directory of a run.
type FileManager struct {
	// OutputDir is the directory where records are written.
	OutputDir string

	// KeepFiles are entry names in OutputDir that CleanOutputDir leaves alone.
	KeepFiles []string
}

// NewFileManager creates a new FileManager for outputDir.
func NewFileManager(outputDir string, keepFiles []string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		KeepFiles: keepFiles,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory if it doesn't exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// CleanOutputDir removes everything in the output directory except the
// entries named in KeepFiles.
//
// RETURNS:
//   - The number of entries removed.
//   - An error if the directory cannot be listed or an entry cannot be removed.
func (fm *FileManager) CleanOutputDir() (int, error) {
	entries, err := os.ReadDir(fm.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read output directory: %w", err)
	}

	keep := make(map[string]bool, len(fm.KeepFiles))
	for _, name := range fm.KeepFiles {
		keep[name] = true
	}

	removed := 0
	for _, entry := range entries {
		if keep[entry.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(fm.OutputDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}

	return removed, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// AtomicWriteFile writes data to a temporary file next to path and renames
// it into place.
//
// PARAMETERS:
//   - path: The final file path. An existing file is replaced.
//   - data: The file contents.
//   - perm: The permissions of the final file.
//
// RETURNS:
//   - An error if any step fails. The temporary file is removed on failure.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
