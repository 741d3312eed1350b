// =============================================================================
// Sephpa - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator:
//   - Batch file discovery in the input directory
//   - Archival of processed batch files
//   - Output file naming
//
// ARCHIVAL STRATEGY:
//   - Input batch files are moved to the input archive after successful
//     generation
//   - Failed batch files remain in the input directory
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the generator.
type FileManager struct {
	// InputDir is the directory where batch files are placed.
	InputDir string

	// OutputDir is the directory where generated XML files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived batch files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2026/08/31/batch.csv
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for batch files with one of
// the given extensions (e.g. ".csv", ".xlsx"). The result is sorted by name
// so processing order is stable.
func (fm *FileManager) DiscoverInputFiles(extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".csv", ".xlsx"}
	}

	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range extensions {
			if ext == want {
				files = append(files, filepath.Join(fm.InputDir, entry.Name()))
				break
			}
		}
	}

	return files, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// OutputFileName expands the naming format for one output file.
// Placeholders:
//   {uuid}      - A random UUID
//   {timestamp} - now formatted as YYYYMMDD_HHMMSS
//   {creditor}  - The creditor code
func OutputFileName(format, creditorCode string, now time.Time) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	name = strings.ReplaceAll(name, "{timestamp}", now.Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{creditor}", creditorCode)
	return name
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed batch file into the input archive.
// When UseTimestampSubdirs is set, the file lands in a YYYY/MM/DD
// subdirectory. A rename is attempted first; cross-device moves fall back
// to copy-and-delete.
func (fm *FileManager) ArchiveInputFile(filePath string, now time.Time) (string, error) {
	archiveDir := fm.InputArchiveDir
	if fm.UseTimestampSubdirs {
		archiveDir = filepath.Join(archiveDir, now.Format("2006/01/02"))
	}

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	target := filepath.Join(archiveDir, filepath.Base(filePath))

	if err := os.Rename(filePath, target); err != nil {
		if err := copyFile(filePath, target); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", filePath, err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove %s after archiving: %w", filePath, err)
		}
	}

	return target, nil
}

// copyFile copies src to dst, preserving content but not permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Close()
}
