// Package validation checks the filesystem preconditions the dashboard
// depends on before the pipeline ever runs.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// workbookExtensions lists the spreadsheet extensions the loader can open.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// FileValidator validates the source workbook and the writable directories.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// ValidateSourceFile checks that the source workbook exists, is a regular
// file with a spreadsheet extension, and is not empty. A failed check is
// returned, not fatal: the caller decides whether to warn or abort.
func (v *FileValidator) ValidateSourceFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("Source workbook does not exist",
			slog.String("file", path))
		return fmt.Errorf("source workbook %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat source workbook",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat source workbook %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Source path is a directory, not a workbook",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a workbook", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); !workbookExtensions[ext] {
		v.logger.Error("Source file has an unsupported extension",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("source file %s has unsupported extension %q", path, ext)
	}
	if info.Size() == 0 {
		v.logger.Error("Source workbook is empty",
			slog.String("file", path))
		return fmt.Errorf("source workbook %s is empty", path)
	}

	v.logger.Info("Source workbook validated",
		slog.String("file", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures an output directory exists and is
// writable, creating it if needed.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
