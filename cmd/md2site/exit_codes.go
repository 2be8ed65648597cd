package main

import (
	"errors"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// Exit codes for the md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build completed without failed jobs
	ExitGeneral = 1 // Unresolvable input, failed jobs, unexpected errors
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2site.ErrInputResolve) {
		return ExitGeneral
	}

	// Browser errors (exit 4), also when they caused failed jobs
	if errors.Is(err, md2site.ErrBrowserConnect) ||
		errors.Is(err, md2site.ErrPageCreate) ||
		errors.Is(err, md2site.ErrPageLoad) ||
		errors.Is(err, md2site.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, ErrJobsFailed) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2site.ErrOutputDir) ||
		errors.Is(err, md2site.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2site.ErrInvalidOptions) ||
		errors.Is(err, md2site.ErrInvalidAssetPath) ||
		errors.Is(err, md2site.ErrThemeUnavailable) ||
		errors.Is(err, md2site.ErrTemplateSetNotFound) ||
		errors.Is(err, md2site.ErrIncompleteTemplateSet) {
		return ExitUsage
	}

	return ExitGeneral
}
