package md2site

import "errors"

// Sentinel errors for library operations.
var (
	// Run-level (fatal) errors.
	ErrInputResolve     = errors.New("cannot resolve input path")
	ErrInvalidOptions   = errors.New("invalid options")
	ErrThemeUnavailable = errors.New("default theme unavailable")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Per-job errors.
	ErrReadSource     = errors.New("failed to read source")
	ErrCopyAsset      = errors.New("failed to copy asset")
	ErrRender         = errors.New("failed to render document")
	ErrInvalidTarget  = errors.New("invalid render target")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrOutputDir      = errors.New("failed to create output directory")
	ErrNoPDFEngine    = errors.New("PDF output requested without a PDF engine")
	ErrEmptyPDFSource = errors.New("PDF output requested without PDF HTML")

	// PDF engine errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
