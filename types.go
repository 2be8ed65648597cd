package md2site

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// Job is one unit of work: a source file and where its output goes.
// Destination keeps the source extension; the writer decides the final one.
type Job struct {
	Source      string // Absolute path of the source file
	Destination string // Output path before the format extension is applied
}

// FormatSet is the set of output formats requested for a whole run.
type FormatSet uint8

// Output formats.
const (
	FormatHTML FormatSet = 1 << iota
	FormatPDF
)

// ModeFromFlags maps the command-line switches to a FormatSet.
// mirror wins over pdf; neither selects HTML only.
func ModeFromFlags(pdf, mirror bool) FormatSet {
	switch {
	case mirror:
		return FormatHTML | FormatPDF
	case pdf:
		return FormatPDF
	default:
		return FormatHTML
	}
}

// ParseMode converts a config value ("html", "pdf", "mirror") to a FormatSet.
// An empty value selects HTML only.
func ParseMode(s string) (FormatSet, error) {
	switch strings.ToLower(s) {
	case "", "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	case "mirror":
		return FormatHTML | FormatPDF, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, s)
	}
}

// Has reports whether f includes every format in other.
func (f FormatSet) Has(other FormatSet) bool {
	return other != 0 && f&other == other
}

// Count returns the number of formats in the set.
func (f FormatSet) Count() int {
	n := 0
	if f.Has(FormatHTML) {
		n++
	}
	if f.Has(FormatPDF) {
		n++
	}
	return n
}

// Banner returns the line printed at the start of a build.
func (f FormatSet) Banner() string {
	switch f {
	case FormatPDF:
		return "PDF Mode"
	case FormatHTML | FormatPDF:
		return "PDF Mirror Mode"
	default:
		return "HTML Mode"
	}
}

// String returns a human-readable name for the set.
func (f FormatSet) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatPDF:
		return "pdf"
	case FormatHTML | FormatPDF:
		return "mirror"
	default:
		return fmt.Sprintf("FormatSet(%d)", uint8(f))
	}
}

// Target is a render target: it selects link-rewriting and extension rules.
type Target string

// Render targets.
const (
	TargetHTML Target = "html"
	TargetPDF  Target = "pdf"
)

// Ext returns the output file extension for the target, with leading dot.
func (t Target) Ext() (string, error) {
	switch t {
	case TargetHTML:
		return ".html", nil
	case TargetPDF:
		return ".pdf", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, string(t))
	}
}

// HighlightMode selects where code blocks are colourised.
type HighlightMode = pipeline.HighlightMode

// Highlight modes.
const (
	HighlightClient = pipeline.HighlightClient
	HighlightServer = pipeline.HighlightServer
)

// DefaultTheme is the theme used when none is given or the given one is unknown.
const DefaultTheme = "iridium"

// DefaultTimeout is the default page-load timeout for PDF rendering.
const DefaultTimeout = 30 * time.Second

// Options is the immutable configuration of one build.
// It is built once from flags, environment and config file, then passed
// by value to every component.
type Options struct {
	Input     string        // Markdown file or directory
	Output    string        // Output root directory
	Formats   FormatSet     // Formats to produce for every document
	Theme     string        // Theme name (empty = DefaultTheme)
	Watermark bool          // Append the attribution block to pages
	Highlight HighlightMode // Code highlighting mode (empty = client)
	AssetPath string        // Directory with custom styles/templates (empty = built-in only)
	Timeout   time.Duration // PDF page-load timeout (0 = DefaultTimeout)
	Verbose   bool          // Print per-job timings
}

// Validate checks that the options describe a runnable build.
func (o Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidOptions)
	}
	if o.Output == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidOptions)
	}
	if o.Formats.Count() == 0 || o.Formats&^(FormatHTML|FormatPDF) != 0 {
		return fmt.Errorf("%w: format set %s", ErrInvalidOptions, o.Formats)
	}
	if _, err := pipeline.ParseHighlightMode(string(o.Highlight)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidOptions)
	}
	return nil
}

// themeName returns the configured theme or the default.
func (o Options) themeName() string {
	if o.Theme == "" {
		return DefaultTheme
	}
	return o.Theme
}

// RenderedDocument is a complete HTML page ready for link rewriting.
type RenderedDocument struct {
	HTML  string
	Title string
}

// JobResult is the outcome of one job.
type JobResult struct {
	Job     Job
	Outputs []string // Files written for this job
	Err     error    // nil on success
}

// Report aggregates the outcome of a build.
type Report struct {
	Discovered int         // Files found by the walker
	Assets     int         // Non-Markdown files copied
	Rendered   int         // Documents rendered and written without error
	Compiled   int         // Output files written (HTML and PDF)
	Failed     int         // Jobs that failed
	Results    []JobResult // Per-job outcomes, in processing order
}

// Err joins the errors of all failed jobs, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Job.Source, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Migrated returns the count printed as "Migrated N Files".
func (r *Report) Migrated() int {
	return r.Assets + r.Rendered
}
