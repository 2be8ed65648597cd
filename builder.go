package md2site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// Builder runs one complete build: discovery, asset migration, then
// rendering and writing every document in discovery order.
type Builder struct {
	opts   Options
	loader AssetLoader
	engine PDFEngine
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithPDFEngine sets the engine used for PDF output. The Builder does not
// close it; the caller owns its lifetime.
func WithPDFEngine(engine PDFEngine) BuilderOption {
	return func(b *Builder) {
		b.engine = engine
	}
}

// WithAssetLoader replaces the loader built from Options.AssetPath.
func WithAssetLoader(loader AssetLoader) BuilderOption {
	return func(b *Builder) {
		b.loader = loader
	}
}

// WithOutput sets where progress (stdout) and diagnostics (stderr) go.
// A nil writer discards.
func WithOutput(stdout, stderr io.Writer) BuilderOption {
	return func(b *Builder) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// WithClock sets the time source used for verbose timings.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder validates opts and prepares a Builder.
// PDF output requires WithPDFEngine.
func NewBuilder(opts Options, bopts ...BuilderOption) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		opts:   opts,
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range bopts {
		opt(b)
	}
	if b.stdout == nil {
		b.stdout = io.Discard
	}
	if b.stderr == nil {
		b.stderr = io.Discard
	}

	if opts.Formats.Has(FormatPDF) && b.engine == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, ErrNoPDFEngine)
	}

	if b.loader == nil {
		loader, err := NewAssetLoader(opts.AssetPath)
		if err != nil {
			return nil, err
		}
		b.loader = loader
	}

	return b, nil
}

// Build runs the whole pipeline.
//
// The returned error is non-nil only for failures that stop the run before
// any document is processed: an unresolvable input or an unusable default
// theme or template set. Per-job failures are recorded in the Report; use
// Report.Err to collect them. Cancelling ctx fails every job not yet
// started with the context error.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	fmt.Fprintln(b.stdout, b.opts.Formats.Banner())

	disc, err := Walk(b.opts.Input, b.opts.Output, func(path string, err error) {
		fmt.Fprintf(b.stderr, "Skipping %s: %v\n", path, err)
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(b.stdout, "Canonicalized %s\n", disc.Root)

	renderer, err := b.newRenderer()
	if err != nil {
		return nil, err
	}

	report := &Report{Discovered: len(disc.Jobs)}
	documents := disc.Jobs

	if disc.IsDir {
		fmt.Fprintln(b.stdout, "Discovering Files...")
		fmt.Fprintf(b.stdout, "Discovered %d Files\n", len(disc.Jobs))
		fmt.Fprintln(b.stdout, "Migrating incompatible files...")

		mig := NewMigrator(b.stderr).Migrate(ctx, disc.Jobs)
		report.Assets = len(mig.Copied)
		report.Failed += len(mig.Failed)
		report.Results = append(report.Results, mig.Copied...)
		report.Results = append(report.Results, mig.Failed...)
		documents = mig.Documents
	}

	writer := NewWriter(b.engine, b.stdout)
	for _, job := range documents {
		var res JobResult
		if err := ctx.Err(); err != nil {
			res = JobResult{Job: job, Err: err}
		} else {
			res = b.buildJob(ctx, renderer, writer, job)
		}

		report.Results = append(report.Results, res)
		report.Compiled += len(res.Outputs)
		if res.Err != nil {
			report.Failed++
			continue
		}
		report.Rendered++
	}

	if disc.IsDir {
		fmt.Fprintf(b.stdout, "Migrated %d Files\n", report.Migrated())
		fmt.Fprintf(b.stdout, "Compiled %d Files\n", report.Compiled)
	}
	if report.Failed > 0 {
		fmt.Fprintf(b.stderr, "%d job(s) failed\n", report.Failed)
	}
	fmt.Fprintln(b.stdout, "Compilation complete.")

	return report, nil
}

// newRenderer resolves the theme and templates for the run.
func (b *Builder) newRenderer() (*Renderer, error) {
	theme, err := ResolveTheme(b.loader, b.opts.themeName())
	if err != nil {
		return nil, err
	}
	if theme.Fallback {
		available, _ := b.loader.ListStyles()
		fmt.Fprintf(b.stderr, "Warning: theme %q unavailable (%v), using %q%s\n",
			theme.Requested, theme.Cause, theme.Name, hints.ForThemeFallback(available))
	}

	templates, err := b.loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		return nil, err
	}

	return NewRenderer(RendererOptions{
		Theme:     theme,
		Templates: templates,
		Watermark: b.opts.Watermark,
		Highlight: b.opts.Highlight,
	})
}

// buildJob reads, renders, rewrites and writes one document.
func (b *Builder) buildJob(ctx context.Context, renderer *Renderer, writer *Writer, job Job) JobResult {
	start := b.now()
	res := JobResult{Job: job}

	outputs, err := b.processJob(ctx, renderer, writer, job)
	res.Outputs = outputs
	if err != nil {
		res.Err = err
		fmt.Fprintf(b.stderr, "Failed: %s: %v%s\n", job.Source, err, hintFor(err))
		return res
	}

	if b.opts.Verbose {
		fmt.Fprintf(b.stdout, "  %s (%v)\n", job.Source, b.now().Sub(start).Round(time.Millisecond))
	}
	return res
}

func (b *Builder) processJob(ctx context.Context, renderer *Renderer, writer *Writer, job Job) ([]string, error) {
	src, err := os.ReadFile(job.Source) // #nosec G304 -- discovered by walking the input tree
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	title := fileutil.Path(job.Destination).Stem()
	doc, err := renderer.Render(ctx, string(src), title)
	if err != nil {
		return nil, err
	}

	req := WriteRequest{
		Source:      job.Source,
		Destination: job.Destination,
		Title:       doc.Title,
		Formats:     b.opts.Formats,
	}
	if b.opts.Formats.Has(FormatHTML) {
		if req.HTML, err = RewriteLinks(doc.HTML, TargetHTML); err != nil {
			return nil, err
		}
	}
	if b.opts.Formats.Has(FormatPDF) {
		if req.PDFHTML, err = RewriteLinks(doc.HTML, TargetPDF); err != nil {
			return nil, err
		}
	}

	return writer.Write(ctx, req)
}

// hintFor returns an actionable hint for well-known job failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
