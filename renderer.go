package md2site

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// RendererOptions holds everything a Renderer needs, resolved up front.
type RendererOptions struct {
	Theme     Theme         // Resolved theme
	Templates *TemplateSet  // Layout and watermark templates
	Watermark bool          // Append the attribution block
	Highlight HighlightMode // Empty selects client-side highlighting
}

// Renderer turns Markdown text into a complete themed HTML page.
// It performs no I/O.
type Renderer struct {
	preprocessor pipeline.MarkdownPreprocessor
	converter    *pipeline.GoldmarkConverter
	assembler    *pipeline.PageAssembler
	theme        Theme
	watermark    bool
}

// NewRenderer parses the templates and builds the Markdown converter.
func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.Templates == nil {
		return nil, fmt.Errorf("%w: no template set", ErrInvalidOptions)
	}

	mode, err := pipeline.ParseHighlightMode(string(opts.Highlight))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	assembler, err := pipeline.NewPageAssembler(opts.Templates.Layout, opts.Templates.Watermark)
	if err != nil {
		return nil, fmt.Errorf("%w: template set %q: %w", ErrIncompleteTemplateSet, opts.Templates.Name, err)
	}

	return &Renderer{
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		converter:    pipeline.NewGoldmarkConverter(mode),
		assembler:    assembler,
		theme:        opts.Theme,
		watermark:    opts.Watermark,
	}, nil
}

// Theme returns the theme every page is rendered with.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render converts markdown to a complete HTML document titled title.
func (r *Renderer) Render(ctx context.Context, markdown, title string) (*RenderedDocument, error) {
	content := r.preprocessor.PreprocessMarkdown(ctx, markdown)

	body, err := r.converter.ToHTML(ctx, content)
	if err != nil {
		return nil, wrapRenderErr(err)
	}

	page, err := r.assembler.Assemble(ctx, pipeline.PageData{
		Title:           title,
		CSS:             r.theme.CSS,
		Body:            body,
		Watermark:       r.watermark,
		ClientHighlight: r.converter.Mode() == pipeline.HighlightClient,
	})
	if err != nil {
		return nil, wrapRenderErr(err)
	}

	return &RenderedDocument{HTML: page, Title: title}, nil
}

// wrapRenderErr tags conversion failures with ErrRender; context errors
// pass through unchanged.
func wrapRenderErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRender, err)
}
