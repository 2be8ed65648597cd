package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ErrInvalidHighlightMode indicates an unknown code highlighting mode.
var ErrInvalidHighlightMode = errors.New("invalid highlight mode")

// HighlightMode selects where fenced code blocks are colourised.
type HighlightMode string

const (
	// HighlightClient leaves code as <pre><code class="language-x"> for
	// highlight.js to colourise in the browser.
	HighlightClient HighlightMode = "client"
	// HighlightServer colourises code at build time with chroma inline styles.
	HighlightServer HighlightMode = "server"
)

// DefaultChromaStyle is the chroma style used in server highlighting mode.
const DefaultChromaStyle = "github"

// ParseHighlightMode converts a configuration value to a HighlightMode.
// An empty value selects HighlightClient.
func ParseHighlightMode(s string) (HighlightMode, error) {
	switch HighlightMode(s) {
	case "", HighlightClient:
		return HighlightClient, nil
	case HighlightServer:
		return HighlightServer, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidHighlightMode, s, HighlightClient, HighlightServer)
	}
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md   goldmark.Markdown
	mode HighlightMode
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes and
// heading IDs. Server mode adds build-time syntax highlighting.
func NewGoldmarkConverter(mode HighlightMode) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if mode == HighlightServer {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(DefaultChromaStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false), // inline styles: pages carry no chroma stylesheet
				chromahtml.TabWidth(4),
			),
		))
	} else {
		mode = HighlightClient
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // deep links target these IDs
		),
		// Raw HTML stays escaped; ==highlight== marks use placeholders instead.
	)
	return &GoldmarkConverter{md: md, mode: mode}
}

// Mode returns the highlighting mode the converter was built with.
func (c *GoldmarkConverter) Mode() HighlightMode {
	return c.mode
}

// ToHTML converts Markdown content to an HTML body fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
