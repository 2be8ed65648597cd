package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for page assembly.
var (
	ErrLayoutTemplate    = errors.New("layout template invalid")
	ErrWatermarkTemplate = errors.New("watermark template invalid")
	ErrPageRender        = errors.New("page rendering failed")
)

// PageData is everything needed to assemble one complete page.
type PageData struct {
	Title           string // Document title, escaped by the layout template
	CSS             string // Theme stylesheet, inlined in a <style> block
	Body            string // HTML fragment produced by the converter
	Watermark       bool   // Append the attribution block
	ClientHighlight bool   // Include highlight.js in the head
}

// PageAssembler renders pages from a layout and a watermark template.
// It is safe for concurrent use once constructed.
type PageAssembler struct {
	layout    *template.Template
	watermark *template.Template
}

// layoutData is the value the layout template is executed with.
type layoutData struct {
	Title string
	Head  template.HTML
	Body  template.HTML
}

// watermarkData is the value the watermark template is executed with.
type watermarkData struct {
	Text string
	URL  string
}

// NewPageAssembler parses the layout and watermark templates.
func NewPageAssembler(layoutTmpl, watermarkTmpl string) (*PageAssembler, error) {
	layout, err := template.New("layout").Parse(layoutTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutTemplate, err)
	}
	watermark, err := template.New("watermark").Parse(watermarkTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatermarkTemplate, err)
	}
	return &PageAssembler{layout: layout, watermark: watermark}, nil
}

// Assemble composes a full HTML document. The head holds the highlight
// include (client mode), the theme <style> and jQuery; the body holds the
// content container, the optional watermark and the navigation script.
func (a *PageAssembler) Assemble(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var head strings.Builder
	if data.ClientHighlight {
		head.WriteString(HighlightInclude)
		head.WriteString("\n")
	}
	head.WriteString("<style>")
	head.WriteString(sanitizeCSS(data.CSS))
	head.WriteString("</style>\n")
	head.WriteString(JQueryInclude)

	var body strings.Builder
	body.WriteString("<div class=\"container\">\n")
	body.WriteString(data.Body)
	body.WriteString("\n</div>\n")
	if data.Watermark {
		var buf bytes.Buffer
		if err := a.watermark.Execute(&buf, watermarkData{Text: WatermarkText, URL: WatermarkURL}); err != nil {
			return "", fmt.Errorf("%w: watermark: %v", ErrPageRender, err)
		}
		body.WriteString(strings.TrimSpace(buf.String()))
		body.WriteString("\n")
	}
	body.WriteString("<script>")
	body.WriteString(NavScript)
	body.WriteString("</script>")

	var out bytes.Buffer
	err := a.layout.Execute(&out, layoutData{
		Title: data.Title,
		Head:  template.HTML(head.String()), // #nosec G203 -- fixed includes and sanitized CSS
		Body:  template.HTML(body.String()), // #nosec G203 -- goldmark output, raw HTML disabled
	})
	if err != nil {
		return "", fmt.Errorf("%w: layout: %v", ErrPageRender, err)
	}
	return out.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
