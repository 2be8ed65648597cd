package md2site

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// newTestRenderer builds a Renderer from the built-in assets.
func newTestRenderer(t *testing.T, watermark bool, mode HighlightMode) *Renderer {
	t.Helper()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	theme, err := ResolveTheme(loader, DefaultTheme)
	if err != nil {
		t.Fatal(err)
	}
	templates, err := loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewRenderer(RendererOptions{
		Theme:     theme,
		Templates: templates,
		Watermark: watermark,
		Highlight: mode,
	})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

// ---------------------------------------------------------------------------
// TestRenderer_Render - Page structure
// ---------------------------------------------------------------------------

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, true, "")
	doc, err := r.Render(context.Background(), "# Intro\n\nSee [b](b.md) and ==this==.\n", "guide")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if doc.Title != "guide" {
		t.Errorf("Title = %q, want guide", doc.Title)
	}
	if !strings.HasPrefix(doc.HTML, "<!DOCTYPE html>") {
		t.Errorf("page should start with a doctype, got %.40q", doc.HTML)
	}

	page := parseDoc(t, doc.HTML)

	if got := page.Find("title").Text(); got != "guide" {
		t.Errorf("<title> = %q, want guide", got)
	}
	if !strings.Contains(page.Find("head style").Text(), r.Theme().CSS) {
		t.Error("theme stylesheet should be inlined in <head>")
	}
	if page.Find(`head script[src*="highlight"]`).Length() != 1 {
		t.Error("client mode should include highlight.js")
	}
	if page.Find(`head script[src*="jquery"]`).Length() != 1 {
		t.Error("jQuery include missing")
	}
	if page.Find("div.container h1#intro").Length() != 1 {
		t.Error("heading with id should be inside the container")
	}
	if page.Find("div.container mark").Text() != "this" {
		t.Error("==this== should become <mark>")
	}
	if page.Find(".watermark").Length() != 1 {
		t.Error("watermark should be present")
	}

	// Links are rewritten later, per target.
	if got := hrefs(page); len(got) < 1 || got[0] != "b.md" {
		t.Errorf("hrefs = %v, want b.md untouched", got)
	}

	// Order: container, watermark, navigation script.
	body := doc.HTML
	container := strings.Index(body, `<div class="container">`)
	watermark := strings.Index(body, `class="watermark"`)
	nav := strings.LastIndex(body, "<script>")
	if container < 0 || watermark < container || nav < watermark {
		t.Errorf("body order wrong: container=%d watermark=%d nav=%d", container, watermark, nav)
	}
}

func TestRenderer_NoWatermark(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer(t, false, "").Render(context.Background(), "text", "a")
	if err != nil {
		t.Fatal(err)
	}
	if parseDoc(t, doc.HTML).Find(".watermark").Length() != 0 {
		t.Error("watermark should be absent")
	}
}

func TestRenderer_ServerHighlight(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer(t, true, HighlightServer).Render(context.Background(),
		"```go\nfunc main() {}\n```\n", "code")
	if err != nil {
		t.Fatal(err)
	}

	page := parseDoc(t, doc.HTML)
	if page.Find(`script[src*="highlight"]`).Length() != 0 {
		t.Error("server mode should not include highlight.js")
	}
	if page.Find("pre[style]").Length() == 0 {
		t.Error("server mode should emit inline-styled <pre>")
	}
}

func TestRenderer_RawHTMLEscaped(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer(t, false, "").Render(context.Background(), "<script>alert(1)</script>\n", "x")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc.HTML, "<script>alert(1)") {
		t.Error("raw HTML in Markdown should not reach the page")
	}
}

func TestRenderer_FencedBlankLinesPreserved(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer(t, false, "").Render(context.Background(), "```\nline1\n\n\n\nline2\n```\n", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.HTML, "line1\n\n\n\nline2") {
		t.Errorf("code block lost its blank lines:\n%s", doc.HTML)
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, true, "")
	src := "# A\n\n| x | y |\n|---|---|\n| 1 | 2 |\n\nNote[^1]\n\n[^1]: foot\n"

	first, err := r.Render(context.Background(), src, "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(context.Background(), src, "a")
	if err != nil {
		t.Fatal(err)
	}
	if first.HTML != second.HTML {
		t.Error("rendering the same input twice should be byte-identical")
	}
}

func TestRenderer_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRenderer(t, true, "").Render(ctx, "# a", "a")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrRender) {
		t.Error("cancellation should not be reported as a render failure")
	}
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Construction errors
// ---------------------------------------------------------------------------

func TestNewRenderer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    RendererOptions
		wantErr error
	}{
		{
			name:    "missing templates",
			opts:    RendererOptions{},
			wantErr: ErrInvalidOptions,
		},
		{
			name: "bad highlight mode",
			opts: RendererOptions{
				Templates: &TemplateSet{Name: "t", Layout: "{{.Body}}", Watermark: "w"},
				Highlight: "nope",
			},
			wantErr: ErrInvalidOptions,
		},
		{
			name: "broken layout",
			opts: RendererOptions{
				Templates: &TemplateSet{Name: "t", Layout: "{{.Body", Watermark: "w"},
			},
			wantErr: ErrIncompleteTemplateSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRenderer(tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewRenderer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRenderer_LayoutErrorKeepsCause(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(RendererOptions{
		Templates: &TemplateSet{Name: "t", Layout: "{{.Body}}", Watermark: "{{end}}"},
	})
	if !errors.Is(err, pipeline.ErrWatermarkTemplate) {
		t.Errorf("NewRenderer() error = %v, want ErrWatermarkTemplate", err)
	}
}
