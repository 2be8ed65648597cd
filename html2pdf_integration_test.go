//go:build integration

package md2site

// Notes:
// - Requires Chrome or Chromium; rod downloads one on first run if none is found.
// - Set ROD_BROWSER_BIN to use a pre-installed browser in containers.

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

const testTimeout = 30 * time.Second

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestRodEngine_RenderPDF_Integration(t *testing.T) {
	engine := NewRodEngine(testTimeout)
	t.Cleanup(func() { _ = engine.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*testTimeout)
	defer cancel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><h1>Hello, World!</h1><p>This is a test document.</p></body>
</html>`

	data, err := engine.RenderPDF(ctx, html, PDFOptions{Title: "Test", Landscape: true, BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	assertValidPDF(t, data)
}

func TestBuild_Mirror_Integration(t *testing.T) {
	engine := NewRodEngine(testTimeout)
	t.Cleanup(func() { _ = engine.Close() })

	in := t.TempDir()
	writeTree(t, in, map[string]string{
		"index.md":     "# Home\n\n[Next](next.md)\n",
		"next.md":      "# Next\n\n```go\nfunc main() {}\n```\n",
		"img/logo.txt": "asset",
	})
	out := filepath.Join(t.TempDir(), "site")

	report, _, stderr := runBuild(t, context.Background(), Options{
		Input: in, Output: out, Formats: FormatHTML | FormatPDF, Watermark: true,
	}, engine)

	if report.Failed != 0 {
		t.Fatalf("report = %+v\nstderr:\n%s", report, stderr)
	}

	files := readTree(t, out)
	for _, name := range []string{"index.html", "index.pdf", "next.html", "next.pdf", "img/logo.txt"} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing %s in %v", name, keys(files))
		}
	}
	assertValidPDF(t, []byte(files["index.pdf"]))

	for name := range files {
		if filepath.Ext(name) == ".html" && filepath.Base(name)[0] == '.' {
			t.Errorf("temporary file %s left behind", name)
		}
	}
}
