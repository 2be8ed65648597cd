package md2site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ---------------------------------------------------------------------------
// Mock PDF engine
// ---------------------------------------------------------------------------

// mockEngine implements PDFEngine without a browser. Output is derived
// from the input so reruns are byte-identical.
type mockEngine struct {
	mu     sync.Mutex
	err    error
	calls  []PDFOptions
	inputs []string
	closed bool
}

func (m *mockEngine) RenderPDF(ctx context.Context, htmlContent string, opts PDFOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, opts)
	m.inputs = append(m.inputs, htmlContent)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.4 " + opts.Title), nil
}

func (m *mockEngine) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Filesystem helpers
// ---------------------------------------------------------------------------

// writeTree creates files under root from a map of slash paths to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// readTree returns every regular file under root keyed by slash path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", root, err)
	}
	return files
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// parseDoc parses an HTML page for assertions.
func parseDoc(t *testing.T, content string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

// hrefs returns the href of every anchor in document order.
func hrefs(doc *goquery.Document) []string {
	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, href)
	})
	return out
}

// evalPath resolves symlinks so comparisons survive /tmp -> /private/tmp.
func evalPath(t *testing.T, path string) string {
	t.Helper()

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks(%s): %v", path, err)
	}
	return real
}
