package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2site "github.com/alnah/go-md2site"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake PDF engine and environment
// ---------------------------------------------------------------------------

// fakeEngine implements md2site.PDFEngine without a browser.
type fakeEngine struct {
	mu       sync.Mutex
	err      error
	closeErr error
	timeout  time.Duration
	renders  int
	closed   bool
}

func (f *fakeEngine) RenderPDF(_ context.Context, _ string, opts md2site.PDFOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.renders++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 " + opts.Title), nil
}

func (f *fakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return f.closeErr
}

// testEnv returns an Environment writing to buffers and handing out engine
// for PDF runs.
func testEnv(engine *fakeEngine) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewPDFEngine: func(timeout time.Duration) md2site.PDFEngine {
			engine.mu.Lock()
			engine.timeout = timeout
			engine.mu.Unlock()
			return engine
		},
	}
	return env, stdout, stderr
}

// writeSite creates files under root from slash paths.
func writeSite(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// assertExists fails the test when rel is missing under root.
func assertExists(t *testing.T, root, rel string) {
	t.Helper()

	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("expected %s to exist: %v", rel, err)
	}
}

// assertMissing fails the test when rel exists under root.
func assertMissing(t *testing.T, root, rel string) {
	t.Helper()

	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Errorf("expected %s not to exist", rel)
	}
}
