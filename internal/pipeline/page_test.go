package pipeline

// Notes:
// - Uses the built-in template set so the shipped layout is exercised
// - Order assertions compare byte offsets of marker strings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/assets"
)

func defaultAssembler(t *testing.T) *PageAssembler {
	t.Helper()

	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	a, err := NewPageAssembler(ts.Layout, ts.Watermark)
	if err != nil {
		t.Fatalf("NewPageAssembler() error = %v", err)
	}
	return a
}

// ---------------------------------------------------------------------------
// TestPageAssembler_Assemble - Composition order
// ---------------------------------------------------------------------------

func TestPageAssembler_Assemble_Order(t *testing.T) {
	t.Parallel()

	got, err := defaultAssembler(t).Assemble(context.Background(), PageData{
		Title:           "guide",
		CSS:             "body{color:red}",
		Body:            "<h1 id=\"x\">X</h1>",
		Watermark:       true,
		ClientHighlight: true,
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	markers := []string{
		"<!DOCTYPE html>",
		"<title>guide</title>",
		"highlight.min.js",
		"hljs.initHighlightingOnLoad()",
		"<style>body{color:red}</style>",
		"jquery.min.js",
		"</head>",
		`<div class="container">`,
		`<h1 id="x">X</h1>`,
		"Powered by",
		"DOMContentLoaded",
		"</body>",
	}

	last := -1
	for _, m := range markers {
		idx := strings.Index(got, m)
		if idx < 0 {
			t.Fatalf("Assemble() missing %q in:\n%s", m, got)
		}
		if idx <= last {
			t.Errorf("%q at %d appears before previous marker at %d", m, idx, last)
		}
		last = idx
	}
}

func TestPageAssembler_Assemble_Toggles(t *testing.T) {
	t.Parallel()

	a := defaultAssembler(t)

	tests := []struct {
		name        string
		data        PageData
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "watermark off",
			data:        PageData{Title: "t", Watermark: false, ClientHighlight: true},
			wantContain: []string{"highlight.min.js"},
			wantAbsent:  []string{"Powered by", WatermarkURL},
		},
		{
			name:        "watermark on",
			data:        PageData{Title: "t", Watermark: true},
			wantContain: []string{"Powered by", WatermarkURL, WatermarkText},
		},
		{
			name:        "server highlighting drops client include",
			data:        PageData{Title: "t", ClientHighlight: false},
			wantContain: []string{"jquery.min.js"},
			wantAbsent:  []string{"highlight.min.js"},
		},
		{
			name:        "title is escaped",
			data:        PageData{Title: "<b>&"},
			wantContain: []string{"<title>&lt;b&gt;&amp;</title>"},
		},
		{
			name:        "css cannot close style block",
			data:        PageData{Title: "t", CSS: "a{}</style><script>x()</script>"},
			wantContain: []string{`<\/style><script>x()<\/script>`},
			wantAbsent:  []string{"a{}</style>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := a.Assemble(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q", want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("unexpected %q", absent)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewPageAssembler - Template errors
// ---------------------------------------------------------------------------

func TestNewPageAssembler_InvalidTemplates(t *testing.T) {
	t.Parallel()

	if _, err := NewPageAssembler("{{.Title", "ok"); !errors.Is(err, ErrLayoutTemplate) {
		t.Errorf("bad layout error = %v, want ErrLayoutTemplate", err)
	}
	if _, err := NewPageAssembler("ok", "{{end}}"); !errors.Is(err, ErrWatermarkTemplate) {
		t.Errorf("bad watermark error = %v, want ErrWatermarkTemplate", err)
	}
}

func TestPageAssembler_Assemble_ExecuteError(t *testing.T) {
	t.Parallel()

	a, err := NewPageAssembler("{{.Missing}}", "")
	if err != nil {
		t.Fatalf("NewPageAssembler() error = %v", err)
	}
	if _, err := a.Assemble(context.Background(), PageData{}); !errors.Is(err, ErrPageRender) {
		t.Errorf("Assemble() error = %v, want ErrPageRender", err)
	}
}

func TestPageAssembler_Assemble_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := defaultAssembler(t).Assemble(ctx, PageData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Assemble() error = %v, want context.Canceled", err)
	}
}
