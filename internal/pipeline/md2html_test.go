package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mode         HighlightMode
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading gets generated id",
			mode:         HighlightClient,
			input:        "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
			wantNot:      []string{"<!DOCTYPE", "<body"},
		},
		{
			name:         "GFM table",
			mode:         HighlightClient,
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>A</th>", "<td>2</td>"},
		},
		{
			name:         "footnote",
			mode:         HighlightClient,
			input:        "Text[^1]\n\n[^1]: Note",
			wantContains: []string{`class="footnotes"`, "Note"},
		},
		{
			name:         "client mode leaves language class for highlight.js",
			mode:         HighlightClient,
			input:        "```go\nfmt.Println(1)\n```",
			wantContains: []string{`<pre><code class="language-go">fmt.Println(1)`},
		},
		{
			name:         "server mode emits inline styles",
			mode:         HighlightServer,
			input:        "```go\nfmt.Println(1)\n```",
			wantContains: []string{`style="`, "Println"},
			wantNot:      []string{`class="language-go"`},
		},
		{
			name:         "raw HTML is not passed through",
			mode:         HighlightClient,
			input:        "<script>alert(1)</script>",
			wantNot:      []string{"<script>"},
			wantContains: []string{"raw HTML omitted"},
		},
		{
			name:         "mark placeholders become mark tags",
			mode:         HighlightClient,
			input:        "a " + MarkStartPlaceholder + "b" + MarkEndPlaceholder + " c",
			wantContains: []string{"<mark>b</mark>"},
			wantNot:      []string{MarkStartPlaceholder, MarkEndPlaceholder},
		},
		{
			name:         "links to markdown kept as written",
			mode:         HighlightClient,
			input:        "[guide](guide.md)",
			wantContains: []string{`<a href="guide.md">guide</a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.mode).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", not, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(HighlightClient).ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkConverter_Mode(t *testing.T) {
	t.Parallel()

	if got := NewGoldmarkConverter(HighlightServer).Mode(); got != HighlightServer {
		t.Errorf("Mode() = %q, want server", got)
	}
	if got := NewGoldmarkConverter("bogus").Mode(); got != HighlightClient {
		t.Errorf("Mode() for unknown = %q, want client", got)
	}
}

func TestParseHighlightMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    HighlightMode
		wantErr bool
	}{
		{"", HighlightClient, false},
		{"client", HighlightClient, false},
		{"server", HighlightServer, false},
		{"Server", "", true},
		{"none", "", true},
	}

	for _, tt := range tests {
		got, err := ParseHighlightMode(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidHighlightMode) {
				t.Errorf("ParseHighlightMode(%q) error = %v, want ErrInvalidHighlightMode", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseHighlightMode(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}
