package pipeline

import (
	"context"
	"testing"
)

func TestCommonMarkPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	const (
		s = MarkStartPlaceholder
		e = MarkEndPlaceholder
	)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "CRLF to LF", input: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "CR to LF", input: "a\rb", want: "a\nb"},
		{name: "leading BOM stripped", input: "\uFEFF# Title", want: "# Title"},
		{name: "blank line runs capped", input: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "highlight converted", input: "some ==marked== text", want: "some " + s + "marked" + e + " text"},
		{name: "two highlights on a line", input: "==a== and ==b==", want: s + "a" + e + " and " + s + "b" + e},
		{name: "comparison operators untouched", input: "if a == b", want: "if a == b"},
		{name: "highlight does not span lines", input: "==a\nb==", want: "==a\nb=="},
		{
			name:  "inline code span untouched",
			input: "use `x==y==z` or ==this==",
			want:  "use `x==y==z` or " + s + "this" + e,
		},
		{
			name:  "double backtick span untouched",
			input: "``a ==b== c`` ==d==",
			want:  "``a ==b== c`` " + s + "d" + e,
		},
		{
			name:  "fenced code untouched",
			input: "```\n==keep==\n```\n==mark==",
			want:  "```\n==keep==\n```\n" + s + "mark" + e,
		},
		{
			name:  "tilde fence untouched",
			input: "~~~go\n==keep==\n~~~\n",
			want:  "~~~go\n==keep==\n~~~\n",
		},
		{
			name:  "longer closing fence closes",
			input: "```\nx\n`````\n==m==",
			want:  "```\nx\n`````\n" + s + "m" + e,
		},
		{
			name:  "blank lines inside fence kept",
			input: "```\nline1\n\n\n\nline2\n```",
			want:  "```\nline1\n\n\n\nline2\n```",
		},
		{
			name:  "blank lines around fence still capped",
			input: "a\n\n\n\n~~~\nx\n\n\n~~~\n\n\n\nb",
			want:  "a\n\n~~~\nx\n\n\n~~~\n\nb",
		},
		{
			name:  "blank lines after unclosed fence kept",
			input: "```\na\n\n\n\nb",
			want:  "```\na\n\n\n\nb",
		},
		{
			name:  "unclosed fence swallows rest",
			input: "```\n==keep==",
			want:  "```\n==keep==",
		},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommonMarkPreprocessor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\n==b=="
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() with cancelled context = %q, want input unchanged", got)
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	in := "<p>" + MarkStartPlaceholder + "x" + MarkEndPlaceholder + "</p>"
	if got := ConvertMarkPlaceholders(in); got != "<p><mark>x</mark></p>" {
		t.Errorf("ConvertMarkPlaceholders() = %q", got)
	}
}
