package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged and become <mark> tags afterwards,
// so raw HTML never has to be enabled.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

const utf8BOM = "\uFEFF"

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==([^=\n]+?)==`)
	fenceOpen          = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor prepares source text for CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown strips a leading BOM, normalises line endings,
// converts ==text== outside code to highlight placeholders, and caps
// blank-line runs outside fenced code. A cancelled context returns content
// unchanged.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, utf8BOM)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = convertHighlights(content)
	return compressBlankLines(content)
}

// compressBlankLines caps runs of three or more newlines at two. Newlines
// inside a fenced code block belong to the code and are kept.
func compressBlankLines(content string) string {
	var out, run strings.Builder
	flush := func() {
		out.WriteString(multipleBlankLines.ReplaceAllString(run.String(), "\n\n"))
		run.Reset()
	}

	fence := ""
	for i, line := range strings.Split(content, "\n") {
		inside := fence != ""
		if i > 0 {
			if inside {
				flush()
				out.WriteByte('\n')
			} else {
				run.WriteByte('\n')
			}
		}

		switch {
		case inside && isFenceClose(line, fence):
			fence = ""
			run.WriteString(line)
		case inside:
			out.WriteString(line)
		default:
			if m := fenceOpen.FindStringSubmatch(line); m != nil {
				fence = m[1]
			}
			run.WriteString(line)
		}
	}
	flush()
	return out.String()
}

// convertHighlights rewrites ==text== to placeholders, leaving fenced
// code blocks and inline code spans untouched.
func convertHighlights(content string) string {
	lines := strings.Split(content, "\n")
	fence := ""
	for i, line := range lines {
		if fence != "" {
			if isFenceClose(line, fence) {
				fence = ""
			}
			continue
		}
		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			fence = m[1]
			continue
		}
		lines[i] = highlightOutsideCodeSpans(line)
	}
	return strings.Join(lines, "\n")
}

// isFenceClose reports whether line closes a block opened with fence.
func isFenceClose(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	run := strings.TrimRight(trimmed, " \t")
	return len(run) >= len(fence) && strings.Trim(run, fence[:1]) == ""
}

// highlightOutsideCodeSpans applies the highlight pattern to the parts of a
// line that are not inside backtick code spans.
func highlightOutsideCodeSpans(line string) string {
	if !strings.Contains(line, "==") {
		return line
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(line, '`')
		if start < 0 {
			break
		}
		ticks := countLeading(line[start:], '`')
		closing := strings.Index(line[start+ticks:], line[start:start+ticks])
		if closing < 0 {
			break
		}
		end := start + ticks + closing + ticks
		b.WriteString(replaceHighlights(line[:start]))
		b.WriteString(line[start:end])
		line = line[end:]
	}
	b.WriteString(replaceHighlights(line))
	return b.String()
}

func replaceHighlights(s string) string {
	return highlightPattern.ReplaceAllString(s, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
	).Replace(content)
}
