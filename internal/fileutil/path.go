package fileutil

import (
	"path/filepath"
	"strings"
)

// MarkdownExtensions lists the source extensions recognised as Markdown.
// Matching is case-insensitive.
var MarkdownExtensions = []string{".md", ".markdown"}

// Path is a filesystem path with explicit join, relative and extension
// operations. It replaces ad hoc string splitting on separators.
type Path string

// String returns the path as a plain string.
func (p Path) String() string { return string(p) }

// Join appends elements using the platform separator and cleans the result.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Dir returns the parent directory.
func (p Path) Dir() Path { return Path(filepath.Dir(string(p))) }

// Base returns the last element.
func (p Path) Base() string { return filepath.Base(string(p)) }

// Ext returns the final extension including the dot, or "".
func (p Path) Ext() string { return filepath.Ext(string(p)) }

// Rel returns target expressed relative to p.
func (p Path) Rel(target Path) (Path, error) {
	rel, err := filepath.Rel(string(p), string(target))
	if err != nil {
		return "", err
	}
	return Path(rel), nil
}

// Contains reports whether target is p itself or lies beneath it.
func (p Path) Contains(target Path) bool {
	rel, err := p.Rel(target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(string(rel), ".."+string(filepath.Separator))
}

// IsMarkdown reports whether the final extension is a Markdown extension.
func (p Path) IsMarkdown() bool {
	return IsMarkdownExt(p.Ext())
}

// Stem returns the base name with a Markdown extension removed.
// Other extensions are kept: "notes.txt" stays "notes.txt".
func (p Path) Stem() string {
	base := p.Base()
	if p.IsMarkdown() {
		return strings.TrimSuffix(base, p.Ext())
	}
	return base
}

// WithOutputExt replaces a Markdown extension with ext.
// Paths without a Markdown extension get ext appended, so "a.tar.md" becomes
// "a.tar.html" and "README" becomes "README.html".
func (p Path) WithOutputExt(ext string) Path {
	if p.IsMarkdown() {
		return Path(strings.TrimSuffix(string(p), p.Ext()) + ext)
	}
	return Path(string(p) + ext)
}

// IsMarkdownExt reports whether ext (with leading dot) is a Markdown extension.
func IsMarkdownExt(ext string) bool {
	for _, md := range MarkdownExtensions {
		if strings.EqualFold(ext, md) {
			return true
		}
	}
	return false
}
