package md2site

import (
	"fmt"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// RewriteLinks retargets relative links to Markdown files in htmlContent so
// they point at the output of target: "guide.md#setup" becomes
// "guide.html#setup" for TargetHTML and "guide.pdf#setup" for TargetPDF.
// External URLs, fragment-only links and non-anchor elements are untouched.
//
// Returns ErrInvalidTarget for an unknown target.
func RewriteLinks(htmlContent string, target Target) (string, error) {
	ext, err := target.Ext()
	if err != nil {
		return "", err
	}

	out, err := pipeline.RewriteMarkdownLinks(htmlContent, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}
