package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrLinkRewrite indicates the HTML could not be parsed or re-rendered.
var ErrLinkRewrite = errors.New("link rewrite failed")

// markdownLinkExts are the link extensions retargeted by RewriteMarkdownLinks.
var markdownLinkExts = []string{".md", ".markdown"}

// RewriteMarkdownLinks retargets anchor links that point at Markdown
// documents so they point at the generated outputs instead.
//
// Rewrites a[href] whose URL path ends in .md or .markdown (any case),
// replacing that extension with ext and keeping query and fragment.
//
// Leaves unchanged:
//   - URLs with a scheme (http:, mailto:, file:, data: ...) or a //host
//   - fragment-only links (#section)
//   - any attribute other than a[href] (img, script, link ...)
//   - links to non-Markdown files and directories
//   - hrefs that fail to parse as URLs
func RewriteMarkdownLinks(htmlContent, ext string) (string, error) {
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrLinkRewrite, err)
	}

	rewriteLinks(doc, ext)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", fmt.Errorf("%w: rendering: %v", ErrLinkRewrite, err)
	}
	return out, nil
}

// rewriteLinks walks the tree and rewrites a[href] in place.
func rewriteLinks(n *html.Node, ext string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "href" {
				if rewritten, ok := retargetHref(attr.Val, ext); ok {
					n.Attr[i].Val = rewritten
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteLinks(c, ext)
	}
}

// retargetHref returns href with its Markdown extension replaced by ext.
// ok is false when the href must be left alone.
func retargetHref(href, ext string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}

	mdExt := markdownExt(u.Path)
	if mdExt == "" {
		return "", false
	}

	// Splice on the raw text so the rest of the href keeps its original encoding.
	end := len(href)
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		end = i
	}
	rawPath := href[:end]
	if len(rawPath) < len(mdExt) || !strings.EqualFold(rawPath[len(rawPath)-len(mdExt):], mdExt) {
		return "", false
	}
	return rawPath[:len(rawPath)-len(mdExt)] + ext + href[end:], true
}

// markdownExt returns the Markdown extension p ends with, or "".
// A bare ".md" (no file name) does not count.
func markdownExt(p string) string {
	ext := path.Ext(p)
	if path.Base(p) == ext {
		return ""
	}
	for _, md := range markdownLinkExts {
		if strings.EqualFold(ext, md) {
			return ext
		}
	}
	return ""
}

// parseHTML parses full documents and fragments alike.
// Fragments are parsed in a <body> context and wrapped in a document node
// so the walk is uniform.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to text. Fragments render children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
