// Package pipeline implements the per-document stages of site generation.
//
// Stages, in the order a document passes through them:
//   - Markdown preprocessing (line endings, ==highlight== marks, blank lines)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Page assembly: layout template, theme stylesheet, header includes,
//     watermark, and the heading navigation script
//   - Link rewriting: Markdown cross-links retargeted to .html or .pdf
//
// Nothing here touches the filesystem. Reading sources and writing
// outputs is handled by the root md2site package.
package pipeline
