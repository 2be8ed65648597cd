package assets

// TemplateSet holds the HTML templates used to assemble a page.
type TemplateSet struct {
	Name      string // Identifier (set name)
	Layout    string // Page shell: html/template with .Title, .Head, .Body
	Watermark string // Attribution block: html/template with .Text, .URL
}

// Template file names inside a template set directory.
const (
	layoutFile    = "layout.html"
	watermarkFile = "watermark.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the built-in theme used when none is requested
// or the requested one cannot be found.
const DefaultStyleName = "iridium"
