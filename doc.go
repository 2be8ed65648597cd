// Package md2site turns a tree of Markdown documents into a themed,
// cross-linked static site, optionally rendering every page as PDF too.
//
// # Quick Start
//
//	engine := md2site.NewRodEngine(30 * time.Second)
//	defer engine.Close()
//
//	b, err := md2site.NewBuilder(md2site.Options{
//	    Input:     "docs",
//	    Output:    "site",
//	    Formats:   md2site.ModeFromFlags(false, true), // HTML and PDF
//	    Theme:     "iridium",
//	    Watermark: true,
//	}, md2site.WithPDFEngine(engine))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err) // input could not be resolved, or theme setup failed
//	}
//	if err := report.Err(); err != nil {
//	    log.Print(err) // some jobs failed; the others were written
//	}
//
// # Build Pipeline
//
// A build runs these stages, strictly sequentially:
//
//  1. Walk: resolve the input and compute every job's destination up front
//  2. Migrate: copy non-Markdown files (images, attachments) unchanged
//  3. Render: Markdown to a full HTML page (theme, header includes,
//     navigation script, optional watermark)
//  4. Rewrite links: .md/.markdown cross-links become .html or .pdf,
//     once per requested output format
//  5. Write: remove stale outputs, then write PDF (via headless Chrome)
//     and/or HTML next to each other
//
// A job that fails at any stage is recorded in the Report and the build
// moves on to the next one.
//
// # Output Formats
//
// ModeFromFlags maps the two command-line switches to a FormatSet:
//
//	neither       -> HTML only
//	pdf           -> PDF only
//	mirror        -> HTML and PDF
//	pdf + mirror  -> HTML and PDF (mirror wins)
//
// # Themes and Templates
//
// Themes are stylesheets looked up by name. Built-in themes are iridium
// (default), dark and paper. A directory passed as Options.AssetPath can add
// or override themes (styles/NAME.css) and the page templates
// (templates/default/layout.html, templates/default/watermark.html).
// An unknown theme name falls back to the default theme with a warning.
package md2site
