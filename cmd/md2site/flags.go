package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// modeFlags select the output formats.
type modeFlags struct {
	pdf       bool // PDF only
	pdfMirror bool // PDF and HTML
}

// buildFlags holds all flags for a build.
type buildFlags struct {
	common      commonFlags
	mode        modeFlags
	input       string
	output      string
	theme       string
	assetPath   string
	highlight   string
	timeout     string
	noWatermark bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addModeFlags adds output mode flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVar(&f.pdf, "pdf", false, "render PDF instead of HTML")
	fs.BoolVar(&f.pdfMirror, "pdf-mirror", false, "render both PDF and HTML")
}

// newBuildFlagSet registers every build flag into f.
// Shared by parsing and shell completion.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("md2site", flag.ContinueOnError)

	fs.StringVarP(&f.input, "input", "i", "", "Markdown file or directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name (default \"iridium\")")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting: client, server")
	fs.StringVar(&f.timeout, "timeout", "", "PDF page-load timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noWatermark, "no-water-mark", false, "omit the watermark")

	addModeFlags(fs, &f.mode)
	addCommonFlags(fs, &f.common)

	return fs
}

// parseBuildFlags parses build flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
