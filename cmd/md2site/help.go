package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site [build] [flags] [input]")
	fmt.Fprintln(w, "       md2site <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file or directory into a themed static site.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site (default)")
	fmt.Fprintln(w, "  doctor     Check that PDF output can run")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help build' for build flags.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site [build] -i <input> -o <output> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every Markdown file under input to output. Other files are")
	fmt.Fprintln(w, "copied unchanged.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown file or directory (or first argument)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats:")
	fmt.Fprintln(w, "      --pdf                 Render PDF only")
	fmt.Fprintln(w, "      --pdf-mirror          Render PDF and HTML")
	fmt.Fprintln(w, "      --timeout <dur>       PDF page-load timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Appearance:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme: iridium, dark, paper (default iridium)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "      --highlight <mode>    Code highlighting: client, server")
	fmt.Fprintln(w, "      --no-water-mark       Omit the watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_THEME, MD2SITE_TIMEOUT, MD2SITE_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2SITE_OUTPUT_DIR, MD2SITE_ASSET_PATH")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2site doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox and temp directory setup for PDF output.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
