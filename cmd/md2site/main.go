package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches commands and returns the process exit code.
// Anything that is not a command is parsed as build flags.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) > 0 {
		switch args[0] {
		case "help":
			runHelp(args[1:], env)
			return ExitSuccess
		case "version":
			fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
			return ExitSuccess
		case "doctor":
			return runDoctorCmd(args[1:], env)
		case "completion":
			if err := runCompletion(args[1:], env); err != nil {
				fmt.Fprintf(env.Stderr, "error: %v\n", err)
				return ExitUsage
			}
			return ExitSuccess
		case "build":
			args = args[1:]
		}
	}

	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\nRun 'md2site help build' for usage.\n", err)
		return ExitUsage
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runBuild(ctx, positional, flags, env); err != nil {
		// Failed jobs were already reported one by one.
		if !errors.Is(err, ErrJobsFailed) {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs configures GOMAXPROCS, logging the decision in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(verbose bool, w io.Writer) {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}

// hintFor returns an actionable hint for run-level errors.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2site.ErrInputResolve):
		return hints.ForInputPath()
	case errors.Is(err, md2site.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	default:
		return ""
	}
}
