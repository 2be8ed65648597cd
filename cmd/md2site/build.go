package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrNoOutput       = errors.New("no output specified")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrJobsFailed     = errors.New("some files failed to build")
)

// runBuild resolves the run configuration, owns the PDF engine for the
// duration of the build and runs it.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	opts, err := resolveOptions(flags, positional, cfg)
	if err != nil {
		return err
	}

	stdout := env.Stdout
	if flags.common.quiet {
		stdout = io.Discard
	}

	bopts := []md2site.BuilderOption{
		md2site.WithOutput(stdout, env.Stderr),
		md2site.WithClock(env.Now),
	}

	if opts.Formats.Has(md2site.FormatPDF) {
		engine := env.NewPDFEngine(opts.Timeout)
		defer func() {
			if closeErr := engine.Close(); closeErr != nil {
				fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", closeErr)
			}
		}()
		bopts = append(bopts, md2site.WithPDFEngine(engine))
	}

	builder, err := md2site.NewBuilder(opts, bopts...)
	if err != nil {
		return err
	}

	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if jobErr := report.Err(); jobErr != nil {
		return fmt.Errorf("%w: %d of %d: %w", ErrJobsFailed, report.Failed, len(report.Results), jobErr)
	}
	return nil
}

// loadConfig loads the config named by the flag, or by MD2SITE_CONFIG when
// the flag is empty. No name means defaults.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveOptions merges flags over the (environment-adjusted) config into
// the immutable options of the run.
func resolveOptions(flags *buildFlags, positional []string, cfg *config.Config) (md2site.Options, error) {
	input, err := resolveInputPath(flags.input, positional, cfg)
	if err != nil {
		return md2site.Options{}, err
	}

	output := firstNonEmpty(flags.output, cfg.Output.DefaultDir)
	if output == "" {
		return md2site.Options{}, ErrNoOutput
	}

	formats, err := resolveFormats(flags.mode, cfg)
	if err != nil {
		return md2site.Options{}, err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return md2site.Options{}, err
	}

	opts := md2site.Options{
		Input:     input,
		Output:    output,
		Formats:   formats,
		Theme:     firstNonEmpty(flags.theme, cfg.Theme),
		Watermark: !flags.noWatermark && cfg.WatermarkEnabled(),
		Highlight: md2site.HighlightMode(firstNonEmpty(flags.highlight, cfg.Render.Highlight)),
		AssetPath: firstNonEmpty(flags.assetPath, cfg.Assets.BasePath),
		Timeout:   timeout,
		Verbose:   flags.common.verbose,
	}
	if err := opts.Validate(); err != nil {
		return md2site.Options{}, err
	}
	return opts, nil
}

// resolveInputPath picks --input, then the single positional argument,
// then the configured default.
func resolveInputPath(flagInput string, positional []string, cfg *config.Config) (string, error) {
	if len(positional) > 1 || (flagInput != "" && len(positional) > 0) {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}
	if flagInput != "" {
		return flagInput, nil
	}
	if len(positional) == 1 {
		return positional[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveFormats uses the mode flags when either is set, otherwise
// render.mode from the config.
func resolveFormats(f modeFlags, cfg *config.Config) (md2site.FormatSet, error) {
	if f.pdf || f.pdfMirror {
		return md2site.ModeFromFlags(f.pdf, f.pdfMirror), nil
	}
	return md2site.ParseMode(cfg.Render.Mode)
}

// resolveTimeout applies the priority --timeout > config (with
// MD2SITE_TIMEOUT already applied) > default.
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, d)
		}
		return d, nil
	}

	d, err := cfg.Timeout()
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return md2site.DefaultTimeout, nil
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
