package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2SITE_CONFIG: config file name or path
	Theme      string        // MD2SITE_THEME: theme name
	Timeout    time.Duration // MD2SITE_TIMEOUT: PDF page-load timeout
	InputDir   string        // MD2SITE_INPUT_DIR: default input
	OutputDir  string        // MD2SITE_OUTPUT_DIR: default output root
	AssetPath  string        // MD2SITE_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":     true,
	"MD2SITE_THEME":      true,
	"MD2SITE_TIMEOUT":    true,
	"MD2SITE_INPUT_DIR":  true,
	"MD2SITE_OUTPUT_DIR": true,
	"MD2SITE_ASSET_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive MD2SITE_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2SITE_CONFIG"),
		Theme:      os.Getenv("MD2SITE_THEME"),
		InputDir:   os.Getenv("MD2SITE_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2SITE_OUTPUT_DIR"),
		AssetPath:  os.Getenv("MD2SITE_ASSET_PATH"),
	}

	if timeout := os.Getenv("MD2SITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2SITE_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, "MD2SITE_") && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values on the file configuration.
// Environment wins over the file; flags are applied afterwards and win
// over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
}
