// Package config loads and validates the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxConfigSize limits config files to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxPathLength  = 4096
	MaxThemeLength = 100
)

// Render modes accepted in render.mode.
const (
	ModeHTML   = "html"
	ModePDF    = "pdf"
	ModeMirror = "mirror"
)

// Highlight modes accepted in render.highlight.
const (
	HighlightClient = "client"
	HighlightServer = "server"
)

// AppDirName is the directory under the user config dir searched for named configs.
const AppDirName = "go-md2site"

// Config holds all file-based configuration for a build.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Theme     string          `yaml:"theme"` // Theme name (empty = default theme)
	Watermark WatermarkConfig `yaml:"watermark"`
	Render    RenderConfig    `yaml:"render"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no input is given on the command line
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no output is given on the command line
}

// WatermarkConfig controls the attribution block appended to pages.
type WatermarkConfig struct {
	Enabled *bool `yaml:"enabled"` // nil = enabled
}

// RenderConfig selects output formats and rendering behaviour.
type RenderConfig struct {
	Mode      string `yaml:"mode"`      // "html", "pdf", "mirror" (empty = html)
	Highlight string `yaml:"highlight"` // "client", "server" (empty = client)
	Timeout   string `yaml:"timeout"`   // Go duration for PDF page loads (empty = default)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// WatermarkEnabled reports whether the watermark should be shown.
// An unset value means enabled.
func (c *Config) WatermarkEnabled() bool {
	return c.Watermark.Enabled == nil || *c.Watermark.Enabled
}

// Timeout returns render.timeout as a duration, or 0 when unset.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks enumerations, durations and field lengths.
// Called by LoadConfig; available to callers building a Config by hand.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"theme", c.Theme, MaxThemeLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch c.Render.Mode {
	case "", ModeHTML, ModePDF, ModeMirror:
	default:
		return fmt.Errorf("%w: render.mode %q (must be %s, %s, or %s)", ErrInvalidValue, c.Render.Mode, ModeHTML, ModePDF, ModeMirror)
	}

	switch c.Render.Highlight {
	case "", HighlightClient, HighlightServer:
	default:
		return fmt.Errorf("%w: render.highlight %q (must be %s or %s)", ErrInvalidValue, c.Render.Highlight, HighlightClient, HighlightServer)
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in standard locations. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := readLimited(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// parse decodes YAML strictly: unknown keys are rejected.
// Empty input yields the default configuration.
func parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readLimited reads a config file, refusing files over MaxConfigSize.
func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if info.Size() > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), MaxConfigSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return data, nil
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: .yaml then .yml, in the current directory then
// {UserConfigDir}/go-md2site/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppDirName))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, candidate := range tried {
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
