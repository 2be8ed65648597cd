package md2site

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is a resolved stylesheet, applied to every page of a run.
type Theme struct {
	Name      string // Theme actually used
	CSS       string // Stylesheet content
	Requested string // Name that was asked for
	Fallback  bool   // True when Requested could not be loaded
	Cause     error  // Why Requested could not be loaded (nil unless Fallback)
}

// ResolveTheme loads the named theme, falling back to DefaultTheme when the
// name is unknown, invalid, or cannot be read. An empty name selects the
// default. Names match case-insensitively when no theme has the exact
// spelling. Only a failure to load the default theme itself is an error.
func ResolveTheme(loader AssetLoader, name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}

	css, used, err := loadStyleFold(loader, name)
	if err == nil {
		return Theme{Name: used, CSS: css, Requested: name}, nil
	}
	if strings.EqualFold(name, DefaultTheme) {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeUnavailable, err)
	}

	css, defErr := loader.LoadStyle(DefaultTheme)
	if defErr != nil {
		return Theme{}, fmt.Errorf("%w: %v (after %q failed: %v)", ErrThemeUnavailable, defErr, name, err)
	}
	return Theme{
		Name:      DefaultTheme,
		CSS:       css,
		Requested: name,
		Fallback:  true,
		Cause:     err,
	}, nil
}

// loadStyleFold loads name, retrying in lower case when it is not found.
// Returns the name that was loaded.
func loadStyleFold(loader AssetLoader, name string) (string, string, error) {
	css, err := loader.LoadStyle(name)
	if err == nil {
		return css, name, nil
	}

	lower := strings.ToLower(name)
	if lower == name || !errors.Is(err, ErrStyleNotFound) {
		return "", "", err
	}
	if css, lowerErr := loader.LoadStyle(lower); lowerErr == nil {
		return css, lower, nil
	}
	return "", "", err
}
