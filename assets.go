package md2site

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2site/internal/assets"
)

// Asset errors re-exported for callers matching with errors.Is.
var (
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
)

// DefaultTemplateSet is the name of the template set used for every page.
const DefaultTemplateSet = assets.DefaultTemplateSetName

// TemplateSet holds the page layout and watermark templates.
type TemplateSet = assets.TemplateSet

// AssetLoader defines the contract for loading themes and page templates.
// Implement it to serve assets from somewhere other than disk.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	LoadStyle(name string) (string, error)
	// LoadTemplateSet loads the layout and watermark templates of a set.
	LoadTemplateSet(name string) (*TemplateSet, error)
	// ListStyles returns the available theme names, sorted.
	ListStyles() ([]string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// An empty basePath serves the built-in assets only; otherwise files under
// basePath (styles/NAME.css, templates/NAME/*.html) win over built-ins.
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		if errors.Is(err, assets.ErrInvalidBasePath) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		return nil, err
	}
	return resolver, nil
}
