package assets

// AssetLoader defines the contract for loading themes and template sets.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page templates of a set by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// ListStyles returns the names of available themes, sorted.
	ListStyles() ([]string, error)
}
