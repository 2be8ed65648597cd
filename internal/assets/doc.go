// Package assets provides themes (CSS) and page templates for site generation.
// Assets can be loaded from embedded files or a custom directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and templates (go:embed)
//	    ├── FilesystemLoader  - themes and templates from a directory on disk
//	    └── AssetResolver     - custom-first lookup with embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Theme stylesheet (e.g., dark.css)
//	└── templates/
//	    └── {name}/
//	        ├── layout.html      # Page shell (title, head includes, body)
//	        └── watermark.html   # Attribution block appended to pages
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
