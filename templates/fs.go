package templates

import "embed"

// FS holds the layout, partials and pages.
//
//go:embed layouts partials pages
var FS embed.FS
