// Package static bundles the assets served without a database.
package static

import "embed"

// FS holds the bundled assets
//
//go:embed logo.svg
var FS embed.FS

// DefaultLogo is the bundled logo shown when no custom logo is set
const (
	DefaultLogo            = "logo.svg"
	DefaultLogoContentType = "image/svg+xml"
)
