// Package web embeds the static assets served by the web front end at
// /static/.
package web

import "embed"

// StaticFS holds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
