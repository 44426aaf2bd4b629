// Package web holds the embedded dashboard UI for linkboard.
package web

import "embed"

// StaticFS contains the single-page UI served at /.
//
//go:embed static
var StaticFS embed.FS
