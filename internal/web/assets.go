// Package web bundles the default web root served from the user-data directory.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed wwwroot
var embeddedFS embed.FS

const (
	embeddedRootDirectory = "wwwroot"
	embedSubErrorFormat   = "embed sub %s: %w"
)

// StaticAssets exposes the bundled web root with paths relative to wwwroot.
func StaticAssets() (fs.FS, error) {
	assets, err := fs.Sub(embeddedFS, embeddedRootDirectory)
	if err != nil {
		return nil, fmt.Errorf(embedSubErrorFormat, embeddedRootDirectory, err)
	}
	return assets, nil
}
