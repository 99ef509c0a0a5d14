package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	staticDirectoryName     = "wwwroot"
	errMessageInspectAssets = "inspect static assets"
	errMessageAssetsNotDir  = "static asset path is not a directory"
	errMessageCopyAssets    = "copy static assets"
)

// ErrStaticPathNotDirectory reports a wwwroot path occupied by a regular file.
var ErrStaticPathNotDirectory = errors.New(errMessageAssetsNotDir)

// StaticDirectory returns the web root inside the user-data directory.
func StaticDirectory(userDataDirectory string) string {
	return filepath.Join(userDataDirectory, staticDirectoryName)
}

// EnsureStaticAssets copies the bundled web root into the user-data directory when it is
// missing. It reports whether anything was copied. An existing web root is left untouched.
func EnsureStaticAssets(userDataDirectory string, bundled fs.FS) (bool, error) {
	staticDirectory := StaticDirectory(userDataDirectory)
	info, err := os.Stat(staticDirectory)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%w: %s", ErrStaticPathNotDirectory, staticDirectory)
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("%s: %w", errMessageInspectAssets, err)
	}

	if err := os.CopyFS(staticDirectory, bundled); err != nil {
		return false, fmt.Errorf("%s: %w", errMessageCopyAssets, err)
	}
	return true, nil
}
