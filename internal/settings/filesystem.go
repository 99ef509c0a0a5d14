package settings

import (
	"os"
)

const (
	directoryPermissions = 0o755
	filePermissions      = 0o644
)

// FileSystem is the file access used by settings documents and account lists.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, permissions os.FileMode) error
	MkdirAll(path string, permissions os.FileMode) error
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

// ReadFile reads the named file.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to the named file, truncating it first.
func (OSFileSystem) WriteFile(name string, data []byte, permissions os.FileMode) error {
	return os.WriteFile(name, data, permissions)
}

// MkdirAll creates a directory and any missing parents.
func (OSFileSystem) MkdirAll(path string, permissions os.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// WriteDocument writes data to path after creating its directory.
func WriteDocument(fileSystem FileSystem, path string, data []byte) error {
	if err := fileSystem.MkdirAll(parentDirectory(path), directoryPermissions); err != nil {
		return err
	}
	return fileSystem.WriteFile(path, data, filePermissions)
}

// EnsureDirectory creates path when it does not exist.
func EnsureDirectory(fileSystem FileSystem, path string) error {
	return fileSystem.MkdirAll(path, directoryPermissions)
}
