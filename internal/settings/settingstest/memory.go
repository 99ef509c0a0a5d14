// Package settingstest provides an in-memory settings.FileSystem that counts writes.
package settingstest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// MemoryFileSystem keeps files in memory and records every write.
type MemoryFileSystem struct {
	mutex       sync.Mutex
	files       map[string][]byte
	writeCounts map[string]int
	totalWrites int
	failures    int
	failure     error
	failedPaths map[string]error
}

// NewMemoryFileSystem returns an empty MemoryFileSystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files:       make(map[string][]byte),
		writeCounts: make(map[string]int),
		failedPaths: make(map[string]error),
	}
}

// ReadFile returns the stored content or fs.ErrNotExist.
func (memory *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	content, exists := memory.files[filepath.Clean(name)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

// WriteFile stores data and counts the write. Writes armed by FailWrites or FailPath return an
// error instead and leave the stored content untouched.
func (memory *MemoryFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	cleanName := filepath.Clean(name)
	if err, failing := memory.failedPaths[cleanName]; failing {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	if memory.failures > 0 {
		memory.failures--
		return &fs.PathError{Op: "write", Path: name, Err: memory.failure}
	}
	memory.files[cleanName] = append([]byte(nil), data...)
	memory.writeCounts[cleanName]++
	memory.totalWrites++
	return nil
}

// MkdirAll is a no-op; directories are implicit.
func (memory *MemoryFileSystem) MkdirAll(string, os.FileMode) error {
	return nil
}

// Seed stores content without counting it as a write.
func (memory *MemoryFileSystem) Seed(name string, content string) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	memory.files[filepath.Clean(name)] = []byte(content)
}

// Content returns the stored content of name.
func (memory *MemoryFileSystem) Content(name string) (string, bool) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	content, exists := memory.files[filepath.Clean(name)]
	return string(content), exists
}

// Writes returns how many times name was written.
func (memory *MemoryFileSystem) Writes(name string) int {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	return memory.writeCounts[filepath.Clean(name)]
}

// TotalWrites returns the number of writes across all files.
func (memory *MemoryFileSystem) TotalWrites() int {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	return memory.totalWrites
}

// FailWrites makes the next count writes fail with err.
func (memory *MemoryFileSystem) FailWrites(count int, err error) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	memory.failures = count
	memory.failure = err
}

// FailPath makes every write to name fail with err until it is called again with a nil err.
func (memory *MemoryFileSystem) FailPath(name string, err error) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	if err == nil {
		delete(memory.failedPaths, filepath.Clean(name))
		return
	}
	memory.failedPaths[filepath.Clean(name)] = err
}
