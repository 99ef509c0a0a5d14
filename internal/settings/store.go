package settings

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	logMessageMalformedSettings = "settings file ignored, using defaults"
	logMessageSettingsSaved     = "settings saved"
	logMessageExistingDiscarded = "settings file was not a JSON object, replaced on save"
	logFieldPath                = "path"
)

// StoreConfig configures a Store.
type StoreConfig[T any] struct {
	Path        string
	NewDefaults func() T
	// Validate rejects a merged document before it is stored. Nil accepts everything.
	Validate   func(document T) error
	FileSystem FileSystem
	Logger     *zap.Logger
}

// Store owns one settings document and keeps it in step with its file.
//
// Every mutation goes through the store's mutex and works on a copy of the document. The copy
// replaces the in-memory document only after it was written, so a failed write leaves memory
// matching the file.
type Store[T any] struct {
	mutex       sync.Mutex
	path        string
	newDefaults func() T
	validate    func(document T) error
	fileSystem  FileSystem
	logger      *zap.Logger
	document    T
}

// NewStore constructs a Store holding the defaults. Call Load to read the file.
func NewStore[T any](configuration StoreConfig[T]) *Store[T] {
	fileSystem := configuration.FileSystem
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T]{
		path:        configuration.Path,
		newDefaults: configuration.NewDefaults,
		validate:    configuration.Validate,
		fileSystem:  fileSystem,
		logger:      logger,
		document:    configuration.NewDefaults(),
	}
}

// Load replaces the in-memory document with the file merged over the defaults.
// The returned error is informational; the store always ends up with a usable document.
func (store *Store[T]) Load() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	document, err := Load(store.fileSystem, store.path, store.newDefaults)
	store.document = document
	if err != nil {
		store.logger.Warn(logMessageMalformedSettings, zap.String(logFieldPath, store.path), zap.Error(err))
	}
	return err
}

// Document returns a copy of the current document.
func (store *Store[T]) Document() T {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	cloned, err := Clone(store.document)
	if err != nil {
		return store.document
	}
	return cloned
}

// Update applies mutate to a copy of the document. mutate reports whether it changed anything;
// when it did, the copy is persisted, otherwise nothing is written.
func (store *Store[T]) Update(mutate func(document *T) bool) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	candidate, err := Clone(store.document)
	if err != nil {
		return err
	}
	if !mutate(&candidate) {
		return nil
	}
	return store.commitLocked(candidate)
}

// Merge lays a partial JSON object over the document, validates the result and persists it.
func (store *Store[T]) Merge(patch []byte) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	candidate, err := Overlay(store.document, patch)
	if err != nil {
		return err
	}
	if store.validate != nil {
		if err := store.validate(candidate); err != nil {
			return fmt.Errorf("%w %s: %w", ErrInvalidDocument, store.path, err)
		}
	}
	return store.commitLocked(candidate)
}

// Save writes the document. mergeExisting keeps keys that only exist in the file on disk.
func (store *Store[T]) Save(mergeExisting bool) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	return store.writeLocked(store.document, mergeExisting)
}

// Reset restores the defaults and persists them.
func (store *Store[T]) Reset() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	return store.commitLocked(store.newDefaults())
}

// Path returns the file backing the store.
func (store *Store[T]) Path() string {
	return store.path
}

func (store *Store[T]) commitLocked(candidate T) error {
	if err := store.writeLocked(candidate, false); err != nil {
		return err
	}
	store.document = candidate
	return nil
}

func (store *Store[T]) writeLocked(document T, mergeExisting bool) error {
	discarded, err := save(store.fileSystem, store.path, document, mergeExisting)
	if err != nil {
		return err
	}
	if discarded {
		store.logger.Warn(logMessageExistingDiscarded, zap.String(logFieldPath, store.path))
	}
	store.logger.Debug(logMessageSettingsSaved, zap.String(logFieldPath, store.path))
	return nil
}
