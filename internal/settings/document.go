package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	jsonIndent                  = "  "
	errMessageMalformedDocument = "malformed settings document"
	errMessageReadDocument      = "read settings document"
	errMessageEncodeDocument    = "encode settings document"
	errMessageWriteDocument     = "write settings document"
	errMessagePatchNotObject    = "patch is not a JSON object"
	errMessageInvalidDocument   = "invalid settings document"
)

// ErrMalformedDocument reports a settings file that exists but could not be decoded.
var ErrMalformedDocument = errors.New(errMessageMalformedDocument)

// ErrInvalidDocument reports a decodable document rejected by the store's validator.
var ErrInvalidDocument = errors.New(errMessageInvalidDocument)

// Load reads the document at path and overlays its fields onto a fresh defaults document.
//
// A missing file yields the defaults with a nil error. An unreadable or malformed file yields
// fresh defaults together with an error describing why the file was ignored; the returned
// document is usable in every case.
func Load[T any](fileSystem FileSystem, path string, newDefaults func() T) (T, error) {
	content, err := fileSystem.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newDefaults(), nil
		}
		return newDefaults(), fmt.Errorf("%s %s: %w", errMessageReadDocument, path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return newDefaults(), nil
	}

	document := newDefaults()
	if err := json.Unmarshal(content, &document); err != nil {
		return newDefaults(), fmt.Errorf("%w %s: %v", ErrMalformedDocument, path, err)
	}
	return document, nil
}

// Save writes document to path.
//
// With mergeExisting set, the top-level keys of document are laid over whatever object is
// currently stored at path, so keys that only exist on disk survive the write. Otherwise the file
// is replaced by document.
func Save(fileSystem FileSystem, path string, document any, mergeExisting bool) error {
	_, err := save(fileSystem, path, document, mergeExisting)
	return err
}

// save is Save that also reports whether an existing file had to be discarded because it was not
// a JSON object.
func save(fileSystem FileSystem, path string, document any, mergeExisting bool) (bool, error) {
	var (
		content   []byte
		discarded bool
		err       error
	)
	if mergeExisting {
		content, discarded, err = mergeWithExisting(fileSystem, path, document)
	} else {
		content, err = json.MarshalIndent(document, "", jsonIndent)
	}
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", errMessageEncodeDocument, path, err)
	}
	if err := WriteDocument(fileSystem, path, content); err != nil {
		return false, fmt.Errorf("%s %s: %w", errMessageWriteDocument, path, err)
	}
	return discarded, nil
}

func mergeWithExisting(fileSystem FileSystem, path string, document any) ([]byte, bool, error) {
	incoming, err := objectFields(document)
	if err != nil {
		return nil, false, err
	}

	discarded := false
	merged := map[string]json.RawMessage{}
	if existing, readErr := fileSystem.ReadFile(path); readErr == nil && len(bytes.TrimSpace(existing)) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil || merged == nil {
			discarded = true
			merged = map[string]json.RawMessage{}
		}
	}
	for key, value := range incoming {
		merged[key] = value
	}
	content, err := json.MarshalIndent(merged, "", jsonIndent)
	return content, discarded, err
}

// Overlay returns a copy of document with every top-level field named in patch replaced by the
// patch value. Field names match case-insensitively. Maps and nested objects are replaced whole,
// so a patch can remove entries, and null resets a field to its zero value. document is left untouched when patch is not a JSON object or
// does not fit the document.
func Overlay[T any](document T, patch []byte) (T, error) {
	var replacements map[string]json.RawMessage
	if err := json.Unmarshal(patch, &replacements); err != nil {
		return document, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if replacements == nil {
		return document, fmt.Errorf("%w: %s", ErrMalformedDocument, errMessagePatchNotObject)
	}

	fields, err := objectFields(document)
	if err != nil {
		return document, err
	}
	for key, value := range replacements {
		fields[matchingKey(fields, key)] = value
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return document, err
	}

	var updated T
	if err := json.Unmarshal(merged, &updated); err != nil {
		return document, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return updated, nil
}

func objectFields(document any) (map[string]json.RawMessage, error) {
	encoded, err := json.Marshal(document)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

func matchingKey(fields map[string]json.RawMessage, key string) string {
	if _, exists := fields[key]; exists {
		return key
	}
	for existing := range fields {
		if strings.EqualFold(existing, key) {
			return existing
		}
	}
	return key
}

// Clone returns a deep copy of document by way of its JSON form.
func Clone[T any](document T) (T, error) {
	encoded, err := json.Marshal(document)
	if err != nil {
		return document, err
	}
	var cloned T
	if err := json.Unmarshal(encoded, &cloned); err != nil {
		return document, err
	}
	return cloned, nil
}

func parentDirectory(path string) string {
	return filepath.Dir(path)
}
