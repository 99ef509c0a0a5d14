package accounts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/acc-switch/accswitch/internal/settings"
)

const (
	storedAccountsFileName  = "StoredAccounts.json"
	ignoredAccountsFileName = "IgnoredAccounts.json"
	errMessageMalformedList = "malformed account list"
	errMessageCreateCache   = "create account cache directory"
	errMessageReadList      = "read account list"
	errMessageEncodeList    = "encode account list"
	errMessageWriteList     = "write account list"
)

// ErrMalformedList reports an account list file that exists but could not be decoded.
var ErrMalformedList = errors.New(errMessageMalformedList)

// Record is an account entry that can be identified across the active and ignored lists.
type Record interface {
	RecordID() string
}

// ListsConfig configures Lists.
type ListsConfig struct {
	// Directory holds StoredAccounts.json and IgnoredAccounts.json.
	Directory  string
	FileSystem settings.FileSystem
}

// Lists holds the active and ignored accounts of one platform. A record id is present in at
// most one of the two lists.
type Lists[R Record] struct {
	mutex       sync.Mutex
	directory   string
	activePath  string
	ignoredPath string
	fileSystem  settings.FileSystem
	active      []R
	ignored     []R
}

// NewLists constructs empty Lists. Call Load to read the files.
func NewLists[R Record](configuration ListsConfig) *Lists[R] {
	fileSystem := configuration.FileSystem
	if fileSystem == nil {
		fileSystem = settings.OSFileSystem{}
	}
	return &Lists[R]{
		directory:   configuration.Directory,
		activePath:  filepath.Join(configuration.Directory, storedAccountsFileName),
		ignoredPath: filepath.Join(configuration.Directory, ignoredAccountsFileName),
		fileSystem:  fileSystem,
		active:      []R{},
		ignored:     []R{},
	}
}

// Load reads both lists. Missing files yield empty lists. A malformed file yields an empty list
// and an error wrapping ErrMalformedList; the other list is still loaded.
func (lists *Lists[R]) Load() error {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	if err := settings.EnsureDirectory(lists.fileSystem, lists.directory); err != nil {
		return fmt.Errorf("%s %s: %w", errMessageCreateCache, lists.directory, err)
	}

	active, activeErr := readList[R](lists.fileSystem, lists.activePath)
	ignored, ignoredErr := readList[R](lists.fileSystem, lists.ignoredPath)
	lists.active = active
	lists.ignored = ignored
	return errors.Join(activeErr, ignoredErr)
}

// Active returns a copy of the active list.
func (lists *Lists[R]) Active() []R {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	return append([]R{}, lists.active...)
}

// Ignored returns a copy of the ignored list.
func (lists *Lists[R]) Ignored() []R {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	return append([]R{}, lists.ignored...)
}

// Forget moves the record with the given id from the active list to the ignored list and saves
// both. It reports false, without writing, when no active record has that id. When the save
// fails the lists are left as they were.
func (lists *Lists[R]) Forget(recordID string) (bool, error) {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	index := indexOf(lists.active, recordID)
	if index < 0 {
		return false, nil
	}
	active, ignored := moveRecord(lists.active, lists.ignored, index)
	if err := lists.commitLocked(active, ignored); err != nil {
		return false, err
	}
	return true, nil
}

// Restore moves the record with the given id from the ignored list back to the active list.
// It reports false, without writing, when no ignored record has that id.
func (lists *Lists[R]) Restore(recordID string) (bool, error) {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	index := indexOf(lists.ignored, recordID)
	if index < 0 {
		return false, nil
	}
	ignored, active := moveRecord(lists.ignored, lists.active, index)
	if err := lists.commitLocked(active, ignored); err != nil {
		return false, err
	}
	return true, nil
}

// Replace sets the active list, typically after scanning a platform's login cache. Records whose
// id is ignored are dropped, as are repeated ids.
func (lists *Lists[R]) Replace(active []R) error {
	lists.mutex.Lock()
	defer lists.mutex.Unlock()

	filtered := make([]R, 0, len(active))
	for _, record := range active {
		recordID := record.RecordID()
		if indexOf(lists.ignored, recordID) >= 0 || indexOf(filtered, recordID) >= 0 {
			continue
		}
		filtered = append(filtered, record)
	}
	return lists.commitLocked(filtered, lists.ignored)
}

// commitLocked writes both lists and adopts them only once both writes succeeded.
func (lists *Lists[R]) commitLocked(active []R, ignored []R) error {
	if err := writeLists(lists.fileSystem, lists.activePath, active, lists.ignoredPath, ignored); err != nil {
		return err
	}
	lists.active = active
	lists.ignored = ignored
	return nil
}

// moveRecord returns fresh copies of from without the record at index and of to with that record
// appended, unless to already holds its id.
func moveRecord[R Record](from []R, to []R, index int) ([]R, []R) {
	record := from[index]
	remaining := make([]R, 0, len(from)-1)
	remaining = append(remaining, from[:index]...)
	remaining = append(remaining, from[index+1:]...)

	extended := append(make([]R, 0, len(to)+1), to...)
	if indexOf(extended, record.RecordID()) < 0 {
		extended = append(extended, record)
	}
	return remaining, extended
}

func writeLists[R Record](fileSystem settings.FileSystem, activePath string, active []R, ignoredPath string, ignored []R) error {
	if err := writeList(fileSystem, activePath, active); err != nil {
		return err
	}
	return writeList(fileSystem, ignoredPath, ignored)
}

func indexOf[R Record](records []R, recordID string) int {
	for index, record := range records {
		if record.RecordID() == recordID {
			return index
		}
	}
	return -1
}

func readList[R Record](fileSystem settings.FileSystem, path string) ([]R, error) {
	content, err := fileSystem.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []R{}, nil
		}
		return []R{}, fmt.Errorf("%s %s: %w", errMessageReadList, path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return []R{}, nil
	}

	var records []R
	if err := json.Unmarshal(content, &records); err != nil {
		return []R{}, fmt.Errorf("%w %s: %v", ErrMalformedList, path, err)
	}
	if records == nil {
		records = []R{}
	}
	return records, nil
}

func writeList[R Record](fileSystem settings.FileSystem, path string, records []R) error {
	if records == nil {
		records = []R{}
	}
	content, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s %s: %w", errMessageEncodeList, path, err)
	}
	if err := settings.WriteDocument(fileSystem, path, content); err != nil {
		return fmt.Errorf("%s %s: %w", errMessageWriteList, path, err)
	}
	return nil
}
