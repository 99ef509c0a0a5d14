package platforms

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/accounts"
	"github.com/acc-switch/accswitch/internal/settings"
)

const (
	settingsFileSuffix        = "Settings.json"
	loginCacheDirectoryName   = "LoginCache"
	logMessageAccountsIgnored = "account cache ignored, using empty lists"
	logFieldPlatform          = "platform"
	errMessageNegativeTray    = "tray account number cannot be negative"
)

// ErrNegativeTrayAccountNumber rejects a negative tray account count.
var ErrNegativeTrayAccountNumber = errors.New(errMessageNegativeTray)

// AccountLists is the serializable view of a platform's account lists.
type AccountLists struct {
	Active  any `json:"active"`
	Ignored any `json:"ignored"`
}

// Switcher is the platform surface used by the HTTP layer and the composition root.
type Switcher interface {
	Name() string
	Load() error
	Settings() any
	MergeSettings(patch []byte) error
	ResetSettings() error
	SaveSettings(mergeExisting bool) error
	SetForgetAccount(enabled bool) error
	SetTrayAccountNumber(count int) error
	Accounts() AccountLists
	ForgetAccount(accountID string) (bool, error)
	RestoreAccount(accountID string) (bool, error)
	ImportAccounts(payload []byte) error
	Exe() string
}

// Config locates a platform's files.
type Config struct {
	UserDataDirectory string
	FileSystem        settings.FileSystem
	Logger            *zap.Logger
}

// fieldAccessors exposes the settings fields every platform shares.
type fieldAccessors[S any] struct {
	forgetAccountEnabled func(document *S) *bool
	trayAccountNumber    func(document *S) *int
	// methods lists the closing and starting methods, when the platform has any.
	methods func(document *S) []*string
}

// validate applies the setter rules to a whole document.
func (fields fieldAccessors[S]) validate(document S) error {
	if *fields.trayAccountNumber(&document) < 0 {
		return ErrNegativeTrayAccountNumber
	}
	if fields.methods == nil {
		return nil
	}
	for _, method := range fields.methods(&document) {
		if strings.TrimSpace(*method) == "" {
			return ErrEmptyMethod
		}
	}
	return nil
}

// Platform pairs a settings document with the platform's account lists.
type Platform[S any, R accounts.Record] struct {
	name          string
	settingsStore *settings.Store[S]
	accountLists  *accounts.Lists[R]
	fields        fieldAccessors[S]
	logger        *zap.Logger
}

func newPlatform[S any, R accounts.Record](name string, configuration Config, newDefaults func() S, fields fieldAccessors[S]) *Platform[S, R] {
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String(logFieldPlatform, name))

	return &Platform[S, R]{
		name: name,
		settingsStore: settings.NewStore(settings.StoreConfig[S]{
			Path:        SettingsPath(configuration.UserDataDirectory, name),
			NewDefaults: newDefaults,
			Validate:    fields.validate,
			FileSystem:  configuration.FileSystem,
			Logger:      logger,
		}),
		accountLists: accounts.NewLists[R](accounts.ListsConfig{
			Directory:  filepath.Join(configuration.UserDataDirectory, loginCacheDirectoryName, name),
			FileSystem: configuration.FileSystem,
		}),
		fields: fields,
		logger: logger,
	}
}

// SettingsPath returns the settings file of the named platform inside the user-data directory.
func SettingsPath(userDataDirectory string, platformName string) string {
	return filepath.Join(userDataDirectory, platformName+settingsFileSuffix)
}

// Name returns the platform name used in file names and routes.
func (platform *Platform[S, R]) Name() string {
	return platform.name
}

// Load reads the settings document and both account lists. Malformed files are logged and
// replaced by defaults; only directory creation failures are returned.
func (platform *Platform[S, R]) Load() error {
	// Settings problems are already logged by the store.
	_ = platform.settingsStore.Load()

	if err := platform.accountLists.Load(); err != nil {
		if errors.Is(err, accounts.ErrMalformedList) {
			platform.logger.Warn(logMessageAccountsIgnored, zap.Error(err))
			return nil
		}
		return err
	}
	return nil
}

// Document returns a copy of the typed settings document.
func (platform *Platform[S, R]) Document() S {
	return platform.settingsStore.Document()
}

// Settings returns a copy of the settings document for serialization.
func (platform *Platform[S, R]) Settings() any {
	return platform.settingsStore.Document()
}

// MergeSettings replaces the top-level fields named in patch and persists the result. Documents
// the setters would refuse are rejected with settings.ErrInvalidDocument.
func (platform *Platform[S, R]) MergeSettings(patch []byte) error {
	return platform.settingsStore.Merge(patch)
}

// ResetSettings restores the platform defaults. Account lists are left alone.
func (platform *Platform[S, R]) ResetSettings() error {
	return platform.settingsStore.Reset()
}

// SaveSettings writes the settings document. mergeExisting keeps keys only found in the file.
func (platform *Platform[S, R]) SaveSettings(mergeExisting bool) error {
	return platform.settingsStore.Save(mergeExisting)
}

// SetForgetAccount sets whether forgetting an account skips the confirmation prompt.
func (platform *Platform[S, R]) SetForgetAccount(enabled bool) error {
	return platform.settingsStore.Update(func(document *S) bool {
		return assign(platform.fields.forgetAccountEnabled(document), enabled)
	})
}

// SetTrayAccountNumber sets how many accounts are offered in the tray menu.
func (platform *Platform[S, R]) SetTrayAccountNumber(count int) error {
	if count < 0 {
		return ErrNegativeTrayAccountNumber
	}
	return platform.settingsStore.Update(func(document *S) bool {
		return assign(platform.fields.trayAccountNumber(document), count)
	})
}

// Accounts returns copies of the active and ignored lists.
func (platform *Platform[S, R]) Accounts() AccountLists {
	return AccountLists{
		Active:  platform.ActiveAccounts(),
		Ignored: platform.IgnoredAccounts(),
	}
}

// ActiveAccounts returns the typed active list.
func (platform *Platform[S, R]) ActiveAccounts() []R {
	return platform.accountLists.Active()
}

// IgnoredAccounts returns the typed ignored list.
func (platform *Platform[S, R]) IgnoredAccounts() []R {
	return platform.accountLists.Ignored()
}

// ForgetAccount moves an account to the ignored list. Unknown ids are a no-op reported as false.
func (platform *Platform[S, R]) ForgetAccount(accountID string) (bool, error) {
	return platform.accountLists.Forget(accountID)
}

// RestoreAccount moves an ignored account back to the active list.
func (platform *Platform[S, R]) RestoreAccount(accountID string) (bool, error) {
	return platform.accountLists.Restore(accountID)
}

// ReplaceAccounts stores the accounts found in the platform's login cache.
func (platform *Platform[S, R]) ReplaceAccounts(active []R) error {
	return platform.accountLists.Replace(active)
}

// ImportAccounts decodes a JSON array of the platform's account records and replaces the active
// list with it.
func (platform *Platform[S, R]) ImportAccounts(payload []byte) error {
	var active []R
	if err := json.Unmarshal(payload, &active); err != nil {
		return fmt.Errorf("%w: %v", accounts.ErrMalformedList, err)
	}
	return platform.ReplaceAccounts(active)
}

func (platform *Platform[S, R]) update(mutate func(document *S) bool) error {
	return platform.settingsStore.Update(mutate)
}

// assign stores value in target and reports whether it differed.
func assign[V comparable](target *V, value V) bool {
	if *target == value {
		return false
	}
	*target = value
	return true
}
