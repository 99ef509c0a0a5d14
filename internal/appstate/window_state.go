package appstate

import (
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/platforms"
	"github.com/acc-switch/accswitch/internal/settings"
)

const (
	windowSettingsFileName = "WindowSettings.json"
	defaultLanguage        = "en-US"
	defaultActiveBrowser   = "WebView"
	errMessageEmptyLang    = "language cannot be empty"
	errMessageWindowSize   = "window size must be positive"
)

var (
	// ErrEmptyLanguage rejects a blank interface language.
	ErrEmptyLanguage = errors.New(errMessageEmptyLang)
	// ErrInvalidWindowSize rejects a window without area.
	ErrInvalidWindowSize = errors.New(errMessageWindowSize)
)

// WindowSettings is the persisted form of WindowSettings.json.
type WindowSettings struct {
	Language                     string         `json:"Language"`
	Rtl                          bool           `json:"Rtl"`
	StreamerModeEnabled          bool           `json:"StreamerModeEnabled"`
	WindowSize                   platforms.Size `json:"WindowSize"`
	AllowTransparency            bool           `json:"AllowTransparency"`
	Version                      string         `json:"Version"`
	DiscordRpcEnabled            bool           `json:"DiscordRpcEnabled"`
	DiscordRpcShareTotalSwitches bool           `json:"DiscordRpcShareTotalSwitches"`
	MinimizeOnSwitch             bool           `json:"MinimizeOnSwitch"`
	TrayMinimizeNotExit          bool           `json:"TrayMinimizeNotExit"`
	ActiveBrowser                string         `json:"ActiveBrowser"`
	LastPlatform                 string         `json:"LastPlatform"`
}

// DefaultWindowSettings returns the window settings used when nothing is stored.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		Language:                     defaultLanguage,
		StreamerModeEnabled:          true,
		WindowSize:                   platforms.DefaultWindowSize(),
		AllowTransparency:            true,
		DiscordRpcEnabled:            true,
		DiscordRpcShareTotalSwitches: true,
		ActiveBrowser:                defaultActiveBrowser,
	}
}

// WindowSettingsPath returns WindowSettings.json inside the user-data directory.
func WindowSettingsPath(userDataDirectory string) string {
	return filepath.Join(userDataDirectory, windowSettingsFileName)
}

// WindowState exposes the application-wide window settings.
type WindowState struct {
	store  *settings.Store[WindowSettings]
	notify func(source string)
}

func newWindowState(userDataDirectory string, fileSystem settings.FileSystem, logger *zap.Logger, notify func(source string)) *WindowState {
	return &WindowState{
		store: settings.NewStore(settings.StoreConfig[WindowSettings]{
			Path:        WindowSettingsPath(userDataDirectory),
			NewDefaults: DefaultWindowSettings,
			FileSystem:  fileSystem,
			Logger:      logger,
		}),
		notify: notify,
	}
}

// Settings returns a copy of the window settings.
func (windowState *WindowState) Settings() WindowSettings {
	return windowState.store.Document()
}

// SetLanguage sets the interface language. Right-to-left layout follows the language.
func (windowState *WindowState) SetLanguage(language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return ErrEmptyLanguage
	}
	return windowState.update(func(document *WindowSettings) bool {
		if document.Language == language {
			return false
		}
		document.Language = language
		document.Rtl = isRightToLeft(language)
		return true
	})
}

// SetStreamerMode toggles hiding of account details.
func (windowState *WindowState) SetStreamerMode(enabled bool) error {
	return windowState.update(func(document *WindowSettings) bool {
		return assignValue(&document.StreamerModeEnabled, enabled)
	})
}

// SetWindowSize stores the main window size.
func (windowState *WindowState) SetWindowSize(size platforms.Size) error {
	if size.X <= 0 || size.Y <= 0 {
		return ErrInvalidWindowSize
	}
	return windowState.update(func(document *WindowSettings) bool {
		return assignValue(&document.WindowSize, size)
	})
}

// SetLastPlatform remembers the platform page shown last.
func (windowState *WindowState) SetLastPlatform(platformName string) error {
	return windowState.update(func(document *WindowSettings) bool {
		return assignValue(&document.LastPlatform, platformName)
	})
}

// SetMinimizeOnSwitch toggles minimizing the window after a switch.
func (windowState *WindowState) SetMinimizeOnSwitch(enabled bool) error {
	return windowState.update(func(document *WindowSettings) bool {
		return assignValue(&document.MinimizeOnSwitch, enabled)
	})
}

// SetDiscordRpc toggles Discord Rich Presence and whether the switch count is shared.
func (windowState *WindowState) SetDiscordRpc(enabled bool, shareTotalSwitches bool) error {
	return windowState.update(func(document *WindowSettings) bool {
		enabledChanged := assignValue(&document.DiscordRpcEnabled, enabled)
		shareChanged := assignValue(&document.DiscordRpcShareTotalSwitches, shareTotalSwitches)
		return enabledChanged || shareChanged
	})
}

func (windowState *WindowState) update(mutate func(document *WindowSettings) bool) error {
	changed := false
	err := windowState.store.Update(func(document *WindowSettings) bool {
		changed = mutate(document)
		return changed
	})
	if err != nil {
		return err
	}
	if changed {
		windowState.notify(SourceWindow)
	}
	return nil
}

func isRightToLeft(language string) bool {
	primary := strings.ToLower(strings.SplitN(language, "-", 2)[0])
	switch primary {
	case "ar", "fa", "he", "ur":
		return true
	default:
		return false
	}
}

func assignValue[V comparable](target *V, value V) bool {
	if *target == value {
		return false
	}
	*target = value
	return true
}
