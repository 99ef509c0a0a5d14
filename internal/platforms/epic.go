package platforms

import (
	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	EpicName              = "Epic"
	epicDefaultFolderPath = `C:\Program Files (x86)\Epic Games\Launcher\Portal\Binaries\Win32`
	epicExecutableName    = "EpicGamesLauncher.exe"
)

// EpicSettings is the persisted form of EpicSettings.json.
type EpicSettings struct {
	FolderPath           string            `json:"FolderPath"`
	WindowSize           Size              `json:"WindowSize"`
	Admin                bool              `json:"Epic_Admin"`
	TrayAccNumber        int               `json:"Epic_TrayAccNumber"`
	ForgetAccountEnabled bool              `json:"ForgetAccountEnabled"`
	CustomAccountNames   map[string]string `json:"CustomAccountNames"`
}

// DefaultEpicSettings returns the settings used when nothing is stored.
func DefaultEpicSettings() EpicSettings {
	return EpicSettings{
		FolderPath:         epicDefaultFolderPath,
		WindowSize:         DefaultWindowSize(),
		TrayAccNumber:      defaultTrayAccountNumber,
		CustomAccountNames: map[string]string{},
	}
}

// Epic is the Epic Games switcher.
type Epic struct {
	*Platform[EpicSettings, accounts.Account]
}

// NewEpic constructs the Epic Games platform.
func NewEpic(configuration Config) *Epic {
	return &Epic{newPlatform[EpicSettings, accounts.Account](EpicName, configuration, DefaultEpicSettings, fieldAccessors[EpicSettings]{
		forgetAccountEnabled: func(document *EpicSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *EpicSettings) *int { return &document.TrayAccNumber },
	})}
}

// Exe returns the path of EpicGamesLauncher.exe.
func (epic *Epic) Exe() string {
	return windowsPath(epic.Document().FolderPath, epicExecutableName)
}

// SetCustomAccountName labels an account. An empty name removes the label.
func (epic *Epic) SetCustomAccountName(accountID string, name string) error {
	return epic.update(func(document *EpicSettings) bool {
		return setCustomName(&document.CustomAccountNames, accountID, name)
	})
}
