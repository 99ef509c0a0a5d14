package platforms

import (
	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	UbisoftName              = "Ubisoft"
	ubisoftDefaultFolderPath = `C:\Program Files (x86)\Ubisoft\Ubisoft Game Launcher`
	ubisoftExecutableName    = "upc.exe"
)

// UbisoftSettings is the persisted form of UbisoftSettings.json.
type UbisoftSettings struct {
	FolderPath           string `json:"FolderPath"`
	WindowSize           Size   `json:"WindowSize"`
	Admin                bool   `json:"Ubisoft_Admin"`
	TrayAccNumber        int    `json:"Ubisoft_TrayAccNumber"`
	ForgetAccountEnabled bool   `json:"ForgetAccountEnabled"`
	OverrideState        int    `json:"OverrideState"`
}

// DefaultUbisoftSettings returns the settings used when nothing is stored.
func DefaultUbisoftSettings() UbisoftSettings {
	return UbisoftSettings{
		FolderPath:    ubisoftDefaultFolderPath,
		WindowSize:    DefaultWindowSize(),
		TrayAccNumber: defaultTrayAccountNumber,
		OverrideState: defaultOverrideState,
	}
}

// Ubisoft is the Ubisoft Connect switcher.
type Ubisoft struct {
	*Platform[UbisoftSettings, accounts.Account]
}

// NewUbisoft constructs the Ubisoft Connect platform.
func NewUbisoft(configuration Config) *Ubisoft {
	return &Ubisoft{newPlatform[UbisoftSettings, accounts.Account](UbisoftName, configuration, DefaultUbisoftSettings, fieldAccessors[UbisoftSettings]{
		forgetAccountEnabled: func(document *UbisoftSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *UbisoftSettings) *int { return &document.TrayAccNumber },
	})}
}

// Exe returns the path of upc.exe.
func (ubisoft *Ubisoft) Exe() string {
	return windowsPath(ubisoft.Document().FolderPath, ubisoftExecutableName)
}

// SetOverrideState sets the online state forced after switching; -1 keeps the account's own.
func (ubisoft *Ubisoft) SetOverrideState(state int) error {
	return ubisoft.update(func(document *UbisoftSettings) bool {
		return assign(&document.OverrideState, state)
	})
}
