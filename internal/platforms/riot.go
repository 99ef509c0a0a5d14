package platforms

import (
	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	RiotName              = "Riot"
	riotDefaultFolderPath = `C:\Riot Games\Riot Client`
	riotExecutableName    = "RiotClientServices.exe"
)

// RiotSettings is the persisted form of RiotSettings.json.
type RiotSettings struct {
	FolderPath           string `json:"FolderPath"`
	WindowSize           Size   `json:"WindowSize"`
	Admin                bool   `json:"Riot_Admin"`
	TrayAccNumber        int    `json:"Riot_TrayAccNumber"`
	ForgetAccountEnabled bool   `json:"ForgetAccountEnabled"`
	ImageExpiryTime      int    `json:"ImageExpiryTime"`
}

// DefaultRiotSettings returns the settings used when nothing is stored.
func DefaultRiotSettings() RiotSettings {
	return RiotSettings{
		FolderPath:      riotDefaultFolderPath,
		WindowSize:      DefaultWindowSize(),
		TrayAccNumber:   defaultTrayAccountNumber,
		ImageExpiryTime: defaultImageExpiryDays,
	}
}

// Riot is the Riot Games switcher.
type Riot struct {
	*Platform[RiotSettings, accounts.Account]
}

// NewRiot constructs the Riot Games platform.
func NewRiot(configuration Config) *Riot {
	return &Riot{newPlatform[RiotSettings, accounts.Account](RiotName, configuration, DefaultRiotSettings, fieldAccessors[RiotSettings]{
		forgetAccountEnabled: func(document *RiotSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *RiotSettings) *int { return &document.TrayAccNumber },
	})}
}

// Exe returns the path of RiotClientServices.exe.
func (riot *Riot) Exe() string {
	return windowsPath(riot.Document().FolderPath, riotExecutableName)
}
