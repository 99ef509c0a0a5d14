package platforms

import (
	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	BattleNetName              = "BattleNet"
	battleNetDefaultFolderPath = `C:\Program Files (x86)\Battle.net`
	battleNetExecutableName    = "Battle.net.exe"
)

// BattleNetSettings is the persisted form of BattleNetSettings.json.
type BattleNetSettings struct {
	FolderPath           string `json:"FolderPath"`
	WindowSize           Size   `json:"WindowSize"`
	Admin                bool   `json:"BattleNet_Admin"`
	TrayAccNumber        int    `json:"BattleNet_TrayAccNumber"`
	ForgetAccountEnabled bool   `json:"ForgetAccountEnabled"`
	OverwatchMode        bool   `json:"OverwatchMode"`
}

// DefaultBattleNetSettings returns the settings used when nothing is stored.
func DefaultBattleNetSettings() BattleNetSettings {
	return BattleNetSettings{
		FolderPath:    battleNetDefaultFolderPath,
		WindowSize:    DefaultWindowSize(),
		TrayAccNumber: defaultTrayAccountNumber,
		OverwatchMode: true,
	}
}

// BattleNetUser is a Battle.net login remembered by the switcher.
type BattleNetUser struct {
	Email          string `json:"Email"`
	BattleTag      string `json:"BTag,omitempty"`
	Username       string `json:"Username,omitempty"`
	ImgURL         string `json:"ImgUrl,omitempty"`
	LastRankUpdate string `json:"LastTimeChecked,omitempty"`
}

// RecordID identifies Battle.net accounts by email.
func (user BattleNetUser) RecordID() string {
	return user.Email
}

// BattleNet is the Battle.net switcher.
type BattleNet struct {
	*Platform[BattleNetSettings, BattleNetUser]
}

// NewBattleNet constructs the Battle.net platform.
func NewBattleNet(configuration Config) *BattleNet {
	return &BattleNet{newPlatform[BattleNetSettings, BattleNetUser](BattleNetName, configuration, DefaultBattleNetSettings, fieldAccessors[BattleNetSettings]{
		forgetAccountEnabled: func(document *BattleNetSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *BattleNetSettings) *int { return &document.TrayAccNumber },
	})}
}

// Exe returns the path of Battle.net.exe.
func (battleNet *BattleNet) Exe() string {
	return windowsPath(battleNet.Document().FolderPath, battleNetExecutableName)
}

// SetOverwatchMode toggles fetching Overwatch ranks for stored accounts.
func (battleNet *BattleNet) SetOverwatchMode(enabled bool) error {
	return battleNet.update(func(document *BattleNetSettings) bool {
		return assign(&document.OverwatchMode, enabled)
	})
}

var _ accounts.Record = BattleNetUser{}
