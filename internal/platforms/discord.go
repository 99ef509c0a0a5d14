package platforms

import (
	"os"
	"strings"

	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	DiscordName              = "Discord"
	discordAppDataToken      = "%AppData%"
	discordDefaultFolderPath = discordAppDataToken + `\Discord`
	discordExecutableName    = "Update.exe"
)

// DiscordSettings is the persisted form of DiscordSettings.json.
type DiscordSettings struct {
	FolderPath           string `json:"FolderPath"`
	WindowSize           Size   `json:"WindowSize"`
	Admin                bool   `json:"Discord_Admin"`
	TrayAccNumber        int    `json:"Discord_TrayAccNumber"`
	ForgetAccountEnabled bool   `json:"ForgetAccountEnabled"`
	CollectInfo          bool   `json:"CollectInfo"`
	ClosingMethod        string `json:"ClosingMethod"`
	StartingMethod       string `json:"StartingMethod"`
}

// DefaultDiscordSettings returns the settings used when nothing is stored.
func DefaultDiscordSettings() DiscordSettings {
	return DiscordSettings{
		FolderPath:     discordDefaultFolderPath,
		WindowSize:     DefaultWindowSize(),
		TrayAccNumber:  defaultTrayAccountNumber,
		CollectInfo:    true,
		ClosingMethod:  closingMethodCombined,
		StartingMethod: startingMethodDefault,
	}
}

// Discord is the Discord switcher.
type Discord struct {
	*Platform[DiscordSettings, accounts.Account]
}

// NewDiscord constructs the Discord platform.
func NewDiscord(configuration Config) *Discord {
	return &Discord{newPlatform[DiscordSettings, accounts.Account](DiscordName, configuration, DefaultDiscordSettings, fieldAccessors[DiscordSettings]{
		forgetAccountEnabled: func(document *DiscordSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *DiscordSettings) *int { return &document.TrayAccNumber },
		methods:              func(document *DiscordSettings) []*string { return []*string{&document.ClosingMethod, &document.StartingMethod} },
	})}
}

// FolderPath returns the install folder with a leading %AppData% expanded to the roaming
// configuration directory.
func (discord *Discord) FolderPath() string {
	folderPath := discord.Document().FolderPath
	if !strings.HasPrefix(folderPath, discordAppDataToken) {
		return folderPath
	}
	appData, err := os.UserConfigDir()
	if err != nil {
		return folderPath
	}
	remainder := strings.TrimLeft(strings.TrimPrefix(folderPath, discordAppDataToken), `\/`)
	if remainder == "" {
		return appData
	}
	return windowsPath(appData, strings.ReplaceAll(remainder, "/", `\`))
}

// Exe returns the path of Discord's updater, which launches the client.
func (discord *Discord) Exe() string {
	return windowsPath(discord.FolderPath(), discordExecutableName)
}

// SetClosingMethod sets how Discord is closed before switching.
func (discord *Discord) SetClosingMethod(method string) error {
	return setMethod(discord.Platform, method, func(document *DiscordSettings) *string { return &document.ClosingMethod })
}

// SetStartingMethod sets how Discord is started after switching.
func (discord *Discord) SetStartingMethod(method string) error {
	return setMethod(discord.Platform, method, func(document *DiscordSettings) *string { return &document.StartingMethod })
}

// SetCollectInfo toggles collecting account names and avatars from the Discord client.
func (discord *Discord) SetCollectInfo(enabled bool) error {
	return discord.update(func(document *DiscordSettings) bool {
		return assign(&document.CollectInfo, enabled)
	})
}
