package platforms

import (
	"errors"
	"strings"

	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	SteamName                = "Steam"
	steamDefaultFolderPath   = `C:\Program Files (x86)\Steam\`
	steamExecutableName      = "Steam.exe"
	steamConfigDirectoryName = "config"
	steamLoginUsersFileName  = "loginusers.vdf"
	errMessageEmptyMethod    = "method cannot be empty"
)

// ErrEmptyMethod rejects blank closing and starting methods.
var ErrEmptyMethod = errors.New(errMessageEmptyMethod)

// SteamSettings is the persisted form of SteamSettings.json.
type SteamSettings struct {
	ForgetAccountEnabled bool              `json:"ForgetAccountEnabled"`
	FolderPath           string            `json:"FolderPath"`
	WindowSize           Size              `json:"WindowSize"`
	Admin                bool              `json:"Admin"`
	ShowSteamID          bool              `json:"ShowSteamId"`
	ShowVac              bool              `json:"ShowVac"`
	ShowLimited          bool              `json:"ShowLimited"`
	ShowLastLogin        bool              `json:"ShowLastLogin"`
	ShowAccUsername      bool              `json:"ShowAccUsername"`
	TrayAccountName      bool              `json:"TrayAccountName"`
	ImageExpiryTime      int               `json:"ImageExpiryTime"`
	TrayAccNumber        int               `json:"TrayAccNumber"`
	OverrideState        int               `json:"OverrideState"`
	SteamWebAPIKey       string            `json:"SteamWebApiKey"`
	Shortcuts            map[int]string    `json:"Shortcuts"`
	ClosingMethod        string            `json:"ClosingMethod"`
	StartingMethod       string            `json:"StartingMethod"`
	AutoStart            bool              `json:"AutoStart"`
	ShowShortNotes       bool              `json:"ShowShortNotes"`
	StartSilent          bool              `json:"StartSilent"`
	CustomAccountNames   map[string]string `json:"CustomAccountNames"`
}

// DefaultSteamSettings returns the settings used when nothing is stored.
func DefaultSteamSettings() SteamSettings {
	return SteamSettings{
		FolderPath:         steamDefaultFolderPath,
		WindowSize:         DefaultWindowSize(),
		ShowVac:            true,
		ShowLimited:        true,
		ShowLastLogin:      true,
		ShowAccUsername:    true,
		ImageExpiryTime:    defaultImageExpiryDays,
		TrayAccNumber:      defaultTrayAccountNumber,
		OverrideState:      defaultOverrideState,
		Shortcuts:          map[int]string{},
		ClosingMethod:      closingMethodTaskKill,
		StartingMethod:     startingMethodDefault,
		AutoStart:          true,
		ShowShortNotes:     true,
		CustomAccountNames: map[string]string{},
	}
}

// SteamUser is a Steam login remembered by the switcher.
type SteamUser struct {
	SteamID     string `json:"SteamId"`
	AccName     string `json:"AccName"`
	PersonaName string `json:"Name,omitempty"`
	LastLogin   string `json:"LastLogin,omitempty"`
	ImageURL    string `json:"ImageUrl,omitempty"`
	Vac         bool   `json:"Vac,omitempty"`
	Limited     bool   `json:"Limited,omitempty"`
}

// RecordID identifies Steam accounts by SteamID64.
func (user SteamUser) RecordID() string {
	return user.SteamID
}

// Steam is the Steam switcher.
type Steam struct {
	*Platform[SteamSettings, SteamUser]
}

// NewSteam constructs the Steam platform.
func NewSteam(configuration Config) *Steam {
	return &Steam{newPlatform[SteamSettings, SteamUser](SteamName, configuration, DefaultSteamSettings, fieldAccessors[SteamSettings]{
		forgetAccountEnabled: func(document *SteamSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *SteamSettings) *int { return &document.TrayAccNumber },
		methods:              func(document *SteamSettings) []*string { return []*string{&document.ClosingMethod, &document.StartingMethod} },
	})}
}

// Exe returns the path of Steam.exe.
func (steam *Steam) Exe() string {
	return windowsPath(steam.Document().FolderPath, steamExecutableName)
}

// LoginUsersVdf returns the path of Steam's loginusers.vdf.
func (steam *Steam) LoginUsersVdf() string {
	return windowsPath(steam.Document().FolderPath, steamConfigDirectoryName, steamLoginUsersFileName)
}

// SetClosingMethod sets how Steam is closed before switching.
func (steam *Steam) SetClosingMethod(method string) error {
	return setMethod(steam.Platform, method, func(document *SteamSettings) *string { return &document.ClosingMethod })
}

// SetStartingMethod sets how Steam is started after switching.
func (steam *Steam) SetStartingMethod(method string) error {
	return setMethod(steam.Platform, method, func(document *SteamSettings) *string { return &document.StartingMethod })
}

// SaveShortcutOrder stores the order of the game shortcuts shown on the Steam page.
func (steam *Steam) SaveShortcutOrder(order map[int]string) error {
	return steam.update(func(document *SteamSettings) bool {
		if equalMaps(document.Shortcuts, order) {
			return false
		}
		document.Shortcuts = copyMap(order)
		return true
	})
}

// SetCustomAccountName labels an account. An empty name removes the label.
func (steam *Steam) SetCustomAccountName(steamID string, name string) error {
	return steam.update(func(document *SteamSettings) bool {
		return setCustomName(&document.CustomAccountNames, steamID, name)
	})
}

func setMethod[S any, R accounts.Record](platform *Platform[S, R], method string, field func(document *S) *string) error {
	trimmed := strings.TrimSpace(method)
	if trimmed == "" {
		return ErrEmptyMethod
	}
	return platform.update(func(document *S) bool {
		return assign(field(document), trimmed)
	})
}

func setCustomName(names *map[string]string, accountID string, name string) bool {
	if *names == nil {
		*names = map[string]string{}
	}
	current, exists := (*names)[accountID]
	if name == "" {
		if !exists {
			return false
		}
		delete(*names, accountID)
		return true
	}
	if exists && current == name {
		return false
	}
	(*names)[accountID] = name
	return true
}

func equalMaps[K comparable, V comparable](left map[K]V, right map[K]V) bool {
	if len(left) != len(right) {
		return false
	}
	for key, value := range left {
		if other, exists := right[key]; !exists || other != value {
			return false
		}
	}
	return true
}

func copyMap[K comparable, V any](source map[K]V) map[K]V {
	copied := make(map[K]V, len(source))
	for key, value := range source {
		copied[key] = value
	}
	return copied
}
