package platforms

import (
	"github.com/acc-switch/accswitch/internal/accounts"
)

const (
	OriginName              = "Origin"
	originDefaultFolderPath = `C:\Program Files (x86)\Origin`
	originExecutableName    = "Origin.exe"
)

// OriginSettings is the persisted form of OriginSettings.json.
type OriginSettings struct {
	FolderPath           string `json:"FolderPath"`
	WindowSize           Size   `json:"WindowSize"`
	Admin                bool   `json:"Origin_Admin"`
	TrayAccNumber        int    `json:"Origin_TrayAccNumber"`
	ForgetAccountEnabled bool   `json:"ForgetAccountEnabled"`
	ClosingMethod        string `json:"ClosingMethod"`
}

// DefaultOriginSettings returns the settings used when nothing is stored.
func DefaultOriginSettings() OriginSettings {
	return OriginSettings{
		FolderPath:    originDefaultFolderPath,
		WindowSize:    DefaultWindowSize(),
		TrayAccNumber: defaultTrayAccountNumber,
		ClosingMethod: closingMethodTaskKill,
	}
}

// Origin is the Origin switcher.
type Origin struct {
	*Platform[OriginSettings, accounts.Account]
}

// NewOrigin constructs the Origin platform.
func NewOrigin(configuration Config) *Origin {
	return &Origin{newPlatform[OriginSettings, accounts.Account](OriginName, configuration, DefaultOriginSettings, fieldAccessors[OriginSettings]{
		forgetAccountEnabled: func(document *OriginSettings) *bool { return &document.ForgetAccountEnabled },
		trayAccountNumber:    func(document *OriginSettings) *int { return &document.TrayAccNumber },
		methods:              func(document *OriginSettings) []*string { return []*string{&document.ClosingMethod} },
	})}
}

// Exe returns the path of Origin.exe.
func (origin *Origin) Exe() string {
	return windowsPath(origin.Document().FolderPath, originExecutableName)
}

// SetClosingMethod sets how Origin is closed before switching.
func (origin *Origin) SetClosingMethod(method string) error {
	return setMethod(origin.Platform, method, func(document *OriginSettings) *string { return &document.ClosingMethod })
}
