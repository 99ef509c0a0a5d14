package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/appstate"
	"github.com/acc-switch/accswitch/internal/platforms"
)

const (
	healthRoutePath         = "/healthz"
	platformsRoutePath      = "/api/platforms"
	platformRouteGroupPath  = "/api/platforms/:" + platformParameterName
	settingsRoutePath       = "/settings"
	settingsResetRoutePath  = "/settings/reset"
	forgetEnabledRoutePath  = "/settings/forget-enabled"
	trayAccountsRoutePath   = "/settings/tray-accounts"
	closingMethodRoutePath  = "/settings/closing-method"
	startingMethodRoutePath = "/settings/starting-method"
	shortcutsRoutePath      = "/settings/shortcuts"
	overwatchModeRoutePath  = "/settings/overwatch-mode"
	collectInfoRoutePath    = "/settings/collect-info"
	overrideStateRoutePath  = "/settings/override-state"
	clientPathsRoutePath    = "/paths"
	accountsRoutePath       = "/accounts"
	forgetAccountRoutePath  = "/accounts/:" + accountParameterName + "/forget"
	restoreAccountRoutePath = "/accounts/:" + accountParameterName + "/restore"
	accountNameRoutePath    = "/accounts/:" + accountParameterName + "/name"
	windowRoutePath         = "/api/window"
	languageRoutePath       = "/language"
	streamerModeRoutePath   = "/streamer-mode"
	windowSizeRoutePath     = "/size"
	minimizeRoutePath       = "/minimize-on-switch"
	discordRpcRoutePath     = "/discord-rpc"
	stateRoutePath          = "/api/state"
	eventsRoutePath         = "/api/events"
	navigationRoutePath     = "/api/navigation"
	navigationBackRoutePath = "/api/navigation/back"
	toastRoutePath          = "/api/toasts/:" + toastParameterName
	apiRoutePrefix          = "/api/"
	platformParameterName   = "platform"
	accountParameterName    = "id"
	toastParameterName      = "id"
	switcherContextKey      = "switcher"
	healthStatusKey         = "status"
	healthStatusOK          = "ok"
	errorResponseKey        = "error"
	ginModeRelease          = "release"
	errMessageNoPlatforms   = "router requires a platform directory"
	errMessageNoState       = "router requires application state"
)

var (
	// ErrMissingPlatforms is returned by NewRouter without a platform directory.
	ErrMissingPlatforms = errors.New(errMessageNoPlatforms)
	// ErrMissingState is returned by NewRouter without application state.
	ErrMissingState = errors.New(errMessageNoState)
)

// PlatformDirectory resolves platform names to switchers.
type PlatformDirectory interface {
	Names() []string
	Lookup(name string) (platforms.Switcher, bool)
}

// RouterConfig configures the HTTP routing for the account switcher.
type RouterConfig struct {
	Platforms PlatformDirectory
	State     *appstate.AppState
	// StaticDirectory is served for every path no API route matches. Empty disables it.
	StaticDirectory string
	Logger          *zap.Logger
}

// NewRouter constructs a Gin engine serving the JSON API, the event stream and the web root.
func NewRouter(configuration RouterConfig) (*gin.Engine, error) {
	if configuration.Platforms == nil {
		return nil, ErrMissingPlatforms
	}
	if configuration.State == nil {
		return nil, ErrMissingState
	}
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(ginModeRelease)
	engine := gin.New()
	engine.Use(gin.CustomRecovery(recoveryHandler(logger)), requestLogger(logger))

	platformRoutes := platformHandler{
		platforms: configuration.Platforms,
		state:     configuration.State,
		logger:    logger,
	}
	stateRoutes := stateHandler{
		platforms: configuration.Platforms,
		state:     configuration.State,
		logger:    logger,
	}

	engine.GET(healthRoutePath, healthStatus)
	engine.GET(platformsRoutePath, platformRoutes.listPlatforms)

	platformGroup := engine.Group(platformRouteGroupPath, platformRoutes.resolveSwitcher)
	platformGroup.GET(settingsRoutePath, platformRoutes.getSettings)
	platformGroup.PATCH(settingsRoutePath, platformRoutes.mergeSettings)
	platformGroup.POST(settingsResetRoutePath, platformRoutes.resetSettings)
	platformGroup.PUT(forgetEnabledRoutePath, platformRoutes.setForgetEnabled)
	platformGroup.PUT(trayAccountsRoutePath, platformRoutes.setTrayAccounts)
	platformGroup.PUT(closingMethodRoutePath, platformRoutes.setClosingMethod)
	platformGroup.PUT(startingMethodRoutePath, platformRoutes.setStartingMethod)
	platformGroup.PUT(shortcutsRoutePath, platformRoutes.saveShortcutOrder)
	platformGroup.PUT(overwatchModeRoutePath, platformRoutes.setOverwatchMode)
	platformGroup.PUT(collectInfoRoutePath, platformRoutes.setCollectInfo)
	platformGroup.PUT(overrideStateRoutePath, platformRoutes.setOverrideState)
	platformGroup.GET(clientPathsRoutePath, platformRoutes.clientPaths)
	platformGroup.GET(accountsRoutePath, platformRoutes.listAccounts)
	platformGroup.PUT(accountsRoutePath, platformRoutes.importAccounts)
	platformGroup.POST(forgetAccountRoutePath, platformRoutes.forgetAccount)
	platformGroup.POST(restoreAccountRoutePath, platformRoutes.restoreAccount)
	platformGroup.PUT(accountNameRoutePath, platformRoutes.setAccountName)

	windowGroup := engine.Group(windowRoutePath)
	windowGroup.GET("", stateRoutes.windowSettings)
	windowGroup.PUT(languageRoutePath, stateRoutes.setLanguage)
	windowGroup.PUT(streamerModeRoutePath, stateRoutes.setStreamerMode)
	windowGroup.PUT(windowSizeRoutePath, stateRoutes.setWindowSize)
	windowGroup.PUT(minimizeRoutePath, stateRoutes.setMinimizeOnSwitch)
	windowGroup.PUT(discordRpcRoutePath, stateRoutes.setDiscordRpc)

	engine.GET(stateRoutePath, stateRoutes.snapshot)
	engine.GET(eventsRoutePath, stateRoutes.streamEvents)
	engine.POST(navigationRoutePath, stateRoutes.navigate)
	engine.POST(navigationBackRoutePath, stateRoutes.navigateBack)
	engine.DELETE(toastRoutePath, stateRoutes.dismissToast)

	engine.NoRoute(staticHandler(configuration.StaticDirectory))

	return engine, nil
}

func healthStatus(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, gin.H{healthStatusKey: healthStatusOK})
}

func respondError(ginContext *gin.Context, status int, message string) {
	ginContext.AbortWithStatusJSON(status, gin.H{errorResponseKey: message})
}
