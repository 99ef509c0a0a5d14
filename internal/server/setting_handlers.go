package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/accounts"
	"github.com/acc-switch/accswitch/internal/platforms"
)

const (
	errorMessageSettingUnsupported = "setting not supported by this platform"
	errorMessageInvalidAccounts    = "invalid account list"
	logMessageAccountsImported     = "accounts imported"
	pathsExeKey                    = "exe"
	pathsLoginUsersKey             = "loginUsersVdf"
)

type closingMethodSetter interface {
	SetClosingMethod(method string) error
}

type startingMethodSetter interface {
	SetStartingMethod(method string) error
}

type shortcutOrderSaver interface {
	SaveShortcutOrder(order map[int]string) error
}

type overwatchModeSetter interface {
	SetOverwatchMode(enabled bool) error
}

type collectInfoSetter interface {
	SetCollectInfo(enabled bool) error
}

type overrideStateSetter interface {
	SetOverrideState(state int) error
}

type customAccountNamer interface {
	SetCustomAccountName(accountID string, name string) error
}

type loginUsersLocator interface {
	LoginUsersVdf() string
}

type methodRequest struct {
	Method *string `json:"method"`
}

type shortcutsRequest struct {
	Shortcuts map[int]string `json:"shortcuts"`
}

type overrideStateRequest struct {
	State *int `json:"state"`
}

type accountNameRequest struct {
	Name *string `json:"name"`
}

func (handler platformHandler) setClosingMethod(ginContext *gin.Context) {
	setter, supported := switcherCapability[closingMethodSetter](ginContext)
	request, valid := bindRequest[methodRequest](ginContext)
	if !supported || !valid || request.Method == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, setter.SetClosingMethod(*request.Method))
}

func (handler platformHandler) setStartingMethod(ginContext *gin.Context) {
	setter, supported := switcherCapability[startingMethodSetter](ginContext)
	request, valid := bindRequest[methodRequest](ginContext)
	if !supported || !valid || request.Method == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, setter.SetStartingMethod(*request.Method))
}

func (handler platformHandler) saveShortcutOrder(ginContext *gin.Context) {
	saver, supported := switcherCapability[shortcutOrderSaver](ginContext)
	request, valid := bindRequest[shortcutsRequest](ginContext)
	if !supported || !valid || request.Shortcuts == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, saver.SaveShortcutOrder(request.Shortcuts))
}

func (handler platformHandler) setOverwatchMode(ginContext *gin.Context) {
	setter, supported := switcherCapability[overwatchModeSetter](ginContext)
	request, valid := bindRequest[enabledRequest](ginContext)
	if !supported || !valid || request.Enabled == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, setter.SetOverwatchMode(*request.Enabled))
}

func (handler platformHandler) setCollectInfo(ginContext *gin.Context) {
	setter, supported := switcherCapability[collectInfoSetter](ginContext)
	request, valid := bindRequest[enabledRequest](ginContext)
	if !supported || !valid || request.Enabled == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, setter.SetCollectInfo(*request.Enabled))
}

func (handler platformHandler) setOverrideState(ginContext *gin.Context) {
	setter, supported := switcherCapability[overrideStateSetter](ginContext)
	request, valid := bindRequest[overrideStateRequest](ginContext)
	if !supported || !valid || request.State == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, setter.SetOverrideState(*request.State))
}

func (handler platformHandler) setAccountName(ginContext *gin.Context) {
	namer, supported := switcherCapability[customAccountNamer](ginContext)
	request, valid := bindRequest[accountNameRequest](ginContext)
	if !supported || !valid || request.Name == nil {
		rejectRequest(ginContext, supported)
		return
	}
	handler.applySetting(ginContext, namer.SetCustomAccountName(ginContext.Param(accountParameterName), *request.Name))
}

func (handler platformHandler) importAccounts(ginContext *gin.Context) {
	switcher := currentSwitcher(ginContext)
	payload, err := ginContext.GetRawData()
	if err != nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	if err := switcher.ImportAccounts(payload); err != nil {
		if errors.Is(err, accounts.ErrMalformedList) {
			respondError(ginContext, http.StatusBadRequest, errorMessageInvalidAccounts)
			return
		}
		handler.saveFailed(ginContext, switcher, err)
		return
	}
	handler.logger.Info(logMessageAccountsImported, zap.String(logFieldPlatform, switcher.Name()))
	ginContext.JSON(http.StatusOK, switcher.Accounts())
}

func (handler platformHandler) clientPaths(ginContext *gin.Context) {
	switcher := currentSwitcher(ginContext)
	paths := gin.H{pathsExeKey: switcher.Exe()}
	if locator, found := switcher.(loginUsersLocator); found {
		paths[pathsLoginUsersKey] = locator.LoginUsersVdf()
	}
	ginContext.JSON(http.StatusOK, paths)
}

// applySetting answers a setter call: the updated settings on success, 400 for values the setter
// refused and 500 with an error toast when saving failed.
func (handler platformHandler) applySetting(ginContext *gin.Context, err error) {
	switcher := currentSwitcher(ginContext)
	switch {
	case err == nil:
		ginContext.JSON(http.StatusOK, switcher.Settings())
	case errors.Is(err, platforms.ErrNegativeTrayAccountNumber), errors.Is(err, platforms.ErrEmptyMethod):
		respondError(ginContext, http.StatusBadRequest, err.Error())
	default:
		handler.saveFailed(ginContext, switcher, err)
	}
}

func switcherCapability[C any](ginContext *gin.Context) (C, bool) {
	capability, supported := currentSwitcher(ginContext).(C)
	return capability, supported
}

func bindRequest[Q any](ginContext *gin.Context) (Q, bool) {
	var request Q
	if err := ginContext.ShouldBindJSON(&request); err != nil {
		return request, false
	}
	return request, true
}

func rejectRequest(ginContext *gin.Context, supported bool) {
	if !supported {
		respondError(ginContext, http.StatusNotFound, errorMessageSettingUnsupported)
		return
	}
	respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
}
