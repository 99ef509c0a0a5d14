package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/appstate"
	"github.com/acc-switch/accswitch/internal/platforms"
	"github.com/acc-switch/accswitch/internal/settings"
)

const (
	errorMessageUnknownPlatform   = "unknown platform"
	errorMessageInvalidBody       = "invalid request body"
	errorMessageInvalidSettings   = "invalid settings document"
	errorMessageAccountNotActive  = "account is not in the active list"
	errorMessageAccountNotIgnored = "account is not in the forgotten list"
	errorMessageSaveFailed        = "saving failed"
	toastTitleAccountForgotten    = "Account forgotten"
	toastTitleAccountRestored     = "Account restored"
	toastTitleSaveFailed          = "Could not save"
	logMessageSettingsUpdated     = "platform settings updated"
	logMessageSettingsSaveFailure = "platform settings save failure"
	logMessageAccountMoveFailure  = "account list save failure"
	logMessageAccountForgotten    = "account forgotten"
	logMessageAccountRestored     = "account restored"
	logFieldPlatform              = "platform"
	logFieldAccount               = "account"
)

type platformHandler struct {
	platforms PlatformDirectory
	state     *appstate.AppState
	logger    *zap.Logger
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

type trayAccountsRequest struct {
	Count *int `json:"count"`
}

func (handler platformHandler) listPlatforms(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, handler.platforms.Names())
}

func (handler platformHandler) resolveSwitcher(ginContext *gin.Context) {
	switcher, found := handler.platforms.Lookup(ginContext.Param(platformParameterName))
	if !found {
		respondError(ginContext, http.StatusNotFound, errorMessageUnknownPlatform)
		return
	}
	ginContext.Set(switcherContextKey, switcher)
	ginContext.Next()
}

func (handler platformHandler) getSettings(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, currentSwitcher(ginContext).Settings())
}

func (handler platformHandler) mergeSettings(ginContext *gin.Context) {
	switcher := currentSwitcher(ginContext)
	patch, err := ginContext.GetRawData()
	if err != nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	if err := switcher.MergeSettings(patch); err != nil {
		if errors.Is(err, settings.ErrMalformedDocument) || errors.Is(err, settings.ErrInvalidDocument) {
			respondError(ginContext, http.StatusBadRequest, errorMessageInvalidSettings)
			return
		}
		handler.saveFailed(ginContext, switcher, err)
		return
	}
	handler.logger.Info(logMessageSettingsUpdated, zap.String(logFieldPlatform, switcher.Name()))
	ginContext.JSON(http.StatusOK, switcher.Settings())
}

func (handler platformHandler) resetSettings(ginContext *gin.Context) {
	switcher := currentSwitcher(ginContext)
	if err := switcher.ResetSettings(); err != nil {
		handler.saveFailed(ginContext, switcher, err)
		return
	}
	ginContext.JSON(http.StatusOK, switcher.Settings())
}

func (handler platformHandler) setForgetEnabled(ginContext *gin.Context) {
	request, valid := bindRequest[enabledRequest](ginContext)
	if !valid || request.Enabled == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	handler.applySetting(ginContext, currentSwitcher(ginContext).SetForgetAccount(*request.Enabled))
}

func (handler platformHandler) setTrayAccounts(ginContext *gin.Context) {
	request, valid := bindRequest[trayAccountsRequest](ginContext)
	if !valid || request.Count == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	handler.applySetting(ginContext, currentSwitcher(ginContext).SetTrayAccountNumber(*request.Count))
}

func (handler platformHandler) listAccounts(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, currentSwitcher(ginContext).Accounts())
}

func (handler platformHandler) forgetAccount(ginContext *gin.Context) {
	handler.moveAccount(ginContext, platforms.Switcher.ForgetAccount, errorMessageAccountNotActive, toastTitleAccountForgotten, logMessageAccountForgotten)
}

func (handler platformHandler) restoreAccount(ginContext *gin.Context) {
	handler.moveAccount(ginContext, platforms.Switcher.RestoreAccount, errorMessageAccountNotIgnored, toastTitleAccountRestored, logMessageAccountRestored)
}

func (handler platformHandler) moveAccount(ginContext *gin.Context, move func(platforms.Switcher, string) (bool, error), notFoundMessage string, toastTitle string, logMessage string) {
	switcher := currentSwitcher(ginContext)
	accountID := ginContext.Param(accountParameterName)

	moved, err := move(switcher, accountID)
	if err != nil {
		handler.logger.Error(logMessageAccountMoveFailure, zap.String(logFieldPlatform, switcher.Name()), zap.String(logFieldAccount, accountID), zap.Error(err))
		handler.state.Toasts().Show(appstate.ToastError, toastTitleSaveFailed, err.Error())
		respondError(ginContext, http.StatusInternalServerError, errorMessageSaveFailed)
		return
	}
	if !moved {
		respondError(ginContext, http.StatusNotFound, notFoundMessage)
		return
	}

	handler.logger.Info(logMessage, zap.String(logFieldPlatform, switcher.Name()), zap.String(logFieldAccount, accountID))
	handler.state.Toasts().Show(appstate.ToastSuccess, toastTitle, accountID)
	presence := handler.state.Discord()
	presence.Refresh(switcher.Name(), presence.Snapshot().TotalSwitches)
	ginContext.JSON(http.StatusOK, switcher.Accounts())
}

func (handler platformHandler) saveFailed(ginContext *gin.Context, switcher platforms.Switcher, err error) {
	handler.logger.Error(logMessageSettingsSaveFailure, zap.String(logFieldPlatform, switcher.Name()), zap.Error(err))
	handler.state.Toasts().Show(appstate.ToastError, toastTitleSaveFailed, err.Error())
	respondError(ginContext, http.StatusInternalServerError, errorMessageSaveFailed)
}

func currentSwitcher(ginContext *gin.Context) platforms.Switcher {
	return ginContext.MustGet(switcherContextKey).(platforms.Switcher)
}
