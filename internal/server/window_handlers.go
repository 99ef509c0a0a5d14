package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/appstate"
	"github.com/acc-switch/accswitch/internal/platforms"
)

const logMessageWindowSaveFailure = "window settings save failure"

type languageRequest struct {
	Language *string `json:"language"`
}

type windowSizeRequest struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

type discordRpcRequest struct {
	Enabled            *bool `json:"enabled"`
	ShareTotalSwitches *bool `json:"shareTotalSwitches"`
}

func (handler stateHandler) windowSettings(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, handler.state.Window().Settings())
}

func (handler stateHandler) setLanguage(ginContext *gin.Context) {
	request, valid := bindRequest[languageRequest](ginContext)
	if !valid || request.Language == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	handler.applyWindowSetting(ginContext, handler.state.Window().SetLanguage(*request.Language))
}

func (handler stateHandler) setStreamerMode(ginContext *gin.Context) {
	request, valid := bindRequest[enabledRequest](ginContext)
	if !valid || request.Enabled == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	handler.applyWindowSetting(ginContext, handler.state.Window().SetStreamerMode(*request.Enabled))
}

func (handler stateHandler) setWindowSize(ginContext *gin.Context) {
	request, valid := bindRequest[windowSizeRequest](ginContext)
	if !valid || request.Width == nil || request.Height == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	size := platforms.Size{X: *request.Width, Y: *request.Height}
	handler.applyWindowSetting(ginContext, handler.state.Window().SetWindowSize(size))
}

func (handler stateHandler) setMinimizeOnSwitch(ginContext *gin.Context) {
	request, valid := bindRequest[enabledRequest](ginContext)
	if !valid || request.Enabled == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	handler.applyWindowSetting(ginContext, handler.state.Window().SetMinimizeOnSwitch(*request.Enabled))
}

func (handler stateHandler) setDiscordRpc(ginContext *gin.Context) {
	request, valid := bindRequest[discordRpcRequest](ginContext)
	if !valid || request.Enabled == nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}
	shareTotalSwitches := handler.state.Window().Settings().DiscordRpcShareTotalSwitches
	if request.ShareTotalSwitches != nil {
		shareTotalSwitches = *request.ShareTotalSwitches
	}
	handler.applyWindowSetting(ginContext, handler.state.Window().SetDiscordRpc(*request.Enabled, shareTotalSwitches))
}

func (handler stateHandler) applyWindowSetting(ginContext *gin.Context, err error) {
	switch {
	case err == nil:
		ginContext.JSON(http.StatusOK, handler.state.Window().Settings())
	case errors.Is(err, appstate.ErrEmptyLanguage), errors.Is(err, appstate.ErrInvalidWindowSize):
		respondError(ginContext, http.StatusBadRequest, err.Error())
	default:
		handler.logger.Error(logMessageWindowSaveFailure, zap.Error(err))
		handler.state.Toasts().Show(appstate.ToastError, toastTitleSaveFailed, err.Error())
		respondError(ginContext, http.StatusInternalServerError, errorMessageSaveFailed)
	}
}
