package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/appstate"
)

const (
	stateEventName              = "state"
	eventStreamContentType      = "text/event-stream"
	headerContentType           = "Content-Type"
	headerCacheControl          = "Cache-Control"
	headerConnection            = "Connection"
	cacheControlNoCache         = "no-cache"
	connectionKeepAlive         = "keep-alive"
	errorMessageToastNotFound   = "toast not found"
	logMessageLastPlatformSaved = "last platform save failure"
	logMessageEventStreamOpened = "event stream opened"
	logMessageEventStreamClosed = "event stream closed"
	logFieldRemoteAddress       = "remote_address"
)

type stateHandler struct {
	platforms PlatformDirectory
	state     *appstate.AppState
	logger    *zap.Logger
}

type navigationRequest struct {
	Path string `json:"path"`
}

func (handler stateHandler) snapshot(ginContext *gin.Context) {
	ginContext.JSON(http.StatusOK, handler.state.Snapshot())
}

func (handler stateHandler) navigate(ginContext *gin.Context) {
	var request navigationRequest
	if err := ginContext.ShouldBindJSON(&request); err != nil {
		respondError(ginContext, http.StatusBadRequest, errorMessageInvalidBody)
		return
	}

	navigation := handler.state.Navigation()
	navigation.NavigateTo(request.Path)
	handler.rememberPlatform(navigation.Current())
	ginContext.JSON(http.StatusOK, navigation.Snapshot())
}

func (handler stateHandler) navigateBack(ginContext *gin.Context) {
	navigation := handler.state.Navigation()
	navigation.Back()
	ginContext.JSON(http.StatusOK, navigation.Snapshot())
}

func (handler stateHandler) dismissToast(ginContext *gin.Context) {
	if !handler.state.Toasts().Dismiss(ginContext.Param(toastParameterName)) {
		respondError(ginContext, http.StatusNotFound, errorMessageToastNotFound)
		return
	}
	ginContext.Status(http.StatusNoContent)
}

// streamEvents writes the full state once on connect and again after every change until the
// client disconnects. Bursts of changes collapse into one event.
func (handler stateHandler) streamEvents(ginContext *gin.Context) {
	changes := make(chan struct{}, 1)
	unsubscribe := handler.state.Subscribe(func(appstate.Change) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	ginContext.Header(headerContentType, eventStreamContentType)
	ginContext.Header(headerCacheControl, cacheControlNoCache)
	ginContext.Header(headerConnection, connectionKeepAlive)
	ginContext.Status(http.StatusOK)

	remoteAddress := ginContext.ClientIP()
	handler.logger.Debug(logMessageEventStreamOpened, zap.String(logFieldRemoteAddress, remoteAddress))
	defer handler.logger.Debug(logMessageEventStreamClosed, zap.String(logFieldRemoteAddress, remoteAddress))

	requestContext := ginContext.Request.Context()
	for {
		ginContext.SSEvent(stateEventName, handler.state.Snapshot())
		ginContext.Writer.Flush()

		select {
		case <-requestContext.Done():
			return
		case <-changes:
		}
	}
}

func (handler stateHandler) rememberPlatform(currentPath string) {
	segment := strings.SplitN(strings.TrimPrefix(currentPath, "/"), "/", 2)[0]
	switcher, found := handler.platforms.Lookup(segment)
	if !found {
		return
	}
	if err := handler.state.Window().SetLastPlatform(switcher.Name()); err != nil {
		handler.logger.Warn(logMessageLastPlatformSaved, zap.Error(err))
	}
}
