package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	errorMessageInternal      = "internal server error"
	errorMessageRouteNotFound = "route not found"
	logMessagePanicRecovered  = "handler panic recovered"
	logMessageRequestServed   = "request served"
	logFieldPanic             = "panic"
	logFieldMethod            = "method"
	logFieldPath              = "path"
	logFieldStatus            = "status"
	logFieldLatency           = "latency"
)

func recoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(ginContext *gin.Context, recovered any) {
		logger.Error(logMessagePanicRecovered,
			zap.Any(logFieldPanic, recovered),
			zap.String(logFieldMethod, ginContext.Request.Method),
			zap.String(logFieldPath, ginContext.Request.URL.Path),
		)
		respondError(ginContext, http.StatusInternalServerError, errorMessageInternal)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		startedAt := time.Now()
		ginContext.Next()
		logger.Debug(logMessageRequestServed,
			zap.String(logFieldMethod, ginContext.Request.Method),
			zap.String(logFieldPath, ginContext.Request.URL.Path),
			zap.Int(logFieldStatus, ginContext.Writer.Status()),
			zap.Duration(logFieldLatency, time.Since(startedAt)),
		)
	}
}

// staticHandler serves the web root for unmatched GET and HEAD requests. Unmatched API paths
// and other methods get a JSON 404.
func staticHandler(staticDirectory string) gin.HandlerFunc {
	var fileServer http.Handler
	if staticDirectory != "" {
		fileServer = http.FileServer(http.Dir(staticDirectory))
	}
	return func(ginContext *gin.Context) {
		request := ginContext.Request
		isReadMethod := request.Method == http.MethodGet || request.Method == http.MethodHead
		if fileServer == nil || !isReadMethod || strings.HasPrefix(request.URL.Path, apiRoutePrefix) {
			respondError(ginContext, http.StatusNotFound, errorMessageRouteNotFound)
			return
		}
		fileServer.ServeHTTP(ginContext.Writer, request)
	}
}
