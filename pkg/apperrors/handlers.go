package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - standard error body
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors for gin
type GinErrorHandler struct {
	Debug bool
}

var debugMode = true

// SetDebug toggles exposing internal error messages. Set from server.env at startup.
func SetDebug(debug bool) {
	debugMode = debug
}

// HandleGinError - main error rendering logic
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= 500 && !h.Debug {
		cp := *appErr
		cp.Message = "Internal server error"
		cp.Details = nil
		appErr = &cp
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "error", appErr.Unwrap())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - shortcut for gin handlers
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode}
	handler.HandleGinError(c, err)
}

// AsAppError - tries to convert error into *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
