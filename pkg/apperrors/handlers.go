package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError translates any error into an HTTP response at the request
// boundary. Non-AppError values become opaque 500s.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error(), "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
