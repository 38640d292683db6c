package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope for every error body.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as a JSON response. Non-AppError values are wrapped
// as internal errors with details suppressed.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		appErr.Message = "Internal server error"
		appErr.Details = nil
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
