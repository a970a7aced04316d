// Package handlers implements the HTTP endpoints for area resolution,
// conversation, clinic lookup, and health probes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// abortWithError maps an application error onto an HTTP response.  Server
// errors are masked so internals never leak to clients.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		code = errors.ErrCodeInternal
		message = errors.DefaultMessageForCode(errors.ErrCodeInternal)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    string(code),
		Message: message,
	})
}

// badRequest aborts with a 400 and the given message.
func badRequest(c *gin.Context, message string) {
	abortWithError(c, errors.New(errors.ErrCodeBadRequest, message))
}
