// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	// MsgInvalidRequest is returned when the body or query cannot be bound.
	MsgInvalidRequest = "invalid request"
	// MsgValidationFailed is returned with per-field details.
	MsgValidationFailed = "validation failed"

	msgInternal = "something went wrong, please try again"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// ValidationError sends a 400 with the failing fields keyed by json name.
func ValidationError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, MsgValidationFailed, validator.FieldErrors(err))
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values use their Kind; anything else is treated as an
// unexpected failure, logged, and reported as 500 without leaking internals.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := apperr.From(err); ok && domainErr.Kind != apperr.KindInternal && domainErr.Kind != apperr.KindUnknown {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	if log := LoggerFrom(c); log != nil {
		log.HTTPError(c.Request.Method, c.Request.URL.Path, http.StatusInternalServerError, err, c.ClientIP())
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	return true
}

// LoggerFrom returns the request-scoped logger installed by RequestID.
func LoggerFrom(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(ContextLoggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return nil
}
