package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure envelope. HTTPCode always equals the
// transport status.
type ErrorResponse struct {
	Status   bool                `json:"status"`
	Error    string              `json:"error"`
	Message  string              `json:"message"`
	Errors   map[string][]string `json:"errors,omitempty"`
	HTTPCode int                 `json:"httpCode"`
}

// RespondWithError writes a failure envelope and aborts the handler chain.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:   false,
		Error:    errorCode,
		Message:  message,
		HTTPCode: statusCode,
	})
}

// RespondWithSuccess writes {status: true, message?, ...payload, httpCode}.
func RespondWithSuccess(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{"status": true, "httpCode": statusCode}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthenticated."
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized action."
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func Gone(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusGone, errorCode, message)
}

func Unprocessable(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError writes a 422 with per-field messages.
func RespondWithValidationError(c *gin.Context, fields map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Status:   false,
		Error:    ValidationInvalidInput,
		Message:  "The given data was invalid.",
		Errors:   fields,
		HTTPCode: http.StatusUnprocessableEntity,
	})
}
