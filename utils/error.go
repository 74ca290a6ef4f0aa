package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorCode classifies failures so clients can branch on a stable code
// instead of matching substrings of error messages.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation"
	CodeMissingStep  ErrorCode = "missing_step"
	CodeNotFound     ErrorCode = "not_found"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeConflict     ErrorCode = "conflict"
	CodeUnavailable  ErrorCode = "unavailable"
	CodeServerError  ErrorCode = "server_error"
)

// ServiceError is the error type services return across the HTTP boundary.
type ServiceError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationError wraps a field->message map produced by the validators.
func NewValidationError(fields map[string]string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message}
}

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeValidation, CodeMissingStep:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is a middleware that catches panics and renders the
// standard failure envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"code":    CodeServerError,
					"message": "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RespondOK renders the standard success envelope.
func RespondOK(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// RespondError renders the standard failure envelope, unwrapping
// *ServiceError when present and falling back to a generic 500.
func RespondError(c *gin.Context, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		body := gin.H{"success": false, "code": svcErr.Code, "message": svcErr.Message}
		if len(svcErr.Fields) > 0 {
			body["fields"] = svcErr.Fields
		}
		c.JSON(HTTPStatus(svcErr.Code), body)
		return
	}
	GetLogger().Warn("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"code":    CodeServerError,
		"message": "Something went wrong. Please try again later.",
	})
}
