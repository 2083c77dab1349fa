// internal/utils/response.go
package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError describes why a request failed
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func newResponse(c *gin.Context, success bool, message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: c.GetString(RequestIDKey),
	}
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, newResponse(c, true, message, data))
}

// ErrorResponse sends an error response coded after the HTTP status,
// e.g. 400 becomes BAD_REQUEST
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	CodedErrorResponse(c, statusCode, statusCode2Code(statusCode), message, err)
}

// CodedErrorResponse sends an error response with an explicit error code
func CodedErrorResponse(c *gin.Context, statusCode int, code, message string, err error) {
	FailureResponse(c, statusCode, code, message, err, nil)
}

// FailureResponse sends an error response that still carries data, such as
// a job that was recorded but could not be delivered
func FailureResponse(c *gin.Context, statusCode int, code, message string, err error, data interface{}) {
	response := newResponse(c, false, message, data)
	response.Error = &APIError{Code: code, Message: message}
	if err != nil {
		response.Error.Details = err.Error()
	}

	c.JSON(statusCode, response)
}

// ValidationErrorResponse reports field-level validation failures
func ValidationErrorResponse(c *gin.Context, fields map[string]string) {
	response := newResponse(c, false, "Validation failed", gin.H{"validation_errors": fields})
	response.Error = &APIError{
		Code:    "VALIDATION_ERROR",
		Message: "Request validation failed",
	}

	c.JSON(http.StatusBadRequest, response)
}

func statusCode2Code(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
