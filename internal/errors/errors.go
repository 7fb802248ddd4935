package errors

import (
	"net/http"
	"os"
	"strings"

	"codeberg.org/capworks/portal/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.Validation() for anything the client should show per field
//   - Use errors.InternalError(), errors.NotFound(), etc. for the rest
//     These functions handle both logging and HTTP response automatically
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// standard error codes
const (
	CodeUnauthorized      = "unauthorized"
	CodeNotFound          = "not_found"
	CodeServerError       = "server_error"
	CodeBadRequest        = "bad_request"
	CodeInvalid           = "invalid"
	CodeRequired          = "required"
	CodeInvalidLogin      = "invalid_login"
	CodeThrottled         = "throttled"
	CodeIncompleteProfile = "incomplete_profile"
	CodeUnique            = "unique"
	CodeMinValue          = "min_value"
)

// builds a single-entry error list for a field
func Field(message, code string) []FieldError {
	return []FieldError{{Message: message, Code: code}}
}

// wraps form-wide errors the way nested forms report them
func All(errs ...FieldError) []map[string][]FieldError {
	return []map[string][]FieldError{{AllKey: errs}}
}

// returns a 400 with per-field errors
func Validation(c *gin.Context, fields FieldErrors) {
	FieldStatus(c, http.StatusBadRequest, fields)
}

// returns per-field errors with an arbitrary status
func FieldStatus(c *gin.Context, status int, fields FieldErrors) {
	c.JSON(status, fields)
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error for bodies that cannot be decoded
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	if os.Getenv("ENVIRONMENT") != "production" {
		return errMsg
	}

	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return "request timed out"
	case strings.Contains(lower, "connection") || strings.Contains(lower, "network"):
		return "connection error occurred"
	case strings.Contains(lower, "permission") || strings.Contains(lower, "unauthorized"):
		return "permission denied"
	case strings.Contains(lower, "not found"):
		return "resource not found"
	default:
		return "an error occurred"
	}
}
