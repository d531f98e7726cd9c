package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Error codes carried by APIError
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeMissingParameter  = "MISSING_PARAMETER"
	CodeNotFound          = "NOT_FOUND"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeUnprocessableFile = "UNPROCESSABLE_FILE"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeAnalysisFailed    = "ANALYSIS_FAILED"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrMissingFile = New(http.StatusBadRequest, CodeMissingParameter, "No file part in the request")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "The requested resource was not found")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")

	// 500 Internal Server Error
	ErrAnalysisFailed = New(http.StatusInternalServerError, CodeAnalysisFailed, "Analysis failed")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// UnsupportedFormatError reports an upload whose extension is not CSV or Excel
func UnsupportedFormatError(extension string) *APIError {
	msg := "Unsupported format"
	if extension != "" {
		msg = fmt.Sprintf("Unsupported format: %s", extension)
	}
	return NewWithDetails(http.StatusUnsupportedMediaType, CodeUnsupportedFormat, msg, map[string]interface{}{
		"extension": extension,
		"supported": []string{".csv", ".xlsx", ".xls"},
	})
}

// UnprocessableFileError reports a file with a supported extension that failed to parse
func UnprocessableFileError(filename, format string, err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, CodeUnprocessableFile,
		fmt.Sprintf("Could not parse %s", filename), map[string]interface{}{
			"format": format,
			"reason": err.Error(),
		})
}

// PayloadTooLargeError reports an upload above the configured limit
func PayloadTooLargeError(limit int64) *APIError {
	return NewWithDetails(http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
		"Uploaded file is too large", map[string]interface{}{"max_bytes": limit})
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidationFailed,
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}
