package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// FieldError is one entry of a field's error list
type FieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// FieldErrors maps field names to their errors. values are []FieldError,
// a nested FieldErrors, or an aggregate built with All.
type FieldErrors map[string]any

// key under which form-wide errors are reported
const AllKey = "__all__"
