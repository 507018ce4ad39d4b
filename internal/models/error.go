package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Auth-specific errors
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrEmailTaken         = "EMAIL_TAKEN"
	ErrUserNotFound       = "USER_NOT_FOUND"

	// Leave-request-specific errors
	ErrLeaveNotFound    = "LEAVE_REQUEST_NOT_FOUND"
	ErrLeaveInvalidData = "LEAVE_REQUEST_INVALID_DATA"
	ErrLeaveNotOwner    = "LEAVE_REQUEST_NOT_OWNER"
	ErrLeaveNotPending  = "LEAVE_REQUEST_NOT_PENDING"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
