package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these onto
// HTTP status codes with errors.Is.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrInvalidStatus    = errors.New("status must be approved or rejected")
	ErrNotOwner         = errors.New("leave request belongs to another employee")
	ErrNotPending       = errors.New("only pending leave requests may be deleted")
)
