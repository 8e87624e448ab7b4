package common

import (
	"errors"
	"net/http"
)

// CustomError application error carrying an HTTP status
type CustomError struct {
	Code    string // error code
	Message string // client-facing message
	Err     error  // underlying error
	Status  int    // HTTP status
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches errors by code so predefined errors work with errors.Is.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a CustomError
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// AsCustomError extracts a CustomError from an error chain.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Error codes
const (
	// 4xx
	ErrCodeInvalidRequest     = "INVALID_REQUEST"     // 400
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"     // 400
	ErrCodeUserNotFound       = "USER_NOT_FOUND"      // 404
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS" // 401
	ErrCodeInvalidImage       = "INVALID_IMAGE"       // 400

	// 5xx
	ErrCodeInternalError      = "INTERNAL_ERROR"       // 500
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"  // 500
	ErrCodeUpstream           = "UPSTREAM_ERROR"       // provider status
	ErrCodeUpstreamNoResponse = "UPSTREAM_NO_RESPONSE" // 500
)

// Predefined errors, matched by code with errors.Is
var (
	ErrDuplicateEmail     = NewError(ErrCodeDuplicateEmail, "User already exists", http.StatusBadRequest, nil)
	ErrUserNotFound       = NewError(ErrCodeUserNotFound, "User not found", http.StatusNotFound, nil)
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized, nil)
)
