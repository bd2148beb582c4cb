package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Document store errors
	ErrRead   ErrorCode = "READ"
	ErrWrite  ErrorCode = "WRITE"
	ErrBackup ErrorCode = "BACKUP"
	ErrList   ErrorCode = "LIST"

	// Resolution errors, recorded in status rather than returned
	ErrMarkerMismatch    ErrorCode = "MARKER_MISMATCH"
	ErrUndefinedVariable ErrorCode = "UNDEFINED_VARIABLE"

	// Run errors
	ErrPrecondition ErrorCode = "PRECONDITION"
)

// VarsubError represents a structured error with code and details
type VarsubError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VarsubError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VarsubError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VarsubError) Is(target error) bool {
	var targetErr *VarsubError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VarsubError with the given code and message
func New(code ErrorCode, message string) *VarsubError {
	return &VarsubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VarsubError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VarsubError {
	return &VarsubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VarsubError
func Wrap(err error, code ErrorCode, message string) *VarsubError {
	if err == nil {
		return nil
	}
	return &VarsubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VarsubError {
	if err == nil {
		return nil
	}
	return &VarsubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VarsubError) WithDetail(key string, value interface{}) *VarsubError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var varsubErr *VarsubError
	if errors.As(err, &varsubErr) {
		return varsubErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VarsubError
func GetErrorCode(err error) ErrorCode {
	var varsubErr *VarsubError
	if errors.As(err, &varsubErr) {
		return varsubErr.Code
	}
	return ErrUnknown
}

// Message returns the bare message of a VarsubError without code or wrapped
// cause, falling back to err.Error() for foreign errors.
func Message(err error) string {
	var varsubErr *VarsubError
	if errors.As(err, &varsubErr) {
		return varsubErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
