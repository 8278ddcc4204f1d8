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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors. ErrConfigMissing is the fatal precondition:
	// the source root or a mapping source does not exist, so the run
	// aborts before any mutation.
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigValid   ErrorCode = "CONFIG_INVALID"

	// Reconciliation errors, surfaced per mapping
	ErrSymlinkCreate   ErrorCode = "SYMLINK_CREATE"
	ErrLinkRemove      ErrorCode = "LINK_REMOVE"
	ErrBackupMove      ErrorCode = "BACKUP_MOVE"
	ErrBackupCollision ErrorCode = "BACKUP_COLLISION"
	ErrVerifyFailed    ErrorCode = "VERIFY_FAILED"
	ErrLockHeld        ErrorCode = "LOCK_HELD"

	// Filesystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// LatchError represents a structured error with code and details
type LatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LatchError) Is(target error) bool {
	var targetErr *LatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LatchError with the given code and message
func New(code ErrorCode, message string) *LatchError {
	return &LatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LatchError {
	return &LatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LatchError
func Wrap(err error, code ErrorCode, message string) *LatchError {
	if err == nil {
		return nil
	}
	return &LatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LatchError {
	if err == nil {
		return nil
	}
	return &LatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LatchError) WithDetail(key string, value interface{}) *LatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LatchError) WithDetails(details map[string]interface{}) *LatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var latchErr *LatchError
	if errors.As(err, &latchErr) {
		return latchErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LatchError
func GetErrorCode(err error) ErrorCode {
	var latchErr *LatchError
	if errors.As(err, &latchErr) {
		return latchErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LatchError
func GetErrorDetails(err error) map[string]interface{} {
	var latchErr *LatchError
	if errors.As(err, &latchErr) {
		return latchErr.Details
	}
	return nil
}
