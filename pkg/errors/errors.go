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

	// Validation errors fail fast, before any writes occur
	ErrValidation   ErrorCode = "VALIDATION"
	ErrGlobInvalid  ErrorCode = "GLOB_INVALID"
	ErrManifestBad  ErrorCode = "MANIFEST_INVALID"
	ErrReleaseBad   ErrorCode = "RELEASE_MANIFEST_INVALID"

	// Per-file errors are captured into results, never abort a run
	ErrIO         ErrorCode = "IO"
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrChecksum   ErrorCode = "CHECKSUM"

	// Merge outcomes
	ErrConflictUnresolved ErrorCode = "CONFLICT_UNRESOLVED"
	ErrCancelled          ErrorCode = "CANCELLED"

	// Structural errors propagate as hard failures
	ErrSourceTree    ErrorCode = "SOURCE_TREE"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
	ErrMigration     ErrorCode = "MIGRATION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// CodekitError represents a structured error with code and details
type CodekitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CodekitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CodekitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CodekitError) Is(target error) bool {
	var targetErr *CodekitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CodekitError with the given code and message
func New(code ErrorCode, message string) *CodekitError {
	return &CodekitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CodekitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CodekitError {
	return &CodekitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CodekitError
func Wrap(err error, code ErrorCode, message string) *CodekitError {
	if err == nil {
		return nil
	}
	return &CodekitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CodekitError {
	if err == nil {
		return nil
	}
	return &CodekitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CodekitError) WithDetail(key string, value interface{}) *CodekitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ckErr *CodekitError
	if errors.As(err, &ckErr) {
		return ckErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CodekitError
func GetErrorCode(err error) ErrorCode {
	var ckErr *CodekitError
	if errors.As(err, &ckErr) {
		return ckErr.Code
	}
	return ErrUnknown
}
