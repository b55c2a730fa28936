// Package errors defines the structured error type shared by the settings
// store, the document assembler and the order template.
//
// Every failure surfaced to a caller is a *PatternsError carrying a Type
// (not_found, io, clone, validation, config), a stable Code and an optional
// Cause. Callers classify failures with the Is* predicates rather than by
// matching message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeClone      ErrorType = "clone"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
)

// Common error codes.
const (
	ErrCodeSettingNotFound  = "ERR_SETTING_NOT_FOUND"
	ErrCodeItemNotFound     = "ERR_ITEM_NOT_FOUND"
	ErrCodeFileOpen         = "ERR_FILE_OPEN"
	ErrCodeFileRead         = "ERR_FILE_READ"
	ErrCodeFileWrite        = "ERR_FILE_WRITE"
	ErrCodeCloneFailed      = "ERR_CLONE_FAILED"
	ErrCodeUnknownFormat    = "ERR_UNKNOWN_FORMAT"
	ErrCodeInvalidQuantity  = "ERR_INVALID_QUANTITY"
	ErrCodeNilValue         = "ERR_NIL_VALUE"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeValidationFailed = "ERR_VALIDATION_FAILED"
)

// PatternsError is a structured error type with context.
type PatternsError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Component string
	FilePath  string
}

// Error implements the error interface.
func (e *PatternsError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PatternsError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *PatternsError) Is(target error) bool {
	var t *PatternsError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PatternsError) WithContext(key string, value interface{}) *PatternsError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the file the failing operation touched.
func (e *PatternsError) WithFile(path string) *PatternsError {
	e.FilePath = path

	return e
}

// WithComponent adds component context.
func (e *PatternsError) WithComponent(component string) *PatternsError {
	e.Component = component

	return e
}

// Error creation functions

// NewNotFoundError creates an error for a lookup that found nothing.
func NewNotFoundError(code, message string) *PatternsError {
	return &PatternsError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *PatternsError {
	return &PatternsError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewCloneError creates an error for a deep copy that could not complete.
func NewCloneError(message string, cause error) *PatternsError {
	return &PatternsError{
		Type:    ErrorTypeClone,
		Code:    ErrCodeCloneFailed,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *PatternsError {
	return &PatternsError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *PatternsError {
	return &PatternsError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// hasType reports whether any *PatternsError in err's chain has type typ,
// so a clone error wrapping a validation cause matches both.
func hasType(err error, typ ErrorType) bool {
	for err != nil {
		var pe *PatternsError
		if !errors.As(err, &pe) {
			return false
		}
		if pe.Type == typ {
			return true
		}
		err = pe.Cause
	}

	return false
}

// IsNotFound checks if an error reports a missing key or entity.
func IsNotFound(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsIOError checks if an error is filesystem-related.
func IsIOError(err error) bool {
	return hasType(err, ErrorTypeIO)
}

// IsCloneError checks if an error came from a failed deep copy.
func IsCloneError(err error) bool {
	return hasType(err, ErrorTypeClone)
}

// IsValidationError checks if an error is a rejected input.
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// Helper functions for common errors

// ErrSettingNotFound creates the error returned for an unknown settings key.
func ErrSettingNotFound(key string) *PatternsError {
	return NewNotFoundError(ErrCodeSettingNotFound, "setting not found: "+key).
		WithContext("key", key)
}

// ErrUnknownFormat creates the error returned for an unsupported document format.
func ErrUnknownFormat(format string) *PatternsError {
	return NewValidationError(ErrCodeUnknownFormat, "unknown document format: "+format).
		WithContext("format", format)
}
