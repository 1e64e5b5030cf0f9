// Package errors provides a lightweight structured error type (MsphError)
// for category-based classification of CLI and pipeline failures.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an msph error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Pipeline stage failures
	CategoryPrecondition ErrorCategory = "precondition"
	CategorySpawn        ErrorCategory = "spawn"
	CategoryExit         ErrorCategory = "exit"
	CategoryTask         ErrorCategory = "task"
	CategoryCanceled     ErrorCategory = "canceled"

	// External systems and local resources
	CategoryNetwork    ErrorCategory = "network"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// MsphError is a structured error with category, severity and context
type MsphError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MsphError
type ContextFields map[string]any

// Error implements the error interface
func (e *MsphError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *MsphError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MsphError) WithContext(key string, value any) *MsphError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new MsphError
func New(category ErrorCategory, severity ErrorSeverity, message string) *MsphError {
	return &MsphError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new MsphError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *MsphError {
	return &MsphError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the outermost MsphError from an error chain.
func As(err error) (*MsphError, bool) {
	var me *MsphError
	if stdErrors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if me, ok := As(err); ok {
		return me.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an MsphError
func GetCategory(err error) ErrorCategory {
	if me, ok := As(err); ok {
		return me.Category
	}
	return CategoryInternal
}
