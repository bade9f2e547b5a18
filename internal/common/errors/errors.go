// Package errors provides standardized error handling for the XML generator service.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeTemplateNotFound    ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeInvalidTemplateName ErrorCode = "INVALID_TEMPLATE_NAME"
	ErrCodeTemplateReadFailed  ErrorCode = "TEMPLATE_READ_FAILED"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingVariable  ErrorCode = "MISSING_VARIABLE"
	ErrCodeRenderFailed     ErrorCode = "RENDER_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseQueryFailed      ErrorCode = "DATABASE_QUERY_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var std *StandardError
	if !errors.As(target, &std) {
		return false
	}
	return e.Code == std.Code
}

// HasCode reports whether err is a StandardError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var std *StandardError
	if !errors.As(err, &std) {
		return false
	}
	return std.Code == code
}

// Normalize ensures we always have a StandardError to work with.
func Normalize(err error) *StandardError {
	var std *StandardError
	if errors.As(err, &std) {
		return std
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTemplateNotFoundError creates a non-retryable template lookup error.
func NewTemplateNotFoundError(templateName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found",
		Details:   fmt.Sprintf("templateName: %s", templateName),
		Retryable: false,
		Metadata:  map[string]interface{}{"templateName": templateName},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTemplateNameError creates a non-retryable error for names that
// carry path separators or parent-directory segments.
func NewInvalidTemplateNameError(templateName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTemplateName,
		Message:   "Template name is not a plain file name",
		Details:   fmt.Sprintf("templateName: %s", templateName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateReadFailedError creates a retryable file read error.
func NewTemplateReadFailedError(templateName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateReadFailed,
		Message:   "Failed to read template file",
		Details:   fmt.Sprintf("templateName: %s, error: %s", templateName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable submission validation error.
// Missing and unexpected hold the offending field names.
func NewValidationFailedError(missing, unexpected []string) *StandardError {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing: %s", strings.Join(missing, ", ")))
	}
	if len(unexpected) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected: %s", strings.Join(unexpected, ", ")))
	}
	return &StandardError{
		Code:    ErrCodeValidationFailed,
		Message: "Submitted fields do not match the template variables",
		Details: strings.Join(parts, "; "),
		Metadata: map[string]interface{}{
			"missing":    missing,
			"unexpected": unexpected,
		},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingVariableError creates a non-retryable render error for markers
// without a submitted value. Defensive: validation should catch this first.
func NewMissingVariableError(names []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingVariable,
		Message:   "Template references variables with no submitted value",
		Details:   fmt.Sprintf("variables: %s", strings.Join(names, ", ")),
		Metadata:  map[string]interface{}{"variables": names},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a non-retryable render error.
func NewRenderFailedError(templateName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "Failed to render template",
		Details:   fmt.Sprintf("templateName: %s, error: %s", templateName, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable activity log insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Failed to record generation in activity log",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseQueryFailedError creates a retryable activity log query error.
func NewDatabaseQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseQueryFailed,
		Message:   "Failed to query activity log",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
