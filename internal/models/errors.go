package models

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories, services and handlers.
// Wrap them with fmt.Errorf("...: %w", ErrX) and check with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("you do not have permission to do that")
	ErrUnauthorized = errors.New("you must be signed in")
	ErrConflict     = errors.New("already exists")
	ErrUpstream     = errors.New("upstream service failure")
)

// FieldViolation represents a single violated constraint of a request payload
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint of a request payload
type ValidationError struct {
	Violations []FieldViolation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// NewValidationError creates a ValidationError with a single violation
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}
