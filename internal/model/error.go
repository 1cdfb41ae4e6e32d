package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Message       string            `json:"message"`
	Fields        map[string]string `json:"fields,omitempty"`
	Redirect      string            `json:"redirect,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeEmptySelection    = "EMPTY_SELECTION"
	ErrCodeInvalidRate       = "INVALID_RATE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUpstream          = "UPSTREAM_ERROR"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeSessionChecking   = "SESSION_CHECKING"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Status must be one of the five order lifecycle labels")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Status transition is not allowed from the current status")
	ErrEmptySelection    = NewDomainError(ErrCodeEmptySelection, "At least one product must be selected")
	ErrInvalidRate       = NewDomainError(ErrCodeInvalidRate, "Rate must be a non-negative number")
	ErrMissingID         = NewDomainError(ErrCodeMissingField, "Identifier is required")
	ErrNotFound          = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrNotAuthenticated  = NewDomainError(ErrCodeUnauthorised, "Session is not authenticated")
	ErrSessionChecking   = NewDomainError(ErrCodeSessionChecking, "Session verification in progress")
)

// ValidationError collects per-field form errors. Submission is blocked while any are present.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for field and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
