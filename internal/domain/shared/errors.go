package shared

import (
	"errors"
	"fmt"
)

// Error codes understood by the HTTP layer.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeTransactionFailure = "TRANSACTION_FAILURE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries per-field or per-item context, e.g. missing item codes.
	Details []string `json:"details,omitempty"`
	Cause   error    `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports code equality so that errors.Is(err, ErrNotFound) matches
// every NOT_FOUND error regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps cause in its chain
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a VALIDATION_ERROR with optional details
func NewValidationError(message string, details ...string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates a NOT_FOUND error for the named resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewConflictError creates a CONFLICT error
func NewConflictError(message string, cause error) *DomainError {
	return WrapDomainError(CodeConflict, message, cause)
}

// NewTransactionFailure creates a TRANSACTION_FAILURE error
func NewTransactionFailure(message string, cause error) *DomainError {
	return WrapDomainError(CodeTransactionFailure, message, cause)
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err carries the given domain error code
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// Common domain errors
var (
	ErrValidation         = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict           = NewDomainError(CodeConflict, "Resource conflicts with concurrent changes")
	ErrTransactionFailure = NewDomainError(CodeTransactionFailure, "Transaction failed")
)
