package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation         = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrSequenceConflict   = NewDomainError("SEQUENCE_CONFLICT", "Report sequence was advanced by another session")
	ErrPreconditionFailed = NewDomainError("PRECONDITION_FAILED", "Operation requires a prior step that has not happened")
	ErrTransientIO        = NewDomainError("TRANSIENT_IO", "Temporary I/O failure, the operation may be retried")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// ErrorCode extracts the domain error code from err, unwrapping as needed.
// Returns an empty string for non-domain errors.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsTransient reports whether err is a temporary I/O failure
func IsTransient(err error) bool {
	return ErrorCode(err) == ErrTransientIO.Code
}
