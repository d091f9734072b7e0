package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrNotFound             = errors.New("not found")
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrOrganisationNotFound = fmt.Errorf("organisation %w", ErrNotFound)
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMissingToken         = errors.New("access token required")
	ErrInvalidToken         = errors.New("invalid access token")
	ErrExpiredToken         = errors.New("access token expired")
	ErrConstraintViolation  = errors.New("unique constraint violated")
	ErrConfiguration        = errors.New("token signing secret not configured")
)

// FieldError is a single failed field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level details for malformed input.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
