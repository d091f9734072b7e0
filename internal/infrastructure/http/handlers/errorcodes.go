package handlers

// API error codes returned alongside every error message for stable client handling.
const (
	ErrCodeValidation          = "validation_failed"
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeEmailInUse          = "email_in_use"
	ErrCodeUserNotFound        = "user_not_found"
	ErrCodeOrganisationMissing = "organisation_not_found"
	ErrCodeNotFound            = "not_found"
	ErrCodeAuthFailed          = "authentication_failed"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeInternal            = "internal_error"
)
