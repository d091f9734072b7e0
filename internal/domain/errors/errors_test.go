package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundErrorsShareSentinel(t *testing.T) {
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Error("ErrUserNotFound should wrap ErrNotFound")
	}
	if !errors.Is(ErrOrganisationNotFound, ErrNotFound) {
		t.Error("ErrOrganisationNotFound should wrap ErrNotFound")
	}
	if errors.Is(ErrUserNotFound, ErrOrganisationNotFound) {
		t.Error("user and organisation not-found errors must stay distinct")
	}
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("unexpected message %q", ErrUserNotFound.Error())
	}
}

func TestTokenErrorsAreDistinct(t *testing.T) {
	errs := []error{ErrMissingToken, ErrInvalidToken, ErrExpiredToken}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

func TestValidationErrorMatching(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("email", "must be a valid email"))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped ValidationError should match ErrValidation")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should extract ValidationError")
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "email" {
		t.Errorf("unexpected fields %+v", ve.Fields)
	}
	if ve.Error() != "validation failed: email: must be a valid email" {
		t.Errorf("unexpected message %q", ve.Error())
	}
}
