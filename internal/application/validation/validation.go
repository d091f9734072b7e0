// Package validation turns validator/v10 struct tags into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("maxbytes", maxBytes)
	})
	return validate
}

// Struct validates s and returns a *domerrors.ValidationError listing every
// failed field, or nil.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domerrors.ValidationError{Fields: make([]domerrors.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domerrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

// maxBytes bounds the UTF-8 encoded length of a string. The max tag counts
// runes, which lets multi-byte input past byte-limited consumers like bcrypt.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%q must be a valid GUID", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%q length must be less than or equal to %s bytes long", field, fe.Param())
	default:
		return fmt.Sprintf("%q failed on %s", field, fe.Tag())
	}
}
