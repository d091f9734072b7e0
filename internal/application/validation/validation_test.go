package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

type signup struct {
	FirstName string `json:"firstName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	OrgID     string `json:"orgId,omitempty" validate:"omitempty,uuid"`
}

func TestStructValid(t *testing.T) {
	err := validation.Struct(signup{FirstName: "Ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)
}

func TestStructReportsEveryFieldByJSONName(t *testing.T) {
	err := validation.Struct(signup{Email: "nope", Password: "short", OrgID: "x"})
	require.Error(t, err)
	require.True(t, errors.Is(err, domerrors.ErrValidation))

	var ve *domerrors.ValidationError
	require.True(t, errors.As(err, &ve))

	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, `"firstName" is required`, got["firstName"])
	assert.Equal(t, `"email" must be a valid email`, got["email"])
	assert.Equal(t, `"password" length must be at least 8 characters long`, got["password"])
	assert.Equal(t, `"orgId" must be a valid GUID`, got["orgId"])
}

type secret struct {
	Password string `json:"password" validate:"required,maxbytes=8"`
}

func TestMaxBytesCountsEncodedLength(t *testing.T) {
	require.NoError(t, validation.Struct(secret{Password: "abcdefgh"}))
	require.NoError(t, validation.Struct(secret{Password: "éééé"}))

	err := validation.Struct(secret{Password: "ééééa"})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, `"password" length must be less than or equal to 8 bytes long`, ve.Fields[0].Message)
}
