package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/application/auth"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
	tokens "github.com/amirhosseinghanipour/userorg/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/sqlite"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/security"
)

type fixture struct {
	store    *sqlite.Store
	tokens   *tokens.TokenService
	register *auth.RegisterUser
	login    *auth.Login
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := store.Stores()
	hasher := security.NewBcryptHasher(4)
	ts := tokens.NewTokenService("test-secret")
	return &fixture{
		store:    store,
		tokens:   ts,
		register: auth.NewRegisterUser(s.Users, auth.NewProvisionUser(store), hasher, ts),
		login:    auth.NewLogin(s.Users, hasher, ts),
	}
}

func signup(email string) auth.RegisterUserInput {
	return auth.RegisterUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "correct-horse",
		Phone:     "08012345678",
	}
}

func TestRegisterProvisionsDefaultOrganisation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.register.Execute(ctx, signup("ada@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "ada@example.com", res.User.Email)
	require.NotNil(t, res.Organisation)

	sub, err := f.tokens.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), sub)

	orgs, err := f.store.Stores().Organisations.ListForUser(ctx, res.User.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Ada's Organisation", orgs[0].Name)
	assert.Nil(t, orgs[0].Description)

	stored, err := f.store.Stores().Users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	in := signup("not-an-email")
	in.FirstName = ""
	in.Password = "short"

	_, err := f.register.Execute(context.Background(), in)
	require.ErrorIs(t, err, domerrors.ErrValidation)

	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"firstName", "email", "password"}, fields)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, signup("dup@example.com"))
	require.NoError(t, err)

	_, err = f.register.Execute(ctx, signup("dup@example.com"))
	require.ErrorIs(t, err, domerrors.ErrDuplicateEmail)
}

func TestConcurrentSignupsSameEmail(t *testing.T) {
	f := newFixture(t)
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.register.Execute(context.Background(), signup("race@example.com"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			errors.Is(err, domerrors.ErrDuplicateEmail) || errors.Is(err, domerrors.ErrConstraintViolation),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	u, err := f.store.Stores().Users.GetByEmail(context.Background(), "race@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	orgs, err := f.store.Stores().Organisations.ListForUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, orgs, 1)
}

func TestLoginRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.register.Execute(ctx, signup("login@example.com"))
	require.NoError(t, err)

	res, err := f.login.Execute(ctx, auth.LoginInput{Email: "login@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.User, res.User)

	sub, err := f.tokens.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.String(), sub)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, signup("known@example.com"))
	require.NoError(t, err)

	res, err := f.login.Execute(ctx, auth.LoginInput{Email: "known@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
	assert.Nil(t, res)

	_, err = f.login.Execute(ctx, auth.LoginInput{Email: "unknown@example.com", Password: "whatever1"})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)
	require.ErrorIs(t, err, domerrors.ErrNotFound)

	_, err = f.login.Execute(ctx, auth.LoginInput{Email: "known@example.com"})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

var errBoom = errors.New("boom")

type failingOrgs struct{ ports.OrganisationRepository }

func (failingOrgs) AddMember(context.Context, domain.OrganisationID, domain.UserID) error {
	return errBoom
}

// failAddMember injects a failure into the last step of a transaction.
type failAddMember struct{ inner ports.Transactor }

func (f failAddMember) InTx(ctx context.Context, fn func(ctx context.Context, s ports.Stores) error) error {
	return f.inner.InTx(ctx, func(ctx context.Context, s ports.Stores) error {
		s.Organisations = failingOrgs{s.Organisations}
		return fn(ctx, s)
	})
}

func TestProvisionRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	provision := auth.NewProvisionUser(failAddMember{inner: f.store})

	_, err := provision.Execute(ctx, auth.ProvisionInput{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		PasswordHash: "hash",
		Phone:        "1",
	})
	require.ErrorIs(t, err, errBoom)

	u, err := f.store.Stores().Users.GetByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegisterRejectsPasswordsPastBcryptLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]string{
		"73 bytes multi-byte": strings.Repeat("é", 36) + "a",
		"100 characters":      strings.Repeat("p", 100),
	}
	for name, password := range cases {
		t.Run(name, func(t *testing.T) {
			in := signup(strings.ReplaceAll(name, " ", "-") + "@example.com")
			in.Password = password

			_, err := f.register.Execute(ctx, in)
			require.ErrorIs(t, err, domerrors.ErrValidation)
			var ve *domerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, "password", ve.Fields[0].Field)
			assert.Equal(t, `"password" length must be less than or equal to 72 bytes long`, ve.Fields[0].Message)

			u, err := f.store.Stores().Users.GetByEmail(ctx, in.Email)
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	}

	in := signup("edge@example.com")
	in.Password = strings.Repeat("p", 72)
	_, err := f.register.Execute(ctx, in)
	require.NoError(t, err)
}

func TestLoginRejectsShortPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.login.Execute(context.Background(), auth.LoginInput{Email: "ada@example.com", Password: "short"})
	require.ErrorIs(t, err, domerrors.ErrValidation)
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Fields[0].Field)
}
