// Package storetest holds behaviour shared by every ports.Stores backend.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// Factory returns empty stores and a transactor over the same backend.
type Factory func(t *testing.T) (ports.Stores, ports.Transactor)

// Run exercises the repository contract against a backend.
func Run(t *testing.T, newStores Factory) {
	t.Run("CreateAndLookupUser", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		u := NewUser("ada@example.com")
		require.NoError(t, s.Users.Create(ctx, u))

		byEmail, err := s.Users.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)
		assert.Equal(t, "0123456789", byEmail.Phone)

		byID, err := s.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "ada@example.com", byID.Email)
	})

	t.Run("MissingLookupsReturnNil", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()

		u, err := s.Users.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = s.Users.GetByID(ctx, domain.NewUserID(uuid.New()))
		require.NoError(t, err)
		assert.Nil(t, u)

		org, err := s.Organisations.GetByID(ctx, domain.NewOrganisationID(uuid.New()))
		require.NoError(t, err)
		assert.Nil(t, org)
	})

	t.Run("DuplicateEmailIsConstraintViolation", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		require.NoError(t, s.Users.Create(ctx, NewUser("dup@example.com")))

		err := s.Users.Create(ctx, NewUser("dup@example.com"))
		require.ErrorIs(t, err, domerrors.ErrConstraintViolation)
	})

	t.Run("EmailIsCaseSensitive", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		require.NoError(t, s.Users.Create(ctx, NewUser("Case@example.com")))
		require.NoError(t, s.Users.Create(ctx, NewUser("case@example.com")))

		u, err := s.Users.GetByEmail(ctx, "CASE@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("OrganisationMembership", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		u := NewUser("grace@example.com")
		require.NoError(t, s.Users.Create(ctx, u))

		desc := "compilers"
		withDesc := &domain.Organisation{Name: "Navy", Description: &desc}
		bare := &domain.Organisation{Name: "Harvard"}
		require.NoError(t, s.Organisations.Create(ctx, withDesc))
		require.NoError(t, s.Organisations.Create(ctx, bare))
		require.NotEqual(t, uuid.UUID{}, withDesc.ID.UUID)

		got, err := s.Organisations.GetByID(ctx, withDesc.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.Description)
		assert.Equal(t, "compilers", *got.Description)

		got, err = s.Organisations.GetByID(ctx, bare.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Description)

		list, err := s.Organisations.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)

		require.NoError(t, s.Organisations.AddMember(ctx, withDesc.ID, u.ID))
		require.NoError(t, s.Organisations.AddMember(ctx, bare.ID, u.ID))

		list, err = s.Organisations.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Navy", "Harvard"}, names(list))
	})

	t.Run("AddMemberIsIdempotent", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		u := NewUser("linus@example.com")
		require.NoError(t, s.Users.Create(ctx, u))
		org := &domain.Organisation{Name: "Kernel"}
		require.NoError(t, s.Organisations.Create(ctx, org))

		require.NoError(t, s.Organisations.AddMember(ctx, org.ID, u.ID))
		require.NoError(t, s.Organisations.AddMember(ctx, org.ID, u.ID))

		list, err := s.Organisations.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("AddMemberRequiresBothSides", func(t *testing.T) {
		s, _ := newStores(t)
		ctx := context.Background()
		org := &domain.Organisation{Name: "Orphans"}
		require.NoError(t, s.Organisations.Create(ctx, org))

		err := s.Organisations.AddMember(ctx, org.ID, domain.NewUserID(uuid.New()))
		require.Error(t, err)
	})

	t.Run("TransactionCommits", func(t *testing.T) {
		s, tx := newStores(t)
		ctx := context.Background()
		u := NewUser("commit@example.com")
		org := &domain.Organisation{Name: "Committed"}

		err := tx.InTx(ctx, func(ctx context.Context, ts ports.Stores) error {
			if err := ts.Users.Create(ctx, u); err != nil {
				return err
			}
			if err := ts.Organisations.Create(ctx, org); err != nil {
				return err
			}
			return ts.Organisations.AddMember(ctx, org.ID, u.ID)
		})
		require.NoError(t, err)

		list, err := s.Organisations.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Committed"}, names(list))
	})

	t.Run("TransactionRollsBack", func(t *testing.T) {
		s, tx := newStores(t)
		ctx := context.Background()
		u := NewUser("rollback@example.com")
		org := &domain.Organisation{Name: "Doomed"}
		boom := errors.New("boom")

		err := tx.InTx(ctx, func(ctx context.Context, ts ports.Stores) error {
			if err := ts.Users.Create(ctx, u); err != nil {
				return err
			}
			if err := ts.Organisations.Create(ctx, org); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := s.Users.GetByEmail(ctx, "rollback@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
		gotOrg, err := s.Organisations.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Nil(t, gotOrg)
	})
}

// NewUser returns an unsaved user with a placeholder hash.
func NewUser(email string) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholderplacehol",
		Phone:        "0123456789",
	}
}

func names(orgs []*domain.Organisation) []string {
	out := make([]string, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, o.Name)
	}
	return out
}
