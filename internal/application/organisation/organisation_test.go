package organisation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/application/organisation"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/sqlite"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/storetest"
)

func newStore(t *testing.T) (*sqlite.Store, ports.Stores) {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, store.Stores()
}

func seedUser(t *testing.T, s ports.Stores, email string) *domain.User {
	t.Helper()
	u := storetest.NewUser(email)
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func TestCreateOrganisationAddsCaller(t *testing.T) {
	store, s := newStore(t)
	ctx := context.Background()
	caller := seedUser(t, s, "owner@example.com")
	desc := "a place"

	org, err := organisation.NewCreateOrganisation(store).Execute(ctx, caller.ID, organisation.CreateOrganisationInput{
		Name:        "Acme",
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)

	list, err := organisation.NewListOrganisations(s.Organisations).Execute(ctx, caller.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, org.ID, list[0].ID)
	require.NotNil(t, list[0].Description)
	assert.Equal(t, "a place", *list[0].Description)
}

func TestCreateOrganisationValidation(t *testing.T) {
	store, s := newStore(t)
	caller := seedUser(t, s, "v@example.com")
	uc := organisation.NewCreateOrganisation(store)

	_, err := uc.Execute(context.Background(), caller.ID, organisation.CreateOrganisationInput{})
	require.ErrorIs(t, err, domerrors.ErrValidation)

	_, err = uc.Execute(context.Background(), caller.ID, organisation.CreateOrganisationInput{Name: strings.Repeat("x", 256)})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestCreateOrganisationForUnknownCallerLeavesNoOrphan(t *testing.T) {
	store, s := newStore(t)
	ghost := domain.NewUserID(uuid.New())

	_, err := organisation.NewCreateOrganisation(store).Execute(context.Background(), ghost, organisation.CreateOrganisationInput{Name: "Orphan"})
	require.Error(t, err)

	list, err := s.Organisations.ListForUser(context.Background(), ghost)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddMember(t *testing.T) {
	store, s := newStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	member := seedUser(t, s, "member@example.com")
	org, err := organisation.NewCreateOrganisation(store).Execute(ctx, owner.ID, organisation.CreateOrganisationInput{Name: "Team"})
	require.NoError(t, err)

	uc := organisation.NewAddMember(s.Organisations, s.Users)
	in := organisation.AddMemberInput{OrgID: org.ID.String(), UserID: member.ID.String()}
	require.NoError(t, uc.Execute(ctx, in))
	require.NoError(t, uc.Execute(ctx, in))

	list, err := s.Organisations.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, org.ID, list[0].ID)
}

func TestAddMemberMissingSides(t *testing.T) {
	store, s := newStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	member := seedUser(t, s, "member@example.com")
	org, err := organisation.NewCreateOrganisation(store).Execute(ctx, owner.ID, organisation.CreateOrganisationInput{Name: "Team"})
	require.NoError(t, err)
	uc := organisation.NewAddMember(s.Organisations, s.Users)

	err = uc.Execute(ctx, organisation.AddMemberInput{OrgID: uuid.NewString(), UserID: member.ID.String()})
	require.ErrorIs(t, err, domerrors.ErrOrganisationNotFound)
	require.ErrorIs(t, err, domerrors.ErrNotFound)

	err = uc.Execute(ctx, organisation.AddMemberInput{OrgID: org.ID.String(), UserID: uuid.NewString()})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)

	list, err := s.Organisations.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = uc.Execute(ctx, organisation.AddMemberInput{OrgID: "nope", UserID: member.ID.String()})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestGetOrganisation(t *testing.T) {
	store, s := newStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	org, err := organisation.NewCreateOrganisation(store).Execute(ctx, owner.ID, organisation.CreateOrganisationInput{Name: "Found"})
	require.NoError(t, err)
	uc := organisation.NewGetOrganisation(s.Organisations)

	got, err := uc.Execute(ctx, org.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Found", got.Name)

	_, err = uc.Execute(ctx, uuid.NewString())
	require.ErrorIs(t, err, domerrors.ErrOrganisationNotFound)

	_, err = uc.Execute(ctx, "123")
	require.ErrorIs(t, err, domerrors.ErrValidation)
}
