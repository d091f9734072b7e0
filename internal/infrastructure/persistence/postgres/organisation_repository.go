package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/db"
)

type OrganisationRepository struct {
	q *db.Queries
}

func NewOrganisationRepository(q *db.Queries) *OrganisationRepository {
	return &OrganisationRepository{q: q}
}

func (r *OrganisationRepository) Create(ctx context.Context, org *domain.Organisation) error {
	if org.ID.UUID == (uuid.UUID{}) {
		org.ID = domain.NewOrganisationID(uuid.New())
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	var description pgtype.Text
	if org.Description != nil {
		description = pgtype.Text{String: *org.Description, Valid: true}
	}
	_, err := r.q.CreateOrganisation(ctx, db.CreateOrganisationParams{
		ID:          org.ID.UUID,
		Name:        org.Name,
		Description: description,
		CreatedAt:   org.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create organisation: %w", err)
	}
	return nil
}

func (r *OrganisationRepository) AddMember(ctx context.Context, orgID domain.OrganisationID, userID domain.UserID) error {
	err := r.q.AddUserToOrganisation(ctx, db.AddUserToOrganisationParams{
		UserID:    userID.UUID,
		OrgID:     orgID.UUID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("add organisation member: %w", err)
	}
	return nil
}

func (r *OrganisationRepository) GetByID(ctx context.Context, orgID domain.OrganisationID) (*domain.Organisation, error) {
	o, err := r.q.GetOrganisationByID(ctx, orgID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organisation: %w", err)
	}
	return dbOrganisationToDomain(o), nil
}

func (r *OrganisationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Organisation, error) {
	list, err := r.q.ListOrganisationsForUser(ctx, userID.UUID)
	if err != nil {
		return nil, fmt.Errorf("list organisations for user: %w", err)
	}
	out := make([]*domain.Organisation, 0, len(list))
	for _, o := range list {
		out = append(out, dbOrganisationToDomain(o))
	}
	return out, nil
}

func dbOrganisationToDomain(o db.Organisation) *domain.Organisation {
	org := &domain.Organisation{
		ID:        domain.NewOrganisationID(o.ID),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}
	if o.Description.Valid {
		d := o.Description.String
		org.Description = &d
	}
	return org
}

var _ ports.OrganisationRepository = (*OrganisationRepository)(nil)
