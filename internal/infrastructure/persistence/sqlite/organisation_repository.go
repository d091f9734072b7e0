package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

type OrganisationRepository struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrganisationRepository) Create(ctx context.Context, org *domain.Organisation) error {
	if org.ID.UUID == (uuid.UUID{}) {
		org.ID = domain.NewOrganisationID(uuid.New())
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	var description sql.NullString
	if org.Description != nil {
		description = sql.NullString{String: *org.Description, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organisations (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		org.ID.String(),
		org.Name,
		description,
		toMillis(org.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create organisation: %w", err)
	}
	return nil
}

func (r *OrganisationRepository) AddMember(ctx context.Context, orgID domain.OrganisationID, userID domain.UserID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_organisations (user_id, org_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, org_id) DO NOTHING`,
		userID.String(),
		orgID.String(),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("add organisation member: %w", err)
	}
	return nil
}

func (r *OrganisationRepository) GetByID(ctx context.Context, orgID domain.OrganisationID) (*domain.Organisation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM organisations WHERE id = ?`,
		orgID.String(),
	)
	org, err := scanOrganisation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organisation: %w", err)
	}
	return org, nil
}

func (r *OrganisationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Organisation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.name, o.description, o.created_at
		 FROM organisations o
		 INNER JOIN user_organisations uo ON uo.org_id = o.id
		 WHERE uo.user_id = ?`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list organisations for user: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Organisation, 0)
	for rows.Next() {
		org, err := scanOrganisation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		out = append(out, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organisations: %w", err)
	}
	return out, nil
}

func scanOrganisation(row rowScanner) (*domain.Organisation, error) {
	var (
		id          string
		description sql.NullString
		createdAt   int64
		org         domain.Organisation
	)
	if err := row.Scan(&id, &org.Name, &description, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseOrganisationID(id)
	if err != nil {
		return nil, fmt.Errorf("parse organisation id %q: %w", id, err)
	}
	org.ID = parsed
	if description.Valid {
		d := description.String
		org.Description = &d
	}
	org.CreatedAt = fromMillis(createdAt)
	return &org, nil
}

var _ ports.OrganisationRepository = (*OrganisationRepository)(nil)
