package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrganisation = `-- name: CreateOrganisation :one
INSERT INTO organisations (id, name, description, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, created_at
`

type CreateOrganisationParams struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	CreatedAt   time.Time
}

func (q *Queries) CreateOrganisation(ctx context.Context, arg CreateOrganisationParams) (Organisation, error) {
	row := q.db.QueryRow(ctx, createOrganisation,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.CreatedAt,
	)
	var i Organisation
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const getOrganisationByID = `-- name: GetOrganisationByID :one
SELECT id, name, description, created_at
FROM organisations
WHERE id = $1
`

func (q *Queries) GetOrganisationByID(ctx context.Context, id uuid.UUID) (Organisation, error) {
	row := q.db.QueryRow(ctx, getOrganisationByID, id)
	var i Organisation
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const addUserToOrganisation = `-- name: AddUserToOrganisation :exec
INSERT INTO user_organisations (user_id, org_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, org_id) DO NOTHING
`

type AddUserToOrganisationParams struct {
	UserID    uuid.UUID
	OrgID     uuid.UUID
	CreatedAt time.Time
}

func (q *Queries) AddUserToOrganisation(ctx context.Context, arg AddUserToOrganisationParams) error {
	_, err := q.db.Exec(ctx, addUserToOrganisation, arg.UserID, arg.OrgID, arg.CreatedAt)
	return err
}

const listOrganisationsForUser = `-- name: ListOrganisationsForUser :many
SELECT o.id, o.name, o.description, o.created_at
FROM organisations o
INNER JOIN user_organisations uo ON uo.org_id = o.id
WHERE uo.user_id = $1
`

func (q *Queries) ListOrganisationsForUser(ctx context.Context, userID uuid.UUID) ([]Organisation, error) {
	rows, err := q.db.Query(ctx, listOrganisationsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Organisation
	for rows.Next() {
		var i Organisation
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
