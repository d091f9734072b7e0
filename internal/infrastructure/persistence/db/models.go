package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}

type Organisation struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	CreatedAt   time.Time
}

type UserOrganisation struct {
	UserID    uuid.UUID
	OrgID     uuid.UUID
	CreatedAt time.Time
}
