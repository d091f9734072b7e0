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
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

const userColumns = `id, first_name, last_name, email, password_hash, phone, created_at`

type UserRepository struct {
	db dbtx
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.UUID == (uuid.UUID{}) {
		user.ID = domain.NewUserID(uuid.New())
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID.String(),
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user: %w", domerrors.ErrConstraintViolation)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID.String())
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// scanUser returns nil, nil when the row does not exist.
func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		id        string
		createdAt int64
		u         domain.User
	)
	err := row.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ID, err = domain.ParseUserID(id)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", id, err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
