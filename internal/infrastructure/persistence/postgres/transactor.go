package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/db"
)

const uniqueViolationCode = "23505"

// Transactor implements ports.Transactor on a pgx pool.
type Transactor struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool, q: db.New(pool)}
}

func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, s ports.Stores) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(ctx, storesFor(t.q.WithTx(tx)))
	})
}

// NewStores returns repositories bound to the pool (autocommit per statement).
func NewStores(pool *pgxpool.Pool) ports.Stores {
	return storesFor(db.New(pool))
}

func storesFor(q *db.Queries) ports.Stores {
	return ports.Stores{
		Users:         NewUserRepository(q),
		Organisations: NewOrganisationRepository(q),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

var _ ports.Transactor = (*Transactor)(nil)
