package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/storetest"
)

// Set TEST_DATABASE_URL to a disposable database to run these tests.
func TestStoreContract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, dsn, "")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(pool))

	storetest.Run(t, func(t *testing.T) (ports.Stores, ports.Transactor) {
		_, err := pool.Exec(ctx, `TRUNCATE user_organisations, organisations, users`)
		require.NoError(t, err)
		return postgres.NewStores(pool), postgres.NewTransactor(pool)
	})
}

func TestConnectRejectsBadCA(t *testing.T) {
	_, err := postgres.Connect(context.Background(), "postgres://u:p@localhost:5432/db", "not a pem")
	require.Error(t, err)
}
