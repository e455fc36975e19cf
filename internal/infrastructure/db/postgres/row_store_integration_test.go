//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/security"
)

// setupTestDatabase starts a PostgreSQL container and returns an open, migrated DB.
func setupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := testcontainers.NewDockerClientWithOpts(ctx); err != nil {
		t.Skipf("Skipping integration test because Docker is unavailable: %v", err)
	}

	container, err := tcpostgres.Run(ctx, "postgres:17",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestIntegration_PasswordUpdate_RoundTrip(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()
	store := NewRowStore(db)

	require.NoError(t, store.ReplaceTable(ctx, "Users", [][]string{
		{"id", "email", "password_hash"},
		{"1", "Alice@X.com", "oldhash"},
		{"2", "bob@x.com", "bobhash"},
	}))

	hasher := security.NewSHA256Hasher()
	u := credentials.NewUpdater(store, hasher, "Users")

	res := u.Update(ctx, credentials.UpdateRequest{Email: "alice@x.com", NewPassword: "newpw"})
	require.True(t, res.OK(), "%+v", res)

	tbl, err := store.Table(ctx, "Users")
	require.NoError(t, err)
	rows, err := tbl.ReadAllRows(ctx)
	require.NoError(t, err)

	want, _ := hasher.Hash("alice@x.com", "newpw")
	assert.Equal(t, []string{"1", "Alice@X.com", want}, rows[1])
	assert.Equal(t, []string{"2", "bob@x.com", "bobhash"}, rows[2])

	res = u.Update(ctx, credentials.UpdateRequest{Email: "nobody@x.com", NewPassword: "pw"})
	assert.Equal(t, credentials.KindNotFound, res.Kind)
}
