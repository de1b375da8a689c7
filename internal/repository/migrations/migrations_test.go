package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/layerkit/layerkit/internal/repository/migrations"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDialectFiles(t *testing.T) {
	for _, d := range []migrations.Dialect{migrations.Postgres, migrations.SQLite} {
		t.Run(d.Name, func(t *testing.T) {
			names, err := d.Files()
			require.NoError(t, err)
			require.NotEmpty(t, names)
			assert.Equal(t, "0001_users.sql", names[0])
		})
	}
}

func TestRun_AppliesAndRecords(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, migrations.Run(ctx, db, migrations.SQLite))

	names, err := migrations.SQLite.Files()
	require.NoError(t, err)

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, len(names), applied)

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (email, created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		"m@example.com")
	require.NoError(t, err)
}

func TestRun_Idempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, migrations.Run(ctx, db, migrations.SQLite))
	require.NoError(t, migrations.Run(ctx, db, migrations.SQLite))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	names, err := migrations.SQLite.Files()
	require.NoError(t, err)
	assert.Equal(t, len(names), applied)
}

func TestRun_UniqueEmail(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, migrations.Run(ctx, db, migrations.SQLite))

	insert := "INSERT INTO users (email, created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)"
	_, err := db.ExecContext(ctx, insert, "same@example.com")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "same@example.com")
	assert.Error(t, err)
}
