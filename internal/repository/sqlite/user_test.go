package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerkit/layerkit/internal/repository/sqlite"
	"github.com/layerkit/layerkit/internal/testutil"
	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Verify that *sqlite.Store implements persistence.Store at compile time.
var _ persistence.Store = (*sqlite.Store)(nil)

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := sqlite.New(context.Background(), dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file was not created")

	var fkEnabled int
	require.NoError(t, store.DB().QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled))
	assert.Equal(t, 1, fkEnabled)
}

func TestMigrateIdempotent(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	require.NoError(t, store.Migrate(context.Background()))
}

func TestStore_InsertUser(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	rec := &persistence.Record{Email: "test@example.com"}
	require.NoError(t, store.InsertUser(ctx, rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.True(t, rec.CreatedAt.Equal(rec.UpdatedAt))
}

func TestStore_InsertUser_DuplicateEmail(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertUser(ctx, &persistence.Record{Email: "dup@example.com"}))

	err := store.InsertUser(ctx, &persistence.Record{Email: "dup@example.com"})
	assert.ErrorIs(t, err, persistence.ErrEmailExists)
}

func TestStore_FindUserByID(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	rec := &persistence.Record{Email: "byid@example.com"}
	require.NoError(t, store.InsertUser(ctx, rec))

	found, err := store.FindUserByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, rec.Email, found.Email)
	assert.True(t, rec.CreatedAt.Equal(found.CreatedAt), "created_at %v != %v", rec.CreatedAt, found.CreatedAt)
	assert.True(t, rec.UpdatedAt.Equal(found.UpdatedAt))
}

func TestStore_FindUserByID_NotFound(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	found, err := store.FindUserByID(context.Background(), 99999)

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_FindUserByEmail(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	rec := &persistence.Record{Email: "byemail@example.com"}
	require.NoError(t, store.InsertUser(ctx, rec))

	found, err := store.FindUserByEmail(ctx, "byemail@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
}

func TestStore_FindUserByEmail_NotFound(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	found, err := store.FindUserByEmail(context.Background(), "nonexistent@example.com")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_UpdateUser(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	rec := &persistence.Record{Email: "before@example.com"}
	require.NoError(t, store.InsertUser(ctx, rec))
	created, updated := rec.CreatedAt, rec.UpdatedAt

	rec.Email = "after@example.com"
	require.NoError(t, store.UpdateUser(ctx, rec))

	found, err := store.FindUserByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "after@example.com", found.Email)
	assert.True(t, found.CreatedAt.Equal(created))
	assert.True(t, found.UpdatedAt.After(updated))
}

func TestStore_UpdateUser_Missing(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	err := store.UpdateUser(context.Background(), &persistence.Record{ID: 12345, Email: "ghost@example.com"})

	assert.ErrorIs(t, err, persistence.ErrRecordNotFound)
}

func TestStore_UpdateUser_EmailTaken(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	a := &persistence.Record{Email: "a@example.com"}
	b := &persistence.Record{Email: "b@example.com"}
	require.NoError(t, store.InsertUser(ctx, a))
	require.NoError(t, store.InsertUser(ctx, b))

	b.Email = "a@example.com"
	err := store.UpdateUser(ctx, b)
	assert.ErrorIs(t, err, persistence.ErrEmailExists)
}
