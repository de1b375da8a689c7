package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerkit/layerkit/internal/config"
	"github.com/layerkit/layerkit/internal/model"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "app.db"),
		UserCacheTTL:   time.Minute,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, sqliteConfig(t), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Migrate(ctx))
	require.NoError(t, a.Database().Ping(ctx))
	assert.Nil(t, a.Cache())

	created, err := a.Users.PersistUser(ctx, &model.User{Email: "app@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := a.Users.FindOneByEmail(ctx, "app@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	snap := a.Metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.UsersCreated)
	assert.Equal(t, uint64(1), snap.UserLookups)
}

func TestNew_MigrateTwice(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, sqliteConfig(t), discardLogger())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Migrate(ctx))
	require.NoError(t, a.Migrate(ctx))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, err := New(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestNew_BadRedisURLClosesDatabase(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.RedisURL = "not-a-redis-url"

	_, err := New(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestClose_Idempotent(t *testing.T) {
	a, err := New(context.Background(), sqliteConfig(t), discardLogger())
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
