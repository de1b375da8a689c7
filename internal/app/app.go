// Package app opens the configured backends and wires the user slice over
// them. Both the HTTP server and the console build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/layerkit/layerkit/internal/cache"
	"github.com/layerkit/layerkit/internal/config"
	"github.com/layerkit/layerkit/internal/logging"
	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/repository"
	"github.com/layerkit/layerkit/internal/repository/sqlite"
	"github.com/layerkit/layerkit/internal/server"
	"github.com/layerkit/layerkit/internal/user"
	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Pinger is satisfied by every backend that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// database is what App needs from a store backend.
type database interface {
	persistence.Store
	Pinger
	Migrate(ctx context.Context) error
}

// App holds the opened backends and the user facade built over them.
type App struct {
	Users   user.Facade
	Metrics *metrics.InMemoryRecorder

	db      database
	cache   *cache.Cache
	closers []namedCloser
	logger  *slog.Logger
}

type namedCloser struct {
	name string
	fn   func() error
}

// New opens the database selected by cfg.DatabaseDriver and, when
// configured, the Redis lookup cache. Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Metrics: metrics.NewInMemory(),
		logger:  logger,
	}

	db, closeDB, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %s", cfg.DatabaseDriver, logging.SanitizeError(err, cfg.DatabaseURL))
	}
	a.db = db
	a.closers = append(a.closers, namedCloser{name: "database", fn: closeDB})
	logger.Info("connected to database", "driver", cfg.DatabaseDriver, "url", logging.RedactURL(cfg.DatabaseURL))

	deps := user.Deps{Store: db, Metrics: a.Metrics, Logger: logger}

	if cfg.CacheEnabled() {
		c, err := cache.New(ctx, cfg.RedisURL, cfg.UserCacheTTL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("connect to redis: %s", logging.SanitizeError(err, cfg.RedisURL))
		}
		a.cache = c
		a.closers = append(a.closers, namedCloser{name: "cache", fn: c.Close})
		deps.Cache = c
		logger.Info("connected to redis", "url", logging.RedactURL(cfg.RedisURL), "ttl", cfg.UserCacheTTL)
	}

	a.Users = user.Build(deps)
	return a, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (database, func() error, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { repo.Close(); return nil }, nil
	case config.DriverSQLite:
		store, err := sqlite.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", cfg.DatabaseDriver)
	}
}

// Migrate applies pending schema migrations to the database.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.logger.Info("migrations applied")
	return nil
}

// Database returns the opened store for readiness checks.
func (a *App) Database() Pinger {
	return a.db
}

// Cache returns the lookup cache, or nil when it is disabled.
func (a *App) Cache() Pinger {
	if a.cache == nil {
		return nil
	}
	return a.cache
}

// RegisterShutdown hands every backend to srv so it is closed after the
// HTTP server stops. Close must not be called as well.
func (a *App) RegisterShutdown(srv *server.Server) {
	for _, c := range a.closers {
		fn := c.fn
		srv.OnShutdown(c.name, func(context.Context) error { return fn() })
	}
	a.closers = nil
}

// Close releases backends in reverse opening order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].fn(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", a.closers[i].name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
