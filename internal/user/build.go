package user

import (
	"log/slog"

	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Cache is a user cache that can also drop entries after writes.
type Cache interface {
	UserCache
	persistence.Invalidator
}

// Deps are the collaborators of the user slice.
type Deps struct {
	Store   persistence.Store
	Cache   Cache // optional
	Metrics metrics.Recorder
	Logger  *slog.Logger
}

// Build wires the repository, entity manager, reader and writer over
// d.Store and returns the facade.
func Build(d Deps) Facade {
	if d.Metrics == nil {
		d.Metrics = metrics.NewNoop()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	mapper := persistence.NewMapper()
	repo := persistence.NewRepository(d.Store, mapper)

	emOpts := []persistence.EntityManagerOption{persistence.WithLogger(d.Logger)}
	if d.Cache != nil {
		emOpts = append(emOpts, persistence.WithInvalidator(d.Cache))
	}
	em := persistence.NewEntityManager(d.Store, repo, mapper, emOpts...)

	var r Reader = NewReader(repo, d.Metrics)
	if d.Cache != nil {
		r = NewCachedReader(r, d.Cache, d.Metrics, d.Logger)
	}

	return NewFacade(r, NewWriter(repo, em, d.Metrics))
}
