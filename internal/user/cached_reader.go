package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/layerkit/layerkit/internal/cache"
	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/model"
)

// UserCache stores users keyed by email.
type UserCache interface {
	// GetUser returns cache.ErrCacheMiss when the email is not cached.
	GetUser(ctx context.Context, email string) (*model.User, error)
	SetUser(ctx context.Context, u *model.User) error
}

type cachedReader struct {
	next    Reader
	cache   UserCache
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewCachedReader wraps next with a read-through cache. Cache errors are
// logged and the lookup falls through to next.
func NewCachedReader(next Reader, c UserCache, recorder metrics.Recorder, logger *slog.Logger) Reader {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedReader{next: next, cache: c, metrics: recorder, logger: logger}
}

func (r *cachedReader) FindOneByEmail(ctx context.Context, email string) (*model.User, error) {
	cached, err := r.cache.GetUser(ctx, email)
	switch {
	case err == nil:
		r.metrics.IncUserCacheHit()
		return cached, nil
	case errors.Is(err, cache.ErrCacheMiss):
		r.metrics.IncUserCacheMiss()
	default:
		r.metrics.IncUserCacheMiss()
		r.logger.Warn("user cache read failed", slog.String("error", err.Error()))
	}

	u, err := r.next.FindOneByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
	}

	if err := r.cache.SetUser(ctx, u); err != nil {
		r.logger.Warn("user cache write failed", slog.String("error", err.Error()))
	}
	return u, nil
}
