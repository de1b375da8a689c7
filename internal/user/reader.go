// Package user is the business layer of the user slice. The Facade is the
// only type HTTP handlers and console commands talk to.
package user

import (
	"context"

	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/model"
	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Reader exposes user lookups.
type Reader interface {
	FindOneByEmail(ctx context.Context, email string) (*model.User, error)
}

type reader struct {
	repo    persistence.Repository
	metrics metrics.Recorder
}

// NewReader creates a Reader over repo.
func NewReader(repo persistence.Repository, recorder metrics.Recorder) Reader {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &reader{repo: repo, metrics: recorder}
}

// FindOneByEmail returns the user with the given email, or nil.
func (r *reader) FindOneByEmail(ctx context.Context, email string) (*model.User, error) {
	r.metrics.IncUserLookup()
	return r.repo.FindByEmail(ctx, email)
}
