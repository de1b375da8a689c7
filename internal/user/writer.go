package user

import (
	"context"

	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/model"
	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Writer exposes user upserts.
type Writer interface {
	PersistUser(ctx context.Context, u *model.User) (*model.User, error)
}

type writer struct {
	repo    persistence.Repository
	em      persistence.EntityManager
	metrics metrics.Recorder
}

// NewWriter creates a Writer. Email is the merge key: a transfer whose
// email is already stored updates that row, whatever ID it carried.
func NewWriter(repo persistence.Repository, em persistence.EntityManager, recorder metrics.Recorder) Writer {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &writer{repo: repo, em: em, metrics: recorder}
}

// PersistUser inserts or updates u. The caller's value is not modified.
func (w *writer) PersistUser(ctx context.Context, u *model.User) (*model.User, error) {
	in := u.Clone()

	if in.HasEmail() {
		existing, err := w.repo.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			in.ID = existing.ID
		}
	}

	out, err := w.em.Persist(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.HasID() && out.ID == in.ID {
		w.metrics.IncUserUpdated()
	} else {
		w.metrics.IncUserCreated()
	}

	return out, nil
}
