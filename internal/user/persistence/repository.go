package persistence

import (
	"context"
	"fmt"

	"github.com/layerkit/layerkit/internal/model"
)

// Repository runs user lookups against a Store.
type Repository interface {
	// FindByEmail returns the mapped user or nil when no record matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindRecordByID returns the raw record or nil when no record matches.
	FindRecordByID(ctx context.Context, id int64) (*Record, error)
}

type repository struct {
	store  Store
	mapper *Mapper
}

// NewRepository creates a Repository backed by store.
func NewRepository(store Store, mapper *Mapper) Repository {
	return &repository{store: store, mapper: mapper}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	rec, err := r.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return r.mapper.ToTransfer(rec), nil
}

func (r *repository) FindRecordByID(ctx context.Context, id int64) (*Record, error) {
	rec, err := r.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return rec, nil
}
