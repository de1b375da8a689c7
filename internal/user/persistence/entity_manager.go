package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/layerkit/layerkit/internal/model"
)

// EntityManager performs the single-shot user upsert.
type EntityManager interface {
	Persist(ctx context.Context, u *model.User) (*model.User, error)
}

// EntityManagerOption configures an entity manager.
type EntityManagerOption func(*entityManager)

// WithInvalidator registers a hook that is told about the emails touched
// by every successful write.
func WithInvalidator(inv Invalidator) EntityManagerOption {
	return func(em *entityManager) {
		em.invalidator = inv
	}
}

// WithLogger sets the logger used for non-fatal invalidation failures.
func WithLogger(logger *slog.Logger) EntityManagerOption {
	return func(em *entityManager) {
		em.logger = logger
	}
}

type entityManager struct {
	store       Store
	repo        Repository
	mapper      *Mapper
	invalidator Invalidator
	logger      *slog.Logger
}

// NewEntityManager creates an EntityManager writing through store.
func NewEntityManager(store Store, repo Repository, mapper *Mapper, opts ...EntityManagerOption) EntityManager {
	em := &entityManager{
		store:  store,
		repo:   repo,
		mapper: mapper,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(em)
	}
	return em
}

// Persist inserts or updates the user and returns the stored state.
func (em *entityManager) Persist(ctx context.Context, u *model.User) (*model.User, error) {
	if !u.HasEmail() && !u.HasID() {
		return nil, errEmailOrIDRequired
	}

	var existing *Record
	if u.HasID() {
		rec, err := em.repo.FindRecordByID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		// A stale id leaves existing nil and the user is inserted afresh.
		existing = rec
	}

	if existing == nil && !u.HasEmail() {
		return nil, errEmailRequiredForNew
	}

	previousEmail := ""
	if existing != nil {
		previousEmail = existing.Email
	}

	rec := em.mapper.ToRecord(u, existing)

	if rec.IsNew() {
		if err := em.store.InsertUser(ctx, rec); err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
	} else {
		if err := em.store.UpdateUser(ctx, rec); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	em.invalidate(ctx, previousEmail, rec.Email)

	return em.mapper.ToTransfer(rec), nil
}

func (em *entityManager) invalidate(ctx context.Context, emails ...string) {
	if em.invalidator == nil {
		return
	}

	keys := make([]string, 0, len(emails))
	for _, email := range emails {
		if email != "" {
			keys = append(keys, email)
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := em.invalidator.InvalidateUsers(ctx, keys...); err != nil {
		em.logger.Warn("failed to invalidate cached users",
			slog.Any("emails", keys),
			slog.String("error", err.Error()),
		)
	}
}
