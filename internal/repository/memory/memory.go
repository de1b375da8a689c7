// Package memory is an in-process user store for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/layerkit/layerkit/internal/user/persistence"
)

// Store implements persistence.Store on maps. Email uniqueness is enforced
// the same way the SQL backends enforce it.
type Store struct {
	mu      sync.RWMutex
	byID    map[int64]persistence.Record
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		byID:    make(map[int64]persistence.Record),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// FindUserByEmail returns a copy of the record with the given email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*persistence.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	rec := s.byID[id]
	return &rec, nil
}

// FindUserByID returns a copy of the record with the given id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*persistence.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// InsertUser stores rec under the next id.
func (s *Store) InsertUser(ctx context.Context, rec *persistence.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[rec.Email]; taken {
		return persistence.ErrEmailExists
	}

	rec.Stamp(s.now())
	s.nextID++
	rec.ID = s.nextID

	s.byID[rec.ID] = *rec
	s.byEmail[rec.Email] = rec.ID
	return nil
}

// UpdateUser replaces the stored row for rec.ID.
func (s *Store) UpdateUser(ctx context.Context, rec *persistence.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[rec.ID]
	if !ok {
		return persistence.ErrRecordNotFound
	}
	if owner, taken := s.byEmail[rec.Email]; taken && owner != rec.ID {
		return persistence.ErrEmailExists
	}

	rec.Stamp(s.now())

	delete(s.byEmail, old.Email)
	s.byID[rec.ID] = *rec
	s.byEmail[rec.Email] = rec.ID
	return nil
}

// Len reports how many users are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
