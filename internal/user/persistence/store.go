package persistence

import (
	"context"
	"errors"
)

// Store errors.
var (
	// ErrEmailExists is returned by a Store when a write would give two
	// records the same email.
	ErrEmailExists = errors.New("email already exists")
	// ErrRecordNotFound is returned by Store.Update when the row is gone.
	ErrRecordNotFound = errors.New("user record not found")
)

// Store is the persistence boundary of the user slice.
//
// Lookups return (nil, nil) when nothing matches. Insert assigns the ID and
// both timestamps; Update refreshes UpdatedAt. Each write is committed
// before it returns.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*Record, error)
	FindUserByID(ctx context.Context, id int64) (*Record, error)
	InsertUser(ctx context.Context, rec *Record) error
	UpdateUser(ctx context.Context, rec *Record) error
}

// Invalidator is told which emails a successful write touched.
type Invalidator interface {
	InvalidateUsers(ctx context.Context, emails ...string) error
}
