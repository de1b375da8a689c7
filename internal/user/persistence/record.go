// Package persistence holds the write and read paths of the user slice:
// the stored record, its mapper, the lookup repository and the entity
// manager that performs upserts against a Store.
package persistence

import "time"

// timestampPrecision matches the finest resolution every backend keeps
// (PostgreSQL timestamptz stores microseconds).
const timestampPrecision = time.Microsecond

// Record is a user row as it lives in the store.
type Record struct {
	ID        int64
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNew reports whether the record has not been inserted yet.
func (r *Record) IsNew() bool {
	return r.ID == 0
}

// Stamp populates the timestamps for a write happening at now.
// CreatedAt is only set once. UpdatedAt always moves strictly forward,
// even when two writes land within the same clock tick.
func (r *Record) Stamp(now time.Time) {
	now = now.UTC().Truncate(timestampPrecision)

	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
		r.UpdatedAt = now
		return
	}

	if !now.After(r.UpdatedAt) {
		now = r.UpdatedAt.Add(timestampPrecision)
	}
	r.UpdatedAt = now
}
