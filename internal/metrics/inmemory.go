package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated    uint64
	UsersUpdated    uint64
	UserLookups     uint64
	UserCacheHits   uint64
	UserCacheMisses uint64
}

// InMemoryRecorder keeps counters in process memory. It backs the
// /metrics endpoint and is used directly in tests.
type InMemoryRecorder struct {
	usersCreated    atomic.Uint64
	usersUpdated    atomic.Uint64
	userLookups     atomic.Uint64
	userCacheHits   atomic.Uint64
	userCacheMisses atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:    m.usersCreated.Load(),
		UsersUpdated:    m.usersUpdated.Load(),
		UserLookups:     m.userLookups.Load(),
		UserCacheHits:   m.userCacheHits.Load(),
		UserCacheMisses: m.userCacheMisses.Load(),
	}
}

// IncUserCreated increments the created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	m.usersCreated.Add(1)
}

// IncUserUpdated increments the updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	m.usersUpdated.Add(1)
}

// IncUserLookup increments the lookup counter.
func (m *InMemoryRecorder) IncUserLookup() {
	m.userLookups.Add(1)
}

// IncUserCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	m.userCacheHits.Add(1)
}

// IncUserCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.userCacheMisses.Add(1)
}
