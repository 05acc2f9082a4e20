package expiry

import (
	"math"
	"time"

	"github.com/eternalApril/lunakv/internal/clock"
	"github.com/eternalApril/lunakv/internal/storage"
)

// Status describes the TTL state of a key
type Status int

const (
	// NotFound means that the key does not exist
	NotFound Status = -2
	// NoTimeout means that the key exists, but it does not have a TTL
	NoTimeout Status = -1
	// Active means that the key has an active lifetime
	Active Status = 1
)

// Manager applies TTL rules to entities inside a storage transaction.
// Eviction is lazy: an expired key is deleted the next time it is touched
type Manager struct {
	clock clock.Clock
}

// NewManager creates a Manager that reads time from c
func NewManager(c clock.Clock) *Manager {
	return &Manager{clock: c}
}

// Now returns the current time in unix nanoseconds
func (m *Manager) Now() int64 {
	return m.clock.Now().UnixNano()
}

// Deadline returns the absolute expiry for a positive ttl starting now.
// Deadlines past the int64 range saturate at math.MaxInt64
func (m *Manager) Deadline(ttl time.Duration) int64 {
	now := m.Now()
	if int64(ttl) > math.MaxInt64-now {
		return math.MaxInt64
	}
	return now + int64(ttl)
}

// CheckAndEvict reports whether key is live, deleting it if its TTL has passed
func (m *Manager) CheckAndEvict(tx storage.Tx, key string) bool {
	_, ok := m.Lookup(tx, key)
	return ok
}

// Lookup returns the live entity at key. Expired entities are deleted and reported absent
func (m *Manager) Lookup(tx storage.Tx, key string) (*storage.Entity, bool) {
	e, ok := tx.Get(key)
	if !ok {
		return nil, false
	}

	if e.Expired(m.Now()) {
		tx.Delete(key)
		return nil, false
	}

	return e, true
}

// SetExpiry sets a TTL on an existing key. A non-positive ttl deletes the key.
// Returns false if the key does not exist
func (m *Manager) SetExpiry(tx storage.Tx, key string, ttl time.Duration) bool {
	e, ok := m.Lookup(tx, key)
	if !ok {
		return false
	}

	if ttl <= 0 {
		tx.Delete(key)
		return true
	}

	e.ExpireAt = m.Deadline(ttl)
	tx.Set(key, e)
	return true
}

// TTL returns the remaining lifetime and status as Status
func (m *Manager) TTL(tx storage.Tx, key string) (time.Duration, Status) {
	e, ok := m.Lookup(tx, key)
	if !ok {
		return 0, NotFound
	}

	if e.ExpireAt == 0 {
		return 0, NoTimeout
	}

	return time.Duration(e.ExpireAt - m.Now()), Active
}

// Persist removes the expiration date of the key, making it eternal.
// Returns false if the key was not found or had no TTL
func (m *Manager) Persist(tx storage.Tx, key string) bool {
	e, ok := m.Lookup(tx, key)
	if !ok || e.ExpireAt == 0 {
		return false
	}

	e.ExpireAt = 0
	tx.Set(key, e)
	return true
}
