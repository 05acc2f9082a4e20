package engine

import (
	"time"

	"github.com/eternalApril/lunakv/internal/expiry"
	"github.com/eternalApril/lunakv/internal/storage"
)

// Delete removes the given keys and returns how many of them existed
func (e *Engine) Delete(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
			if e.expiry.CheckAndEvict(tx, key) && tx.Delete(key) {
				deleted++
			}
			return nil
		})
	}
	return deleted
}

// HasKey reports whether key exists and has not expired
func (e *Engine) HasKey(key string) bool {
	var ok bool
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		ok = e.expiry.CheckAndEvict(tx, key)
		return nil
	})
	return ok
}

// Expire sets a TTL on key. A non-positive ttl deletes the key right away.
// Returns false if the key does not exist
func (e *Engine) Expire(key string, ttl time.Duration) bool {
	var ok bool
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		ok = e.expiry.SetExpiry(tx, key, ttl)
		return nil
	})
	return ok
}

// TTL returns the remaining lifetime of key and its status
func (e *Engine) TTL(key string) (time.Duration, expiry.Status) {
	var (
		ttl    time.Duration
		status expiry.Status
	)
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		ttl, status = e.expiry.TTL(tx, key)
		return nil
	})
	return ttl, status
}

// Persist removes the TTL of key. Returns false if the key is absent or had no TTL
func (e *Engine) Persist(key string) bool {
	var ok bool
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		ok = e.expiry.Persist(tx, key)
		return nil
	})
	return ok
}

// Type returns the name of the type stored at key, "none" if absent
func (e *Engine) Type(key string) string {
	t := storage.TypeNone
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		if ent, ok := e.expiry.Lookup(tx, key); ok {
			t = ent.Type
		}
		return nil
	})
	return t.String()
}

// DBSize returns the number of live keys
func (e *Engine) DBSize() int {
	return e.storage.Len(e.expiry.Now())
}

// FlushAll removes every key
func (e *Engine) FlushAll() {
	e.storage.Flush()
	e.logger.Info("storage flushed")
}
