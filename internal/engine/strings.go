package engine

import (
	"time"

	"github.com/eternalApril/lunakv/internal/storage"
)

// Set stores a string at key, replacing whatever the key held and dropping its TTL
func (e *Engine) Set(key, value string) {
	e.storage.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		tx.Set(key, &storage.Entity{Type: storage.TypeString, Value: value})
		return nil
	})
}

// SetWithTTL stores a string at key that expires after ttl
func (e *Engine) SetWithTTL(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return invalidArgument("invalid expire time %s", ttl)
	}

	return e.storage.Do(key, func(tx storage.Tx) error {
		tx.Set(key, &storage.Entity{
			Type:     storage.TypeString,
			Value:    value,
			ExpireAt: e.expiry.Deadline(ttl),
		})
		return nil
	})
}

// Get returns the string at key. ok is false when the key is absent
func (e *Engine) Get(key string) (value string, ok bool, err error) {
	err = e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeString)
		if err != nil || ent == nil {
			return err
		}
		value, ok = ent.Value.(string), true
		return nil
	})
	return value, ok, err
}
