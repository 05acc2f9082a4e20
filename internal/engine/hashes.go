package engine

import (
	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/storage"
)

func newHash() interface{} { return datatype.NewHash() }

// HPut sets field in the hash stored at key. Returns true if the field is new
func (e *Engine) HPut(key, field, value string) (bool, error) {
	var created bool
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookupOrCreate(tx, key, storage.TypeHash, newHash)
		if err != nil {
			return err
		}
		created = ent.Value.(*datatype.Hash).Put(field, value)
		return nil
	})
	return created, err
}

// HPutAll sets several fields given as field, value pairs in one step.
// Returns the number of fields that are new
func (e *Engine) HPutAll(key string, pairs ...string) (int, error) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return 0, invalidArgument("fields and values must come in pairs")
	}

	var created int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookupOrCreate(tx, key, storage.TypeHash, newHash)
		if err != nil {
			return err
		}
		h := ent.Value.(*datatype.Hash)
		for i := 0; i < len(pairs); i += 2 {
			if h.Put(pairs[i], pairs[i+1]) {
				created++
			}
		}
		return nil
	})
	return created, err
}

// HGet returns the value associated with field in the hash stored at key
func (e *Engine) HGet(key, field string) (value string, ok bool, err error) {
	err = e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeHash)
		if err != nil || ent == nil {
			return err
		}
		value, ok = ent.Value.(*datatype.Hash).Get(field)
		return nil
	})
	return value, ok, err
}

// HEntries returns all fields and values of the hash stored at key
func (e *Engine) HEntries(key string) (map[string]string, error) {
	out := map[string]string{}
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeHash)
		if err != nil || ent == nil {
			return err
		}
		out = ent.Value.(*datatype.Hash).Entries()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HDelete removes fields from the hash and returns how many were present
func (e *Engine) HDelete(key string, fields ...string) (int, error) {
	var removed int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeHash)
		if err != nil || ent == nil {
			return err
		}
		h := ent.Value.(*datatype.Hash)
		removed = h.Delete(fields...)
		dropIfEmpty(tx, key, h.Len())
		return nil
	})
	return removed, err
}

// HLen returns the number of fields in the hash, 0 if the key is absent
func (e *Engine) HLen(key string) (int, error) {
	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeHash)
		if err != nil || ent == nil {
			return err
		}
		n = ent.Value.(*datatype.Hash).Len()
		return nil
	})
	return n, err
}
