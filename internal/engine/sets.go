package engine

import (
	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/storage"
)

func newSet() interface{} { return datatype.NewSet() }

// SAdd adds members to the set and returns how many were new
func (e *Engine) SAdd(key string, members ...string) (int, error) {
	if len(members) == 0 {
		return 0, invalidArgument("at least one member is required")
	}

	var added int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookupOrCreate(tx, key, storage.TypeSet, newSet)
		if err != nil {
			return err
		}
		added = ent.Value.(*datatype.Set).Add(members...)
		return nil
	})
	return added, err
}

// SMembers returns all members of the set in lexical order
func (e *Engine) SMembers(key string) ([]string, error) {
	out := []string{}
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeSet)
		if err != nil || ent == nil {
			return err
		}
		out = ent.Value.(*datatype.Set).Members()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SIsMember reports whether member belongs to the set
func (e *Engine) SIsMember(key, member string) (bool, error) {
	var ok bool
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeSet)
		if err != nil || ent == nil {
			return err
		}
		ok = ent.Value.(*datatype.Set).IsMember(member)
		return nil
	})
	return ok, err
}

// SPop removes and returns up to count arbitrary members
func (e *Engine) SPop(key string, count int) ([]string, error) {
	if count < 0 {
		return nil, invalidArgument("count must be non-negative, got %d", count)
	}

	out := []string{}
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeSet)
		if err != nil || ent == nil {
			return err
		}
		s := ent.Value.(*datatype.Set)
		out = s.Pop(count)
		dropIfEmpty(tx, key, s.Len())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SRemove removes members from the set and returns how many were present
func (e *Engine) SRemove(key string, members ...string) (int, error) {
	var removed int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeSet)
		if err != nil || ent == nil {
			return err
		}
		s := ent.Value.(*datatype.Set)
		removed = s.Remove(members...)
		dropIfEmpty(tx, key, s.Len())
		return nil
	})
	return removed, err
}

// SCard returns the number of members, 0 if the key is absent
func (e *Engine) SCard(key string) (int, error) {
	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeSet)
		if err != nil || ent == nil {
			return err
		}
		n = ent.Value.(*datatype.Set).Len()
		return nil
	})
	return n, err
}
