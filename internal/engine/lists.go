package engine

import (
	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/storage"
)

func newList() interface{} { return datatype.NewList() }

// LeftPushAll inserts values at the head of the list, one after another, so the
// last value becomes the head. Returns the length of the list
func (e *Engine) LeftPushAll(key string, values ...string) (int, error) {
	return e.push(key, values, (*datatype.List).PushLeft)
}

// RightPushAll appends values at the tail of the list. Returns the length of the list
func (e *Engine) RightPushAll(key string, values ...string) (int, error) {
	return e.push(key, values, (*datatype.List).PushRight)
}

func (e *Engine) push(key string, values []string, fn func(*datatype.List, ...string) int) (int, error) {
	if len(values) == 0 {
		return 0, invalidArgument("at least one value is required")
	}

	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookupOrCreate(tx, key, storage.TypeList, newList)
		if err != nil {
			return err
		}
		n = fn(ent.Value.(*datatype.List), values...)
		return nil
	})
	return n, err
}

// LeftPop removes and returns the head of the list
func (e *Engine) LeftPop(key string) (string, bool, error) {
	return e.pop(key, (*datatype.List).PopLeft)
}

// RightPop removes and returns the tail of the list
func (e *Engine) RightPop(key string) (string, bool, error) {
	return e.pop(key, (*datatype.List).PopRight)
}

func (e *Engine) pop(key string, fn func(*datatype.List) (string, bool)) (value string, ok bool, err error) {
	err = e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeList)
		if err != nil || ent == nil {
			return err
		}
		l := ent.Value.(*datatype.List)
		value, ok = fn(l)
		dropIfEmpty(tx, key, l.Len())
		return nil
	})
	return value, ok, err
}

// LRange returns the elements between start and end inclusive; negative indices count from the tail
func (e *Engine) LRange(key string, start, end int) ([]string, error) {
	out := []string{}
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeList)
		if err != nil || ent == nil {
			return err
		}
		out = ent.Value.(*datatype.List).Range(start, end)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LLen returns the length of the list, 0 if the key is absent
func (e *Engine) LLen(key string) (int, error) {
	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeList)
		if err != nil || ent == nil {
			return err
		}
		n = ent.Value.(*datatype.List).Len()
		return nil
	})
	return n, err
}
