package lunakv

import (
	"time"

	"github.com/eternalApril/lunakv/internal/engine"
)

// ValueOperations works on string keys
type ValueOperations struct{ e *engine.Engine }

// Set stores value at key, replacing whatever was there and clearing its TTL
func (o ValueOperations) Set(key, value string) { o.e.Set(key, value) }

// SetWithTTL is Set followed by an expiry of ttl, which must be positive
func (o ValueOperations) SetWithTTL(key, value string, ttl time.Duration) error {
	return o.e.SetWithTTL(key, value, ttl)
}

// Get returns the value at key; ok is false if it is absent
func (o ValueOperations) Get(key string) (value string, ok bool, err error) { return o.e.Get(key) }

// ListOperations works on list keys
type ListOperations struct{ e *engine.Engine }

// LeftPushAll prepends values one by one, so the last one ends up first. Returns the new length
func (o ListOperations) LeftPushAll(key string, values ...string) (int, error) {
	return o.e.LeftPushAll(key, values...)
}

// RightPushAll appends values. Returns the new length
func (o ListOperations) RightPushAll(key string, values ...string) (int, error) {
	return o.e.RightPushAll(key, values...)
}

// LeftPop removes and returns the first element; ok is false for an empty list
func (o ListOperations) LeftPop(key string) (string, bool, error) { return o.e.LeftPop(key) }

// RightPop removes and returns the last element
func (o ListOperations) RightPop(key string) (string, bool, error) { return o.e.RightPop(key) }

// Range returns elements between start and end inclusive; negative indexes count from the tail
func (o ListOperations) Range(key string, start, end int) ([]string, error) {
	return o.e.LRange(key, start, end)
}

// Size returns the list length, 0 if the key is absent
func (o ListOperations) Size(key string) (int, error) { return o.e.LLen(key) }

// HashOperations works on hash keys
type HashOperations struct{ e *engine.Engine }

// Put sets field to value and reports whether the field is new
func (o HashOperations) Put(key, field, value string) (bool, error) { return o.e.HPut(key, field, value) }

// PutAll sets all fields of m at once and returns how many were new
func (o HashOperations) PutAll(key string, m map[string]string) (int, error) {
	pairs := make([]string, 0, 2*len(m))
	for field, value := range m {
		pairs = append(pairs, field, value)
	}
	return o.e.HPutAll(key, pairs...)
}

// Get returns the value of field
func (o HashOperations) Get(key, field string) (string, bool, error) { return o.e.HGet(key, field) }

// Entries returns a copy of every field and value
func (o HashOperations) Entries(key string) (map[string]string, error) { return o.e.HEntries(key) }

// Delete removes fields and returns how many existed
func (o HashOperations) Delete(key string, fields ...string) (int, error) {
	return o.e.HDelete(key, fields...)
}

// Size returns the number of fields
func (o HashOperations) Size(key string) (int, error) { return o.e.HLen(key) }

// SetOperations works on set keys
type SetOperations struct{ e *engine.Engine }

// Add inserts members and returns how many were new
func (o SetOperations) Add(key string, members ...string) (int, error) {
	return o.e.SAdd(key, members...)
}

// Members returns every member in lexical order
func (o SetOperations) Members(key string) ([]string, error) { return o.e.SMembers(key) }

// IsMember reports whether member belongs to the set
func (o SetOperations) IsMember(key, member string) (bool, error) { return o.e.SIsMember(key, member) }

// Pop removes and returns up to count arbitrary members
func (o SetOperations) Pop(key string, count int) ([]string, error) { return o.e.SPop(key, count) }

// Remove deletes members and returns how many were present
func (o SetOperations) Remove(key string, members ...string) (int, error) {
	return o.e.SRemove(key, members...)
}

// Size returns the number of members
func (o SetOperations) Size(key string) (int, error) { return o.e.SCard(key) }

// ZSetOperations works on sorted set keys
type ZSetOperations struct{ e *engine.Engine }

// Add inserts member or updates its score. Reports whether the member is new
func (o ZSetOperations) Add(key, member string, score float64) (bool, error) {
	return o.e.ZAdd(key, member, score)
}

// AddAll inserts or updates members together and returns how many were new
func (o ZSetOperations) AddAll(key string, members ...Member) (int, error) {
	return o.e.ZAddAll(key, members...)
}

// Count returns the number of members with minScore <= score <= maxScore
func (o ZSetOperations) Count(key string, minScore, maxScore float64) (int, error) {
	return o.e.ZCount(key, minScore, maxScore)
}

// Range returns member names by rank, lowest score first
func (o ZSetOperations) Range(key string, start, end int) ([]string, error) {
	return o.e.ZRange(key, start, end)
}

// RangeWithScores is Range with each member's score
func (o ZSetOperations) RangeWithScores(key string, start, end int) ([]Member, error) {
	return o.e.ZRangeWithScores(key, start, end)
}

// Remove deletes members and returns how many were present
func (o ZSetOperations) Remove(key string, members ...string) (int, error) {
	return o.e.ZRemove(key, members...)
}

// Score returns the score of member
func (o ZSetOperations) Score(key, member string) (float64, bool, error) { return o.e.ZScore(key, member) }

// Size returns the number of members
func (o ZSetOperations) Size(key string) (int, error) { return o.e.ZCard(key) }
