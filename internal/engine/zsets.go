package engine

import (
	"math"

	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/storage"
)

func newSortedSet() interface{} { return datatype.NewSortedSet() }

// ZAdd adds member with score, or updates its score. Returns true if the member is new
func (e *Engine) ZAdd(key, member string, score float64) (bool, error) {
	n, err := e.ZAddAll(key, datatype.Member{Name: member, Score: score})
	return n == 1, err
}

// ZAddAll adds or updates several members in one step. Returns the number of new members
func (e *Engine) ZAddAll(key string, members ...datatype.Member) (int, error) {
	if len(members) == 0 {
		return 0, invalidArgument("at least one member is required")
	}
	for _, m := range members {
		if math.IsNaN(m.Score) {
			return 0, invalidArgument("score of %q is not a number", m.Name)
		}
	}

	var created int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookupOrCreate(tx, key, storage.TypeZSet, newSortedSet)
		if err != nil {
			return err
		}
		z := ent.Value.(*datatype.SortedSet)
		for _, m := range members {
			if z.Add(m.Name, m.Score) {
				created++
			}
		}
		return nil
	})
	return created, err
}

// ZCount returns the number of members with minScore <= score <= maxScore
func (e *Engine) ZCount(key string, minScore, maxScore float64) (int, error) {
	if math.IsNaN(minScore) || math.IsNaN(maxScore) {
		return 0, invalidArgument("min or max is not a number")
	}

	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeZSet)
		if err != nil || ent == nil {
			return err
		}
		n = ent.Value.(*datatype.SortedSet).Count(minScore, maxScore)
		return nil
	})
	return n, err
}

// ZRange returns member names by rank between start and end inclusive
func (e *Engine) ZRange(key string, start, end int) ([]string, error) {
	members, err := e.ZRangeWithScores(key, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out, nil
}

// ZRangeWithScores returns members with their scores by rank between start and end inclusive
func (e *Engine) ZRangeWithScores(key string, start, end int) ([]datatype.Member, error) {
	out := []datatype.Member{}
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeZSet)
		if err != nil || ent == nil {
			return err
		}
		out = ent.Value.(*datatype.SortedSet).Range(start, end)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ZRemove removes members and returns how many were present
func (e *Engine) ZRemove(key string, members ...string) (int, error) {
	var removed int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeZSet)
		if err != nil || ent == nil {
			return err
		}
		z := ent.Value.(*datatype.SortedSet)
		removed = z.Remove(members...)
		dropIfEmpty(tx, key, z.Len())
		return nil
	})
	return removed, err
}

// ZScore returns the score of member
func (e *Engine) ZScore(key, member string) (score float64, ok bool, err error) {
	err = e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeZSet)
		if err != nil || ent == nil {
			return err
		}
		score, ok = ent.Value.(*datatype.SortedSet).Score(member)
		return nil
	})
	return score, ok, err
}

// ZCard returns the number of members, 0 if the key is absent
func (e *Engine) ZCard(key string) (int, error) {
	var n int
	err := e.storage.Do(key, func(tx storage.Tx) error {
		ent, err := e.lookup(tx, key, storage.TypeZSet)
		if err != nil || ent == nil {
			return err
		}
		n = ent.Value.(*datatype.SortedSet).Len()
		return nil
	})
	return n, err
}
