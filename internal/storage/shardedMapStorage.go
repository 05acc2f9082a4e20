package storage

import (
	"errors"
	"hash/fnv"
	"math/bits"

	"github.com/sourcegraph/conc/pool"
)

// ShardedMapStorage is a thread-safe key-value storage,
// divided into segments (shards) to reduce contention for locking
type ShardedMapStorage struct {
	shards    []*MapStorage
	shardMask uint32
}

// NewShardedMapStorage creates a new instance of ShardedMapStorage.
// The requestedShards parameter must be a power of two for efficient allocation.
// The maximum allowed number of shards is 64.
func NewShardedMapStorage(requestedShards uint) (*ShardedMapStorage, error) {
	if bits.OnesCount(requestedShards) != 1 {
		return nil, errors.New("requested shards must be a power of 2")
	}

	if requestedShards > 64 {
		return nil, errors.New("requested shards must be less or equal than 64")
	}

	s := &ShardedMapStorage{
		shards:    make([]*MapStorage, requestedShards),
		shardMask: uint32(requestedShards - 1),
	}

	for i := range s.shards {
		s.shards[i] = NewMapStorage()
	}

	return s, nil
}

// getShardIndex returns index of shard by key
func (s *ShardedMapStorage) getShardIndex(key string) uint32 {
	hash := fnv.New32a()
	hash.Write([]byte(key)) //nolint:errcheck

	return hash.Sum32() & s.shardMask
}

// Do locks the shard owning key and runs fn against it
func (s *ShardedMapStorage) Do(key string, fn func(tx Tx) error) error {
	return s.shards[s.getShardIndex(key)].Do(key, fn)
}

// DeleteExpired sweeps every shard concurrently and returns the mean expired ratio
func (s *ShardedMapStorage) DeleteExpired(limit int, now int64) float64 {
	p := pool.NewWithResults[float64]()

	for _, shard := range s.shards {
		shard := shard
		p.Go(func() float64 {
			return shard.DeleteExpired(limit, now)
		})
	}

	var total float64
	for _, ratio := range p.Wait() {
		total += ratio
	}

	return total / float64(len(s.shards))
}

// Len sums live keys over all shards
func (s *ShardedMapStorage) Len(now int64) int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len(now)
	}
	return n
}

// Flush drops all keys in every shard
func (s *ShardedMapStorage) Flush() {
	for _, shard := range s.shards {
		shard.Flush()
	}
}
