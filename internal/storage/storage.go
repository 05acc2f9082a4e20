package storage

// Tx is a view over the shard that owns a key. It is only valid inside the
// callback passed to Storage.Do and must not be retained
type Tx interface {
	// Get returns the entity stored at key, expired or not
	Get(key string) (*Entity, bool)

	// Set stores e at key. Must be called again after changing e.ExpireAt
	Set(key string, e *Entity)

	// Delete removes the key. Returns true if the key existed
	Delete(key string) bool

	// Exists reports whether the key is physically present
	Exists(key string) bool
}

// Storage is a common interface for working with key-value storages
type Storage interface {
	// Do runs fn with exclusive access to the shard that owns key
	Do(key string, fn func(tx Tx) error) error

	// DeleteExpired samples up to limit keys with a TTL from each shard, deletes the
	// expired ones and returns the mean expired/sampled ratio
	DeleteExpired(limit int, now int64) float64

	// Len returns the number of entities that are not expired at now
	Len(now int64) int

	// Flush removes every key
	Flush()
}
