// Package lunakv is an embedded in-memory key-value store with string, list,
// hash, set and sorted set values and per-key expiry.
//
//	db, err := lunakv.New()
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	db.Values().Set("key1", "value1")
//	db.Lists().LeftPushAll("list1", "element1", "element2")
package lunakv

import (
	"time"

	"go.uber.org/zap"

	"github.com/eternalApril/lunakv/internal/config"
	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/engine"
	"github.com/eternalApril/lunakv/internal/expiry"
	"github.com/eternalApril/lunakv/internal/logger"
	"github.com/eternalApril/lunakv/internal/storage"
)

type (
	// Config is the engine configuration, see Open for how it is loaded
	Config = config.Config
	// Member is a sorted set member with its score
	Member = datatype.Member
	// Status is the TTL state of a key
	Status = expiry.Status
	// CommandInfo describes a command accepted by Execute
	CommandInfo = engine.CommandInfo
)

// TTL statuses
const (
	KeyNotFound = expiry.NotFound
	NoTimeout   = expiry.NoTimeout
	Active      = expiry.Active
)

// Errors returned by operations, test with errors.Is
var (
	ErrTypeMismatch    = engine.ErrTypeMismatch
	ErrInvalidArgument = engine.ErrInvalidArgument
	ErrUnknownCommand  = engine.ErrUnknownCommand
	ErrWrongArity      = engine.ErrWrongArity
)

// DB is a handle to one store. It is safe for concurrent use
type DB struct {
	engine *engine.Engine
	logger *zap.Logger
}

// New creates an empty store. Without options it uses 32 shards,
// real time, a no-op logger and active expiry every 100ms
func New(opts ...Option) (*DB, error) {
	o := options{cfg: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := storage.NewShardedMapStorage(o.cfg.Storage.Shards)
	if err != nil {
		return nil, err
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	e, err := engine.NewEngine(s, o.cfg, o.logger, o.clock)
	if err != nil {
		return nil, err
	}

	return &DB{engine: e, logger: o.logger}, nil
}

// Open creates a store configured from lunakv.yaml in dir and LUNAKV_* environment
// variables, logging through a zap logger built from the log section
func Open(dir string) (*DB, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := New(WithConfig(cfg), WithLogger(l))
	if err != nil {
		return nil, err
	}

	l.Info("store opened",
		zap.Uint("shards", cfg.Storage.Shards),
		zap.Bool("gc", cfg.GC.Enabled),
	)
	return db, nil
}

// Close stops background expiry. The store must not be used afterwards
func (db *DB) Close() error {
	db.engine.Shutdown()
	_ = db.logger.Sync() // stderr may not support fsync
	return nil
}

// Values returns the string operations
func (db *DB) Values() ValueOperations { return ValueOperations{e: db.engine} }

// Lists returns the list operations
func (db *DB) Lists() ListOperations { return ListOperations{e: db.engine} }

// Hashes returns the hash operations
func (db *DB) Hashes() HashOperations { return HashOperations{e: db.engine} }

// Sets returns the set operations
func (db *DB) Sets() SetOperations { return SetOperations{e: db.engine} }

// ZSets returns the sorted set operations
func (db *DB) ZSets() ZSetOperations { return ZSetOperations{e: db.engine} }

// Delete removes keys of any type and returns how many existed
func (db *DB) Delete(keys ...string) int { return db.engine.Delete(keys...) }

// HasKey reports whether key exists and has not expired
func (db *DB) HasKey(key string) bool { return db.engine.HasKey(key) }

// Expire sets the lifetime of key. A non-positive ttl deletes it.
// Returns false if key does not exist
func (db *DB) Expire(key string, ttl time.Duration) bool { return db.engine.Expire(key, ttl) }

// TTL returns the remaining lifetime of key. The duration is only meaningful with Active
func (db *DB) TTL(key string) (time.Duration, Status) { return db.engine.TTL(key) }

// Persist removes the lifetime of key
func (db *DB) Persist(key string) bool { return db.engine.Persist(key) }

// Type returns "string", "list", "hash", "set", "zset" or "none"
func (db *DB) Type(key string) string { return db.engine.Type(key) }

// Size returns the number of live keys
func (db *DB) Size() int { return db.engine.DBSize() }

// Execute runs a named command such as "LPUSH list1 a b".
// Replies are nil, string, int, float64, []string or map[string]string
func (db *DB) Execute(name string, args ...string) (interface{}, error) {
	return db.engine.Execute(name, args...)
}

// Commands lists the commands accepted by Execute, sorted by name
func (db *DB) Commands() []CommandInfo { return db.engine.Commands() }
