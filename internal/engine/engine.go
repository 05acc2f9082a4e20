package engine

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/eternalApril/lunakv/internal/clock"
	"github.com/eternalApril/lunakv/internal/config"
	"github.com/eternalApril/lunakv/internal/expiry"
	"github.com/eternalApril/lunakv/internal/storage"
)

// Engine routes operations to the typed payloads held in storage.
// Every operation runs under the lock of the shard owning its key and
// evicts the key first if its TTL has passed
type Engine struct {
	commands map[string]registeredCommand // Registry of available commands (the key is the command name in uppercase)
	storage  storage.Storage              // Underlying KV storage
	expiry   *expiry.Manager              // Lazy TTL checks
	sweeper  *expiry.Sweeper              // Active expiration, nil if disabled
	stopOnce sync.Once                    // Ensures that the stop happens only once
	logger   *zap.Logger
}

// NewEngine initializes the engine, registers the commands, and
// if enabled in the config, starts background cleanup of outdated keys.
// A nil cfg, logger or clock is replaced by its default
func NewEngine(s storage.Storage, cfg *config.Config, logger *zap.Logger, c clock.Clock) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = clock.Real()
	}

	e := &Engine{
		commands: make(map[string]registeredCommand),
		storage:  s,
		expiry:   expiry.NewManager(c),
		logger:   logger,
	}
	e.registerCommands()

	logger.Debug("engine configured",
		zap.Int("commands", len(e.commands)),
		zap.Bool("gc_enabled", cfg.GC.Enabled),
		zap.Duration("gc_interval", cfg.GC.Interval),
		zap.Int("gc_samples", cfg.GC.SamplesPerCheck),
		zap.Float64("gc_threshold", cfg.GC.MatchThreshold),
	)

	if cfg.GC.Enabled {
		e.sweeper = expiry.NewSweeper(s, c, cfg.GC, logger)
		e.sweeper.Start()
	}

	return e, nil
}

// Shutdown shuts down the engine and its background services correctly
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		if e.sweeper != nil {
			e.sweeper.Stop()
		}
	})
}

// register adds a new command to the engine. The command name is uppercase
func (e *Engine) register(name string, meta commandMetadata, cmd command) {
	meta.name = strings.ToUpper(name)
	e.commands[meta.name] = registeredCommand{meta: meta, command: cmd}
}

// lookup returns the live entity at key if it holds want. Absent keys yield nil without error
func (e *Engine) lookup(tx storage.Tx, key string, want storage.DataType) (*storage.Entity, error) {
	ent, ok := e.expiry.Lookup(tx, key)
	if !ok {
		return nil, nil
	}
	if ent.Type != want {
		return nil, wrongType(key, ent.Type, want)
	}
	return ent, nil
}

// lookupOrCreate is lookup that stores a fresh payload when the key is absent
func (e *Engine) lookupOrCreate(tx storage.Tx, key string, want storage.DataType, create func() interface{}) (*storage.Entity, error) {
	ent, err := e.lookup(tx, key, want)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		ent = &storage.Entity{Type: want, Value: create()}
		tx.Set(key, ent)
	}
	return ent, nil
}

// dropIfEmpty removes a container key once its payload holds nothing
func dropIfEmpty(tx storage.Tx, key string, size int) {
	if size == 0 {
		tx.Delete(key)
	}
}
