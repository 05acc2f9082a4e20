package lunakv

import (
	"time"

	"go.uber.org/zap"

	"github.com/eternalApril/lunakv/internal/clock"
	"github.com/eternalApril/lunakv/internal/config"
)

// Clock supplies the current time used for expiry
type Clock = clock.Clock

type options struct {
	cfg    *config.Config
	clock  clock.Clock
	logger *zap.Logger
}

// Option configures New
type Option func(*options)

// WithConfig replaces the whole configuration. Options after it still apply on top
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		c := *cfg
		o.cfg = &c
	}
}

// WithShards sets the number of lock shards, a power of two up to 64
func WithShards(n uint) Option {
	return func(o *options) {
		o.cfg.Storage.Shards = n
	}
}

// WithClock overrides the time source
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithActiveExpiry tunes the background sweep: every interval it samples up to
// samples keys with a TTL per shard and repeats while more than threshold of them
// were expired. A non-positive interval turns the sweep off, leaving only lazy expiry
func WithActiveExpiry(interval time.Duration, samples int, threshold float64) Option {
	return func(o *options) {
		if interval <= 0 {
			o.cfg.GC.Enabled = false
			return
		}
		o.cfg.GC = config.GCConfig{
			Enabled:         true,
			Interval:        interval,
			SamplesPerCheck: samples,
			MatchThreshold:  threshold,
		}
	}
}
