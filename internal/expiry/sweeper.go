package expiry

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eternalApril/lunakv/internal/clock"
	"github.com/eternalApril/lunakv/internal/config"
	"github.com/eternalApril/lunakv/internal/storage"
)

// maxRoundsPerTick bounds how long a single tick may keep the shards busy
const maxRoundsPerTick = 16

// Sweeper runs active expiration in the background, sampling keys with a TTL
// so that expired keys nobody reads again are still reclaimed
type Sweeper struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     config.GCConfig
	logger  *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewSweeper creates a stopped Sweeper
func NewSweeper(s storage.Storage, c clock.Clock, cfg config.GCConfig, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		storage: s,
		clock:   c,
		cfg:     cfg,
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the background loop. Calling it more than once has no effect
func (s *Sweeper) Start() {
	s.startOnce.Do(func() {
		go s.loop()
	})
}

// Stop signals the loop to exit and waits for it. Safe to call multiple times,
// and before Start
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	started := true
	s.startOnce.Do(func() {
		started = false
		close(s.done)
	})
	if started {
		<-s.done
	}
}

// Sweep runs one expiration cycle. While the share of expired keys among the
// sampled ones stays above the threshold it samples again right away.
// Returns the number of sampling rounds performed
func (s *Sweeper) Sweep() int {
	rounds := 0
	for rounds < maxRoundsPerTick {
		ratio := s.storage.DeleteExpired(s.cfg.SamplesPerCheck, s.clock.Now().UnixNano())
		rounds++

		if ratio > 0 && s.logger.Core().Enabled(zap.DebugLevel) {
			s.logger.Debug("GC delete expired", zap.Float64("expired_ratio", ratio))
		}

		if ratio <= s.cfg.MatchThreshold {
			break
		}
	}
	return rounds
}

func (s *Sweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("GC started", zap.Duration("interval", s.cfg.Interval))

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			s.logger.Info("GC stopped")
			return
		}
	}
}
