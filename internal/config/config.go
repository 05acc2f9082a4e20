package config

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure for the engine
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	GC      GCConfig      `mapstructure:"gc"`
	Log     LogConfig     `mapstructure:"log"`
}

// GCConfig defines the parameters for the background active expiration
type GCConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Interval        time.Duration `mapstructure:"interval"`          // how often to run the background check
	SamplesPerCheck int           `mapstructure:"samples_per_check"` // how many keys to check per shard and round
	MatchThreshold  float64       `mapstructure:"match_threshold"`   // 0.0-1.0. if expired/scanned > threshold, repeat immediately
}

// StorageConfig defines the internal structure of the storage engine
type StorageConfig struct {
	Shards uint `mapstructure:"shards"`
}

// LogConfig defines logging verbosity and output style
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Shards: 32},
		GC: GCConfig{
			Enabled:         true,
			Interval:        100 * time.Millisecond,
			SamplesPerCheck: 20,
			MatchThreshold:  0.25,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration from lunakv.yaml in path and overrides it with environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("lunakv")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("LUNAKV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the values can be used to build an engine
func (c *Config) Validate() error {
	if bits.OnesCount(c.Storage.Shards) != 1 || c.Storage.Shards > 64 {
		return fmt.Errorf("storage.shards must be a power of 2 not greater than 64, got %d", c.Storage.Shards)
	}

	if c.GC.Enabled {
		if c.GC.Interval <= 0 {
			return fmt.Errorf("gc.interval must be positive, got %s", c.GC.Interval)
		}
		if c.GC.SamplesPerCheck <= 0 {
			return fmt.Errorf("gc.samples_per_check must be positive, got %d", c.GC.SamplesPerCheck)
		}
		if c.GC.MatchThreshold < 0 || c.GC.MatchThreshold > 1 {
			return fmt.Errorf("gc.match_threshold must be within [0, 1], got %v", c.GC.MatchThreshold)
		}
	}

	return nil
}

// setDefaults populates viper with fallback values if they are not provided via file or ENV
func setDefaults(v *viper.Viper) {
	d := Default()

	// Storage
	v.SetDefault("storage.shards", d.Storage.Shards)

	// GC
	v.SetDefault("gc.enabled", d.GC.Enabled)
	v.SetDefault("gc.interval", d.GC.Interval.String())
	v.SetDefault("gc.samples_per_check", d.GC.SamplesPerCheck)
	v.SetDefault("gc.match_threshold", d.GC.MatchThreshold)

	// Logger
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
