package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
storage:
  shards: 8
gc:
  enabled: false
  interval: 250ms
  samples_per_check: 5
  match_threshold: 0.5
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lunakv.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, uint(8), cfg.Storage.Shards)
	assert.False(t, cfg.GC.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.GC.Interval)
	assert.Equal(t, 5, cfg.GC.SamplesPerCheck)
	assert.InDelta(t, 0.5, cfg.GC.MatchThreshold, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LUNAKV_STORAGE_SHARDS", "4")
	t.Setenv("LUNAKV_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, uint(4), cfg.Storage.Shards)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lunakv.yaml"), []byte("storage: [\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"shards not power of two", func(c *Config) { c.Storage.Shards = 3 }, true},
		{"zero shards", func(c *Config) { c.Storage.Shards = 0 }, true},
		{"too many shards", func(c *Config) { c.Storage.Shards = 128 }, true},
		{"zero interval", func(c *Config) { c.GC.Interval = 0 }, true},
		{"zero samples", func(c *Config) { c.GC.SamplesPerCheck = 0 }, true},
		{"threshold above one", func(c *Config) { c.GC.MatchThreshold = 1.5 }, true},
		{"gc disabled ignores gc values", func(c *Config) {
			c.GC.Enabled = false
			c.GC.Interval = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
