package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Workers:      64,
		Iterations:   100,
		InitialCount: 1,
		Primitive:    PrimitiveCounter,
		ChannelLimit: 1,
		Timeout:      5 * time.Second,
		LogLevel:     "INFO",
	}, cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SEMPROBE_WORKERS", "8")
	t.Setenv("SEMPROBE_ITERATIONS", "3")
	t.Setenv("SEMPROBE_INITIAL_COUNT", "2")
	t.Setenv("SEMPROBE_PRIMITIVE", "channel")
	t.Setenv("SEMPROBE_CHANNEL_LIMIT", "4")
	t.Setenv("SEMPROBE_TIMEOUT", "250ms")
	t.Setenv("SEMPROBE_LOG_LEVEL", "DEBUG")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, int64(2), cfg.InitialCount)
	assert.Equal(t, PrimitiveChannel, cfg.Primitive)
	assert.Equal(t, 4, cfg.ChannelLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Workers:      1,
			Iterations:   1,
			InitialCount: 1,
			Primitive:    PrimitiveCounter,
			ChannelLimit: 1,
			Timeout:      time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"forever timeout", func(c *Config) { c.Timeout = -1 }, ""},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers must be positive"},
		{"no iterations", func(c *Config) { c.Iterations = -2 }, "iterations must be positive"},
		{"zero permits", func(c *Config) { c.InitialCount = 0 }, "initial_count must be positive"},
		{"unknown primitive", func(c *Config) { c.Primitive = "futex" }, `unknown primitive "futex"`},
		{"channel too small", func(c *Config) {
			c.Primitive = PrimitiveChannel
			c.InitialCount = 3
			c.ChannelLimit = 2
		}, "channel_limit 2 is below initial_count 3"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be non-zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
