// Package config loads the semprobe configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the knobs of a probe run.
type Config struct {
	Workers      int           `mapstructure:"workers"`
	Iterations   int           `mapstructure:"iterations"`
	InitialCount int64         `mapstructure:"initial_count"`
	Primitive    string        `mapstructure:"primitive"`
	ChannelLimit int           `mapstructure:"channel_limit"`
	Timeout      time.Duration `mapstructure:"timeout"`
	LogLevel     string        `mapstructure:"log_level"`
}

// Primitive names accepted in SEMPROBE_PRIMITIVE.
const (
	PrimitiveCounter  = "counter"
	PrimitiveWeighted = "weighted"
	PrimitiveChannel  = "channel"
)

// Load reads the configuration bound to SEMPROBE_* environment variables,
// applying defaults for anything unset, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	bindEnvVars(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 64)
	v.SetDefault("iterations", 100)
	v.SetDefault("initial_count", 1)
	v.SetDefault("primitive", PrimitiveCounter)
	v.SetDefault("channel_limit", 1)
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("log_level", "INFO")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("workers", "SEMPROBE_WORKERS")
	v.BindEnv("iterations", "SEMPROBE_ITERATIONS")
	v.BindEnv("initial_count", "SEMPROBE_INITIAL_COUNT")
	v.BindEnv("primitive", "SEMPROBE_PRIMITIVE")
	v.BindEnv("channel_limit", "SEMPROBE_CHANNEL_LIMIT")
	v.BindEnv("timeout", "SEMPROBE_TIMEOUT")
	v.BindEnv("log_level", "SEMPROBE_LOG_LEVEL")
}

// Validate reports every setting that would make a probe run meaningless or
// deadlock. A negative timeout means waiting forever.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	if c.InitialCount < 1 {
		errs = append(errs, fmt.Errorf("initial_count must be positive, got %d", c.InitialCount))
	}
	switch c.Primitive {
	case PrimitiveCounter, PrimitiveWeighted:
	case PrimitiveChannel:
		if int64(c.ChannelLimit) < c.InitialCount {
			errs = append(errs, fmt.Errorf("channel_limit %d is below initial_count %d", c.ChannelLimit, c.InitialCount))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown primitive %q", c.Primitive))
	}
	if c.Timeout == 0 {
		errs = append(errs, errors.New("timeout must be non-zero"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
