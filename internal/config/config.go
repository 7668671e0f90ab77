// Package config loads runtime settings from defaults, an optional config
// file and ORRERY_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ORRERY_SPEED
// or ORRERY_SERVE_ADDR.
const EnvPrefix = "ORRERY"

// Defaults when nothing overrides them.
const (
	DefaultSpeed = 1.0
	DefaultScale = 1.0
	DefaultFPS   = 30
)

// Limits applied after loading.
const (
	MaxSpeed = 10.0
	MaxScale = 5.0
	MinFPS   = 1
	MaxFPS   = 120
)

// ServeConfig controls the WebSocket frame stream.
type ServeConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// StreamConfig holds per-client command limits.
type StreamConfig struct {
	CommandRate  float64 `json:"commandRate" mapstructure:"commandRate"`
	CommandBurst int     `json:"commandBurst" mapstructure:"commandBurst"`
}

// Config is the resolved application configuration.
type Config struct {
	Speed    float64 `json:"speed" mapstructure:"speed"`
	Scale    float64 `json:"scale" mapstructure:"scale"`
	Theme    string  `json:"theme" mapstructure:"theme"`
	FPS      int     `json:"fps" mapstructure:"fps"`
	LogLevel string  `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string  `json:"logFile" mapstructure:"logFile"`

	Serve   ServeConfig   `json:"serve" mapstructure:"serve"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
	Stream  StreamConfig  `json:"stream" mapstructure:"stream"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("speed", DefaultSpeed)
	v.SetDefault("scale", DefaultScale)
	v.SetDefault("theme", "dark")
	v.SetDefault("fps", DefaultFPS)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("serve.addr", "")
	v.SetDefault("metrics.addr", "")

	v.SetDefault("stream.commandRate", 20.0)
	v.SetDefault("stream.commandBurst", 10)
}

// Default returns the configuration with no file and no environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	c.Normalize()
	return c
}

// Load resolves configuration. path may be empty; otherwise the file must
// exist and its extension selects the format (json, yaml, toml).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.Normalize()
	return c, nil
}

// Normalize clamps values into the ranges the engine accepts. Load calls
// it; call it again after overriding fields.
func (c *Config) Normalize() {
	c.Speed = clamp(c.Speed, 0, MaxSpeed)
	c.Scale = clamp(c.Scale, 0, MaxScale)

	if c.FPS < MinFPS {
		c.FPS = MinFPS
	}
	if c.FPS > MaxFPS {
		c.FPS = MaxFPS
	}

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme != "light" {
		c.Theme = "dark"
	}

	if c.Stream.CommandRate <= 0 {
		c.Stream.CommandRate = 20
	}
	if c.Stream.CommandBurst < 1 {
		c.Stream.CommandBurst = 1
	}
}

func clamp(x, lo, hi float64) float64 {
	if x != x || x < lo { // NaN or below
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
