package config

import (
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Init initializes the viper instance
func Init() {
	v = viper.New()
}

// Viper returns the viper instance
func Viper() *viper.Viper {
	if v == nil {
		Init()
	}
	return v
}

// Server configuration
type Server struct {
	HTTP HTTPConfig `mapstructure:"http" yaml:"http"`
	GRPC GRPCConfig `mapstructure:"grpc" yaml:"grpc"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type GRPCConfig struct {
	Addr       string `mapstructure:"addr" yaml:"addr"`
	Reflection bool   `mapstructure:"reflection" yaml:"reflection"`
}

// Log configuration
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

// Skills configuration
type Skills struct {
	// Config is an optional YAML file with per-skill settings
	Config  string        `mapstructure:"config" yaml:"config"`
	Watch   bool          `mapstructure:"watch" yaml:"watch"` // reload Config on change while serving
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Tracing configuration
type Tracing struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Level   string `mapstructure:"level" yaml:"level"` // minimal, standard, detailed
}

// Config represents the application configuration
type Config struct {
	Server  Server  `mapstructure:"server" yaml:"server"`
	Log     Log     `mapstructure:"log" yaml:"log"`
	Skills  Skills  `mapstructure:"skills" yaml:"skills"`
	Tracing Tracing `mapstructure:"tracing" yaml:"tracing"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := Viper().Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.Server.HTTP.Addr == "" {
		cfg.Server.HTTP.Addr = ":8080"
	}
	if cfg.Server.GRPC.Addr == "" {
		cfg.Server.GRPC.Addr = ":8081"
	}
	if !Viper().IsSet("server.grpc.reflection") {
		cfg.Server.GRPC.Reflection = true
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = "./log"
	}
	if cfg.Skills.Timeout <= 0 {
		cfg.Skills.Timeout = 30 * time.Second
	}

	// Only set defaults if keys were not explicitly set in config
	if !Viper().IsSet("tracing.enabled") {
		cfg.Tracing.Enabled = true
	}
	if cfg.Tracing.Level == "" {
		cfg.Tracing.Level = "standard"
	}

	return cfg, nil
}
