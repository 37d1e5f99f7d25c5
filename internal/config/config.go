// Package config loads service configuration.
//
// Sources are layered, highest priority last:
//
//  1. built-in defaults
//  2. a YAML file (--config, or ./todos.yaml / ./todos.yml if present)
//  3. TODOS_* environment variables (TODOS_LOG_LEVEL -> log_level)
//  4. command-line flags that were explicitly set
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/jacentio/todos/internal/shard"
	"github.com/jacentio/todos/store"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "TODOS_"

// Default configuration values.
const (
	DefaultAddr              = ":8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// Config holds all service configuration.
type Config struct {
	Addr              string        `koanf:"addr"`
	Shards            int           `koanf:"shards"`
	LogLevel          string        `koanf:"log_level"`
	LogFormat         string        `koanf:"log_format"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`

	// ConfigFile is the file that was loaded, if any. Not read from sources.
	ConfigFile string `koanf:"-"`
}

// StoreConfig returns the store configuration derived from c.
func (c *Config) StoreConfig() store.Config {
	return store.Config{NumShards: c.Shards}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Shards < 1 || c.Shards > shard.MaxShards {
		return fmt.Errorf("shards must be between 1 and %d, got %d", shard.MaxShards, c.Shards)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug|info|warn|error, got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.RequestTimeout < 0 || c.ReadHeaderTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":                DefaultAddr,
		"shards":              store.DefaultNumShards,
		"log_level":           DefaultLogLevel,
		"log_format":          DefaultLogFormat,
		"request_timeout":     DefaultRequestTimeout.String(),
		"read_header_timeout": DefaultReadHeaderTimeout.String(),
		"shutdown_timeout":    DefaultShutdownTimeout.String(),
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > todos.yaml > todos.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"todos.yaml", "todos.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a Config from defaults, file, environment and flags.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Load environment variables
	// Transform: TODOS_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = configFile

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
