// Package config loads convoy's TOML configuration.
//
// Configuration is read from convoy.toml in the working directory (or a
// path given with --config). Everything has a sensible default, so a
// config file is only needed for multi-repo workspaces, shared caches,
// or the plan archive.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/convoyhq/convoy/pkg/errors"
)

// DefaultFilename is the config file convoy looks for by default.
const DefaultFilename = "convoy.toml"

// DefaultMaxIterations bounds the fixed-point planning loop. The graph
// core never enforces this itself; the plan runner does.
const DefaultMaxIterations = 10

// Config is the top-level convoy configuration.
type Config struct {
	// Repos are the repository roots scanned for package manifests.
	// Defaults to the current directory.
	Repos []string `toml:"repos"`

	// MaxIterations bounds how many times the planner may reload
	// manifests and rebuild the graph while converging on a fixed point.
	MaxIterations int `toml:"max_iterations"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the plan cache backend.
type CacheConfig struct {
	// Backend is one of "null", "file", "redis". Defaults to "null".
	Backend string `toml:"backend"`
	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`
	// TTL is how long cached plans stay valid (e.g. "24h").
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the plan archive backend.
type StoreConfig struct {
	// Backend is one of "none", "file", "mongo". Defaults to "none".
	Backend string `toml:"backend"`
	// Dir is the archive directory for the file backend.
	Dir string `toml:"dir"`
	// URI is the MongoDB connection string for the mongo backend.
	URI string `toml:"uri"`
	// Database is the MongoDB database name. Defaults to "convoy".
	Database string `toml:"database"`
}

// ServeConfig configures the diagnostics HTTP server.
type ServeConfig struct {
	// Addr is the listen address. Defaults to ":8080".
	Addr string `toml:"addr"`
}

// duration wraps time.Duration for TOML decoding from strings like "24h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the wrapped time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// Load reads a config file and applies defaults. A missing file at the
// default path is not an error: an all-defaults config is returned.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && path == DefaultFilename:
		return cfg.WithDefaults(), nil
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithDefaults returns a copy of the config with zero values replaced by
// defaults.
func (c Config) WithDefaults() Config {
	cfg := c
	if len(cfg.Repos) == 0 {
		cfg.Repos = []string{"."}
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "null"
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = duration(24 * time.Hour)
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "none"
	}
	if cfg.Store.Database == "" {
		cfg.Store.Database = "convoy"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	return cfg
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "null", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "none", "file", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	if c.Store.Backend == "mongo" && c.Store.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.uri is required for the mongo backend")
	}
	return nil
}
