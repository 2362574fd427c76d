// Package config loads pbl settings from a TOML file and the environment.
//
// Resolution order, later wins:
//
//  1. built-in defaults ([Default])
//  2. the TOML file, if present
//  3. PBL_* environment variables
//
// A minimal file:
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "pbl"

// Backend names.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Environment variables that override file settings.
const (
	EnvAddr         = "PBL_ADDR"
	EnvMongoURI     = "PBL_MONGO_URI"
	EnvRedisAddr    = "PBL_REDIS_ADDR"
	EnvCacheBackend = "PBL_CACHE_BACKEND"
	EnvStoreBackend = "PBL_STORE_BACKEND"
	EnvLogLevel     = "PBL_LOG_LEVEL"
)

// Config is the complete pbl configuration.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Server   ServerConfig `toml:"server"`
	Store    StoreConfig  `toml:"store"`
	Cache    CacheConfig  `toml:"cache"`
	Render   RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	ChainSequential bool    `toml:"chain_sequential"`
	PNGScale        float64 `toml:"png_scale"`
}

// Duration is a time.Duration that decodes from TOML strings such as "30s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration: in-memory store, file cache.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    1 << 20,
		},
		Store: StoreConfig{
			Backend:    BackendMemory,
			Database:   "projectBasedLearning",
			Collection: "projectDiagrams",
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Render: RenderConfig{
			PNGScale: 2,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pbl/config.toml, falling back to
// ~/.config/pbl/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/pbl, falling back to ~/.cache/pbl.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the configuration at path. An empty path means [DefaultPath],
// where a missing file is not an error; an explicit path must exist.
// Environment overrides are applied and the result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays PBL_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvAddr, &c.Server.Addr)
	set(EnvMongoURI, &c.Store.MongoURI)
	set(EnvRedisAddr, &c.Cache.RedisAddr)
	set(EnvCacheBackend, &c.Cache.Backend)
	set(EnvStoreBackend, &c.Store.Backend)
	set(EnvLogLevel, &c.LogLevel)
}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	storeBackends = []string{BackendMemory, BackendMongo}
	cacheBackends = []string{BackendNone, BackendFile, BackendRedis}
)

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return invalid("log_level %q must be one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	if !slices.Contains(storeBackends, c.Store.Backend) {
		return invalid("store.backend %q must be one of %s", c.Store.Backend, strings.Join(storeBackends, ", "))
	}
	if c.Store.Backend == BackendMongo && c.Store.MongoURI == "" {
		return invalid("store.mongo_uri is required for the mongo backend")
	}
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return invalid("cache.backend %q must be one of %s", c.Cache.Backend, strings.Join(cacheBackends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return invalid("cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if c.Render.PNGScale <= 0 {
		return invalid("render.png_scale must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeInvalidConfig, format, args...)
}
