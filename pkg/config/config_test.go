package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadExampleFile(t *testing.T) {
	for _, env := range []string{EnvAddr, EnvMongoURI, EnvRedisAddr, EnvCacheBackend, EnvStoreBackend, EnvLogLevel} {
		t.Setenv(env, "")
	}
	cfg, err := Load(filepath.Join("..", "..", "examples", "pbl.toml"))
	if err != nil {
		t.Fatalf("examples/pbl.toml: %v", err)
	}
	if cfg != Default() {
		t.Errorf("examples/pbl.toml should spell out the defaults:\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"

[server]
addr = ":9090"
read_timeout = "5s"

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "1h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Server.Addr != ":9090" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	// Unset keys keep their defaults.
	if cfg.Server.WriteTimeout.Duration != 60*time.Second {
		t.Errorf("WriteTimeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Store.Collection != "projectDiagrams" {
		t.Errorf("Collection = %q, want default", cfg.Store.Collection)
	}
	if cfg.Cache.TTL.Duration != time.Hour || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code apperrors.Code
	}{
		{"syntax", "log_level = ", apperrors.ErrCodeInvalidConfig},
		{"unknown key", "colour = \"red\"", apperrors.ErrCodeInvalidConfig},
		{"bad duration", "[server]\nread_timeout = \"soon\"", apperrors.ErrCodeInvalidConfig},
		{"mongo without uri", "[store]\nbackend = \"mongo\"", apperrors.ErrCodeInvalidConfig},
		{"unknown cache", "[cache]\nbackend = \"memcached\"", apperrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvStoreBackend, "mongo")
	t.Setenv(EnvMongoURI, "mongodb://env:27017")
	t.Setenv(EnvCacheBackend, "none")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":7070" || cfg.Store.Backend != "mongo" || cfg.Store.MongoURI != "mongodb://env:27017" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != "none" || cfg.LogLevel != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) (string, bool) { return "", true })
	if cfg.Server.Addr != ":8080" {
		t.Errorf("empty env value should not override: %q", cfg.Server.Addr)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	if p, _ := DefaultPath(); p != filepath.Join("/tmp/cfg", "pbl", "config.toml") {
		t.Errorf("DefaultPath() = %q", p)
	}
	if p, _ := DefaultCacheDir(); p != filepath.Join("/tmp/cache", "pbl") {
		t.Errorf("DefaultCacheDir() = %q", p)
	}
}
