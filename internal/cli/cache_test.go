package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vipuljat/ProjectBasedLearning/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name   string
		xdg    string
		config string
		want   func(home string) string
	}{
		{"xdg", "/tmp/custom-cache", "", func(string) string { return filepath.Join("/tmp/custom-cache", appName) }},
		{"config wins", "/tmp/custom-cache", "/srv/pbl-cache", func(string) string { return "/srv/pbl-cache" }},
		{"home fallback", "", "", func(home string) string { return filepath.Join(home, ".cache", appName) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			c := New(&strings.Builder{}, LogInfo)
			c.cfg.Cache.Dir = tt.config

			dir, err := c.cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			home, _ := os.UserHomeDir()
			if want := tt.want(home); dir != want {
				t.Errorf("cacheDir() = %q, want %q", dir, want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	isolate(t)
	cacheHome := os.Getenv("XDG_CACHE_HOME")

	var out strings.Builder
	root := New(&strings.Builder{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(cacheHome, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "artifact:UML:mermaid:abc", []byte("classDiagram\n"), time.Hour); err != nil {
		t.Fatal(err)
	}

	root := New(&strings.Builder{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "artifact:UML:mermaid:abc"); ok {
		t.Error("entry should be gone after cache clear")
	}
}

func TestOpenCacheBackends(t *testing.T) {
	isolate(t)
	ctx := context.Background()
	c := New(&strings.Builder{}, LogInfo)

	cc, err := c.openCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", cc)
	}

	cc, err = c.openCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(*cache.FileCache); !ok {
		t.Errorf("default backend should be the file cache, got %T", cc)
	}

	c.cfg.Cache.Backend = "none"
	cc, _ = c.openCache(ctx, false)
	if _, ok := cc.(*cache.NullCache); !ok {
		t.Errorf("backend none should give a NullCache, got %T", cc)
	}
}
