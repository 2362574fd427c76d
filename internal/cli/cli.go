package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vipuljat/ProjectBasedLearning/pkg/cache"
	"github.com/vipuljat/ProjectBasedLearning/pkg/config"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
	"github.com/vipuljat/ProjectBasedLearning/pkg/pipeline"
	"github.com/vipuljat/ProjectBasedLearning/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and default config.
// The config is replaced by the --config file when the root command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config {
	return c.cfg
}

// loadConfig reads the config file and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	if c.cfg.Cache.TTL.Duration > 0 {
		runner.TTL = c.cfg.Cache.TTL.Duration
	}
	return runner, nil
}

// openCache opens the cache backend named in the config. An unusable file
// cache directory degrades to no caching; redis failures are returned.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.cfg.Cache
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cc.RedisAddr,
			Password: cc.RedisPassword,
			DB:       cc.RedisDB,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the document store named in the config.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc := c.cfg.Store
	if sc.Backend == config.BackendMongo {
		return store.NewMongo(ctx, store.MongoConfig{
			URI:        sc.MongoURI,
			Database:   sc.Database,
			Collection: sc.Collection,
		})
	}
	return store.NewMemory(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured file cache directory, or the XDG default
// (~/.cache/pbl/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Input Helpers
// =============================================================================

// readInput decodes the diagram set at path, or from stdin when path is
// empty or "-".
func readInput(stdin io.Reader, path string) (diagram.Set, string, error) {
	if path == "" || path == "-" {
		return diagram.ReadSet(stdin)
	}
	return diagram.ImportSet(path)
}

// selectKinds resolves --kind values against set. With no names, every kind
// present in set is returned in rendering order.
func selectKinds(set diagram.Set, names []string) ([]diagram.Kind, error) {
	if len(names) == 0 {
		kinds := set.Kinds()
		if len(kinds) == 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPayload, "input contains no diagrams")
		}
		return kinds, nil
	}

	var out []diagram.Kind
	seen := make(map[diagram.Kind]bool)
	for _, name := range names {
		k, ok := diagram.ParseKind(name)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidKind,
				"unknown kind %q (must be one of uml, flowchart, dfd)", strings.TrimSpace(name))
		}
		if _, present := set.Payload(k); !present {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "input has no %s diagram", k)
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// openOutput creates path for writing, overwriting it if it exists.
// For "" and "-" it returns stdout wrapped in nopCloser.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// nopCloser makes stdout usable as an io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }
