package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vipuljat/ProjectBasedLearning/pkg/buildinfo"
	"github.com/vipuljat/ProjectBasedLearning/pkg/cache"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/observability"
)

const cacheKeyType = "artifact"

// Runner produces artifacts with caching.
// Both CLI and API use it so that caching and logging behave identically.
//
// The Runner holds no per-request state; multiple goroutines may share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer scoped to the build version is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.ArtifactTTL,
	}
}

// cachedArtifact is the cache representation of a Result.
type cachedArtifact struct {
	Data        []byte               `json:"data"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics,omitempty"`
}

// Render produces the artifact described by req, serving it from the cache
// when an identical request was rendered before.
func (r *Runner) Render(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := req.normalize(); err != nil {
		return nil, err
	}

	payloadHash, err := cache.HashJSON(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("hash payload: %w", err)
	}
	key := r.Keyer.ArtifactKey(string(req.Kind), req.Format, payloadHash, cache.ArtifactKeyOpts{
		ChainSequential: req.Options.ChainSequential,
		Scale:           req.Options.Scale,
	})

	if !req.Refresh {
		if res, ok := r.lookup(ctx, key, req); ok {
			res.Duration = time.Since(start)
			r.Logger.Debug("artifact from cache", "kind", req.Kind, "format", req.Format)
			return res, nil
		}
	}

	data, diags, err := produce(ctx, req)
	if err != nil {
		return nil, err
	}
	r.logDiagnostics(req.Kind, diags)

	if entry, err := json.Marshal(cachedArtifact{Data: data, Diagnostics: diags}); err == nil {
		if err := r.Cache.Set(ctx, key, entry, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "kind", req.Kind, "format", req.Format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(entry))
		}
	}

	return &Result{
		Kind:        req.Kind,
		Format:      req.Format,
		Data:        data,
		Diagnostics: diags,
		Key:         key,
		Duration:    time.Since(start),
	}, nil
}

func (r *Runner) lookup(ctx context.Context, key string, req Request) (*Result, bool) {
	raw, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", req.Kind, "format", req.Format, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var entry cachedArtifact
	if err := json.Unmarshal(raw, &entry); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &Result{
		Kind:        req.Kind,
		Format:      req.Format,
		Data:        entry.Data,
		Diagnostics: entry.Diagnostics,
		Cached:      true,
		Key:         key,
	}, true
}

// RenderSet renders every diagram present in set, in UML, Flowchart, DFD
// order. It stops at the first error.
func (r *Runner) RenderSet(ctx context.Context, set diagram.Set, format string, opts Options) ([]*Result, error) {
	var out []*Result
	for _, kind := range set.Kinds() {
		payload, _ := set.Payload(kind)
		res, err := r.Render(ctx, Request{Kind: kind, Payload: payload, Format: format, Options: opts})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Runner) logDiagnostics(kind diagram.Kind, diags []diagram.Diagnostic) {
	for _, d := range diags {
		r.Logger.Warn(d.Message,
			"kind", kind,
			"code", d.Code,
			"source", d.Source,
			"target", d.Target)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
