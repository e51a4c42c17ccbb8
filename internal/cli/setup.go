package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/convoyhq/convoy/pkg/cache"
	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/manifest"
	"github.com/convoyhq/convoy/pkg/store"
)

// openCache builds the cache backend named by the config.
func openCache(ctx context.Context, cfg config.Config, logger *log.Logger) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "null":
		return cache.NewNullCache(), nil
	case "file":
		return cache.NewFileCache(cfg.Cache.Dir)
	case "redis":
		logger.Debug("connecting to redis cache", "addr", cfg.Cache.Redis.Addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// openStore builds the plan archive named by the config. Returns nil
// when archiving is disabled; callers must check.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "none":
		return nil, nil
	case "file":
		return store.NewFileStore(cfg.Store.Dir)
	case "mongo":
		logger.Debug("connecting to mongo store", "database", cfg.Store.Database)
		return store.NewMongoStore(ctx, cfg.Store.URI, cfg.Store.Database)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend: %s", cfg.Store.Backend)
	}
}

// newLoader builds the workspace manifest loader from configured repo
// roots, defaulting to the current directory.
func newLoader(cfg config.Config) *manifest.WorkspaceLoader {
	roots := cfg.Repos
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return manifest.NewWorkspaceLoader(roots...)
}

// filterLoader narrows another loader to a chosen set of package
// names. Used by interactive selection; filtering happens after every
// reload so iterative planning still sees fresh manifests.
type filterLoader struct {
	inner manifest.Loader
	keep  map[string]bool
}

func newFilterLoader(inner manifest.Loader, names []string) *filterLoader {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	return &filterLoader{inner: inner, keep: keep}
}

func (f *filterLoader) Load(ctx context.Context) ([]manifest.Manifest, error) {
	all, err := f.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]manifest.Manifest, 0, len(all))
	for _, m := range all {
		if f.keep[m.Name] {
			out = append(out, m)
		}
	}
	return out, nil
}
