package plan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/convoyhq/convoy/pkg/cache"
	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/manifest"
	"github.com/convoyhq/convoy/pkg/observability"
)

// Options configures one planning run.
type Options struct {
	// MaxIterations bounds the fixed-point loop. Defaults to 10.
	MaxIterations int
	// CacheTTL is how long computed plans stay cached.
	CacheTTL time.Duration
	// Refresh bypasses the cache for fresh results.
	Refresh bool
}

// WithDefaults returns a copy of Options with zero values replaced by
// defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	return opts
}

// Runner executes planning runs with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely share one Runner as
// long as each call gets its own loader.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the fixed-point planning loop: load manifests, build the
// graph, compute the publish order and analysis, and repeat until the
// manifest snapshot stops changing or opts.MaxIterations is reached.
//
// An ordering failure is fatal for the run and is never retried. In that
// case Execute returns the *graph.OrderingError (reachable via
// errors.As) together with a partial plan whose Report localizes the
// production cycles - the sort failure alone does not identify the
// cycle's members.
func (r *Runner) Execute(ctx context.Context, loader manifest.Loader, opts Options) (*Plan, error) {
	opts = opts.WithDefaults()

	var (
		current  *Plan
		lastHash string
	)

	for i := 1; i <= opts.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		observability.Planner().OnIterationStart(ctx, i)
		start := time.Now()

		manifests, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		hash, err := cache.HashJSON(manifests)
		if err != nil {
			return nil, err
		}
		if hash == lastHash {
			r.Logger.Debugf("manifests stable after %d iteration(s)", current.Iterations)
			observability.Planner().OnPlanComplete(ctx, current.Iterations, current.Cached, nil)
			return current, nil
		}
		lastHash = hash

		current, err = r.compute(ctx, manifests, hash, opts)
		observability.Planner().OnIterationComplete(ctx, i, len(manifests), time.Since(start), err)
		if err != nil {
			observability.Planner().OnPlanComplete(ctx, i, false, err)
			return current, err
		}
		current.Iterations = i
	}

	r.Logger.Warnf("manifests still changing after %d iterations, returning last plan", opts.MaxIterations)
	observability.Planner().OnPlanComplete(ctx, opts.MaxIterations, false, nil)
	return current, nil
}

// compute builds one plan, consulting the cache first.
func (r *Runner) compute(ctx context.Context, manifests []manifest.Manifest, hash string, opts Options) (*Plan, error) {
	key := cache.PlanKey(hash)

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warnf("cache read failed: %v", err)
			observability.Cache().OnError(ctx, key, err)
		} else if ok {
			var p Plan
			if err := json.Unmarshal(data, &p); err == nil {
				r.Logger.Debugf("plan cache hit (%s)", hash[:12])
				observability.Cache().OnHit(ctx, key)
				p.Cached = true
				return &p, nil
			}
			_ = r.Cache.Delete(ctx, key)
		} else {
			observability.Cache().OnMiss(ctx, key)
		}
	}

	g := graph.New(manifests)
	report := g.Analyze()

	order, err := graph.PublishOrder(g)
	if err != nil {
		// Return the report alongside the error so callers can show
		// which packages form the blocking cycles.
		return &Plan{
			ID:           uuid.NewString(),
			CreatedAt:    time.Now().UTC(),
			SnapshotHash: hash,
			Report:       report,
			Snapshot:     g.Snapshot(),
		}, err
	}

	p := &Plan{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		SnapshotHash: hash,
		Order:        order,
		Report:       report,
		Snapshot:     g.Snapshot(),
	}

	if data, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			r.Logger.Warnf("cache write failed: %v", err)
			observability.Cache().OnError(ctx, key, err)
		} else {
			observability.Cache().OnSet(ctx, key, len(data))
		}
	}

	return p, nil
}
