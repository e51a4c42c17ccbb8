// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about planning runs and cache
// operations.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlannerHooks(&myPlannerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Planner().OnIterationStart(ctx, iteration)
//	// ... load, build, order ...
//	observability.Planner().OnIterationComplete(ctx, iteration, packages, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Planner Hooks
// =============================================================================

// PlannerHooks receives events from the fixed-point planning loop.
type PlannerHooks interface {
	// OnIterationStart fires before each load-and-order pass.
	OnIterationStart(ctx context.Context, iteration int)
	// OnIterationComplete fires after each pass. err is the ordering
	// error when production cycles block the plan.
	OnIterationComplete(ctx context.Context, iteration, packages int, duration time.Duration, err error)
	// OnPlanComplete fires once per run with the final outcome.
	OnPlanComplete(ctx context.Context, iterations int, cached bool, err error)
}

// NoopPlannerHooks is a PlannerHooks that does nothing.
type NoopPlannerHooks struct{}

func (NoopPlannerHooks) OnIterationStart(context.Context, int) {}
func (NoopPlannerHooks) OnIterationComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPlannerHooks) OnPlanComplete(context.Context, int, bool, error) {}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from plan cache operations.
type CacheHooks interface {
	OnHit(ctx context.Context, key string)
	OnMiss(ctx context.Context, key string)
	OnSet(ctx context.Context, key string, bytes int)
	OnError(ctx context.Context, key string, err error)
}

// NoopCacheHooks is a CacheHooks that does nothing.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context, string) {}
func (NoopCacheHooks) OnMiss(context.Context, string) {}
func (NoopCacheHooks) OnSet(context.Context, string, int) {}
func (NoopCacheHooks) OnError(context.Context, string, error) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu           sync.RWMutex
	plannerHooks PlannerHooks = NoopPlannerHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
)

// SetPlannerHooks registers planner hooks. Call once at startup, before
// any planning runs.
func SetPlannerHooks(h PlannerHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopPlannerHooks{}
	}
	plannerHooks = h
}

// Planner returns the registered planner hooks.
func Planner() PlannerHooks {
	mu.RLock()
	defer mu.RUnlock()
	return plannerHooks
}

// SetCacheHooks registers cache hooks. Call once at startup.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to no-ops. Mainly for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	plannerHooks = NoopPlannerHooks{}
	cacheHooks = NoopCacheHooks{}
}
