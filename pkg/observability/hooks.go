// Package observability lets callers watch the pipeline, the caches and the
// HTTP server without those packages depending on a metrics or tracing
// backend.
//
// Each event family is an interface with a no-op default. main registers
// implementations once at startup; library code fetches the current hooks
// and calls them:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
//	observability.Pipeline().OnLayoutStart(ctx, nodes, edges)
//
// [LogHooks] writes every event to a charmbracelet logger at debug level.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives layout and render events.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, nodeCount, edgeCount int)
	OnLayoutComplete(ctx context.Context, levelCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives HTTP requests. route is the matched route pattern,
// not the raw path, so it stays low-cardinality.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry holds the current hooks of one family, falling back to def.
type registry[T any] struct {
	cur atomic.Pointer[T]
	def T
}

func (r *registry[T]) get() T {
	if h := r.cur.Load(); h != nil {
		return *h
	}
	return r.def
}

func (r *registry[T]) set(h T) {
	if any(h) != nil {
		r.cur.Store(&h)
	}
}

var (
	pipelineHooks = registry[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheHooks    = registry[CacheHooks]{def: NoopCacheHooks{}}
	serverHooks   = registry[ServerHooks]{def: NoopServerHooks{}}
)

// SetPipelineHooks replaces the pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineHooks.set(h) }

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheHooks.set(h) }

// SetServerHooks replaces the server hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) { serverHooks.set(h) }

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func Server() ServerHooks     { return serverHooks.get() }

// Reset restores the no-op defaults. Tests that register hooks call it in
// t.Cleanup.
func Reset() {
	pipelineHooks.cur.Store(nil)
	cacheHooks.cur.Store(nil)
	serverHooks.cur.Store(nil)
}
