// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about scribble computation, rendering, and
// cache operations.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnComputeStart(ctx, glyph, groupCount)
//	// ... compute ...
//	observability.Pipeline().OnComputeComplete(ctx, glyph, segmentCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from scribble generation.
type PipelineHooks interface {
	// Compute events: sampling, pairing, and segment building per glyph.
	OnComputeStart(ctx context.Context, glyph string, groupCount int)
	OnComputeComplete(ctx context.Context, glyph string, segmentCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, glyph, format string)
	OnRenderComplete(ctx context.Context, glyph, format string, duration time.Duration, err error)

	// Export events: writing heartlines into the output layer.
	OnExportStart(ctx context.Context, glyph string)
	OnExportComplete(ctx context.Context, glyph string, pathCount int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComputeStart(context.Context, string, int) {}

func (NoopPipelineHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {}

func (NoopPipelineHooks) OnRenderStart(context.Context, string, string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {}

func (NoopPipelineHooks) OnExportStart(context.Context, string) {}

func (NoopPipelineHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
