// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about canonicalization, cache operations, and source fetches.
//
// # Architecture
//
// The package uses a simple hooks pattern: hook interfaces per event
// category, no-op defaults, and a registry filled in by main. Libraries
// emit events without knowing which backend (if any) consumes them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCanonicalHooks(&myCanonicalHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Canonicalization Hooks
// =============================================================================

// CanonicalHooks receives events from graph canonicalization.
type CanonicalHooks interface {
	// OnCanonicalizeStart records the beginning of a canonicalization pass.
	OnCanonicalizeStart(ctx context.Context)

	// OnCanonicalizeComplete records the end of a canonicalization pass,
	// with the number of node records produced.
	OnCanonicalizeComplete(ctx context.Context, records int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Source Hooks
// =============================================================================

// SourceHooks receives events from database source loads.
type SourceHooks interface {
	// OnFetchStart records an outgoing source query.
	OnFetchStart(ctx context.Context, source string)

	// OnFetchComplete records a finished source load with the graph size.
	OnFetchComplete(ctx context.Context, source string, nodes, relationships int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCanonicalHooks is a no-op implementation of CanonicalHooks.
type NoopCanonicalHooks struct{}

func (NoopCanonicalHooks) OnCanonicalizeStart(context.Context)                               {}
func (NoopCanonicalHooks) OnCanonicalizeComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSourceHooks is a no-op implementation of SourceHooks.
type NoopSourceHooks struct{}

func (NoopSourceHooks) OnFetchStart(context.Context, string)                                    {}
func (NoopSourceHooks) OnFetchComplete(context.Context, string, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	canonicalHooks CanonicalHooks = NoopCanonicalHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	sourceHooks    SourceHooks    = NoopSourceHooks{}
	hooksMu        sync.RWMutex
)

// SetCanonicalHooks registers custom canonicalization hooks.
// This should be called once at application startup.
func SetCanonicalHooks(h CanonicalHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		canonicalHooks = h
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

// SetSourceHooks registers custom source hooks.
// This should be called once at application startup before any source loads.
func SetSourceHooks(h SourceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sourceHooks = h
	}
}

// Canonical returns the registered canonicalization hooks.
func Canonical() CanonicalHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return canonicalHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Source returns the registered source hooks.
func Source() SourceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sourceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	canonicalHooks = NoopCanonicalHooks{}
	cacheHooks = NoopCacheHooks{}
	sourceHooks = NoopSourceHooks{}
}
