// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about placer execution and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacerHooks(&myPlacerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Placer().OnSectionStart(ctx, edge, slotCount, pinCount)
//	// ... solve and materialize ...
//	observability.Placer().OnSectionComplete(ctx, edge, placed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Placer Hooks
// =============================================================================

// PlacerHooks receives events from the placement pipeline.
type PlacerHooks interface {
	// Section events
	OnSectionStart(ctx context.Context, edge string, slotCount, pinCount int)
	OnSectionComplete(ctx context.Context, edge string, placed int, duration time.Duration, err error)

	// Solver events
	OnSolveStart(ctx context.Context, rows, cols int)
	OnSolveComplete(ctx context.Context, rows, cols int, duration time.Duration)

	// Diagnostic events
	OnDiagnostic(ctx context.Context, severity, code, pin string)
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
// No-op Implementations
// =============================================================================

// NoopPlacerHooks is a no-op implementation of PlacerHooks.
type NoopPlacerHooks struct{}

func (NoopPlacerHooks) OnSectionStart(context.Context, string, int, int) {}
func (NoopPlacerHooks) OnSectionComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPlacerHooks) OnSolveStart(context.Context, int, int)                   {}
func (NoopPlacerHooks) OnSolveComplete(context.Context, int, int, time.Duration) {}
func (NoopPlacerHooks) OnDiagnostic(context.Context, string, string, string)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placerHooks PlacerHooks = NoopPlacerHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetPlacerHooks registers custom placer hooks.
// This should be called once at application startup before any placement runs.
func SetPlacerHooks(h PlacerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placerHooks = h
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

// Placer returns the registered placer hooks.
func Placer() PlacerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placerHooks
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
	placerHooks = NoopPlacerHooks{}
	cacheHooks = NoopCacheHooks{}
}
