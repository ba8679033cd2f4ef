// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about batch generation and glyph pool access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    observability.SetPoolHooks(&myPoolHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnBatchStart(ctx, runID, variant, count)
//	// ... generate samples ...
//	observability.Generation().OnBatchComplete(ctx, runID, succeeded, failed, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the dataset generator.
type GenerationHooks interface {
	// Batch events
	OnBatchStart(ctx context.Context, runID, variant string, count int)
	OnBatchComplete(ctx context.Context, runID string, succeeded, failed int, duration time.Duration)

	// OnSampleComplete records one finished sample. code is empty on success.
	OnSampleComplete(ctx context.Context, runID string, index int, code string, duration time.Duration)
}

// =============================================================================
// Pool Hooks
// =============================================================================

// PoolHooks receives events from glyph pool access.
type PoolHooks interface {
	// OnList records a directory listing of a glyph pool.
	OnList(ctx context.Context, class string, files int)

	// OnPick records a glyph file chosen for a sample.
	OnPick(ctx context.Context, class, path string)

	// OnReadError records a glyph file that could not be decoded.
	OnReadError(ctx context.Context, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnBatchStart(context.Context, string, string, int)                {}
func (NoopGenerationHooks) OnBatchComplete(context.Context, string, int, int, time.Duration) {}
func (NoopGenerationHooks) OnSampleComplete(context.Context, string, int, string, time.Duration) {
}

// NoopPoolHooks is a no-op implementation of PoolHooks.
type NoopPoolHooks struct{}

func (NoopPoolHooks) OnList(context.Context, string, int)         {}
func (NoopPoolHooks) OnPick(context.Context, string, string)      {}
func (NoopPoolHooks) OnReadError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	poolHooks       PoolHooks       = NoopPoolHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup before any batch runs.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetPoolHooks registers custom pool hooks.
// This should be called once at application startup before any pool access.
func SetPoolHooks(h PoolHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		poolHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Pool returns the registered pool hooks.
func Pool() PoolHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return poolHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	poolHooks = NoopPoolHooks{}
}
