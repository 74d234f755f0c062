// Package observability provides hooks for instrumenting figure rendering.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific backends. Consumers register hooks at startup to
// receive events about figure rendering and export.
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
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(format, width, height)
//	// ... draw and encode ...
//	observability.Render().OnRenderComplete(format, size, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from figure rendering.
type RenderHooks interface {
	// OnRenderStart records the start of a render. Width and height are the
	// output canvas size in inches.
	OnRenderStart(format string, width, height float64)

	// OnRenderComplete records the end of a render with the encoded size in bytes.
	OnRenderComplete(format string, size int, duration time.Duration, err error)

	// OnSave records a file written by a figure.
	OnSave(path string, size int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string, float64, float64)             {}
func (NoopRenderHooks) OnRenderComplete(string, int, time.Duration, error) {}
func (NoopRenderHooks) OnSave(string, int, error)                          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any figure is rendered.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
}
