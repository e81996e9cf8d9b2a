package snapshot

import (
	"sync/atomic"

	"github.com/uiprobe/uiprobe/internal/provider"
)

// CachedHandle is a live handle plus the position metadata needed to
// regenerate its identifier after a refresh. Once stored in a HandleCache
// generation, the handle is owned by the cache.
type CachedHandle struct {
	Handle   provider.Handle
	Depth    int
	Index    int
	ParentID string
}

// HandleCache maps node identifiers to live handles. Each Populate installs
// a complete generation atomically, so a concurrent Get observes either the
// previous or the current generation in its entirety, never a mix.
//
// Get and Populate are lock-free and callable from any goroutine; the
// handles themselves must still only be used on the provider's affinity
// context.
type HandleCache struct {
	gen atomic.Pointer[map[string]CachedHandle]
}

// NewHandleCache returns an empty cache.
func NewHandleCache() *HandleCache {
	c := &HandleCache{}
	empty := map[string]CachedHandle{}
	c.gen.Store(&empty)
	return c
}

// Populate atomically installs m as the current generation. The superseded
// generation is not released: a concurrent Get may still hold a reference
// into it, and releasing a handle is a safe no-op on the target platform.
// Porting to a platform where release is not idempotent requires deferred
// release or reference counting here.
func (c *HandleCache) Populate(m map[string]CachedHandle) {
	c.gen.Store(&m)
}

// Get returns the cached handle for id, if present in the current generation.
func (c *HandleCache) Get(id string) (CachedHandle, bool) {
	h, ok := (*c.gen.Load())[id]
	return h, ok
}

// Clear installs an empty generation and releases every handle from the one
// it replaced. Only safe when no concurrent Get is possible, i.e. during
// full subsystem shutdown after the provider disconnects.
func (c *HandleCache) Clear() {
	empty := map[string]CachedHandle{}
	old := c.gen.Swap(&empty)
	for _, h := range *old {
		h.Handle.Release()
	}
}

// Size returns the entry count of the current generation.
func (c *HandleCache) Size() int {
	return len(*c.gen.Load())
}
