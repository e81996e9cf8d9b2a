package snapshot

import (
	"github.com/uiprobe/uiprobe/internal/provider"
)

// Action is invoked on the live handle of a resolved node. The handle is
// only valid for the duration of the call; implementations must not retain
// or release it.
type Action func(h provider.Handle) error

// Resolve locates the live element for a previously observed node
// identifier and runs action on it.
//
// The cache path is O(1): on a hit, the handle is refreshed and its
// identifier recomputed from the refreshed attributes plus the cached
// position metadata. Only an exact match confirms identity — a virtualized
// list may have recycled the element under the handle. A dead handle, an
// identity mismatch, or a cache miss all fall back to a full walk over the
// live windows, so the cache can make a correct answer faster but never
// wrong.
func Resolve(p provider.Provider, cache *HandleCache, id string, action Action) error {
	// A dead session must never appear to succeed via a cached handle.
	if !p.IsReady() {
		return ErrProviderUnavailable
	}

	if entry, ok := cache.Get(id); ok {
		if attrs, live := entry.Handle.Refresh(); live {
			if NodeID(attrs, entry.Depth, entry.Index, entry.ParentID) == id {
				// Identity confirmed. Cache-owned handle: not released here.
				return action(entry.Handle)
			}
			// The structural position now holds a different element.
		}
	}

	return resolveByWalk(p, id, action)
}

// resolveByWalk re-enumerates the live windows, rebuilds identifiers
// top-down with the same seeding as the aggregator, and runs action on the
// first node whose identifier matches.
func resolveByWalk(p provider.Provider, id string, action Action) error {
	windows, _ := p.Windows()
	defer func() {
		for _, w := range windows {
			w.Release()
		}
	}()

	searched := false
	for _, w := range windows {
		root := w.Root()
		if root == nil {
			continue
		}
		searched = true
		found, err := walkNode(root, windowSeed(w.Info()), 0, 0, id, action)
		root.Release()
		if found {
			return err
		}
	}

	// Mirror the aggregator's degraded fallback so identifiers minted from
	// a degraded snapshot still resolve.
	if !searched {
		active, err := p.ActiveWindow()
		if err == nil && active != nil {
			defer active.Release()
			if root := active.Root(); root != nil {
				found, err := walkNode(root, windowSeed(active.Info()), 0, 0, id, action)
				root.Release()
				if found {
					return err
				}
			}
		}
	}

	return ErrNodeNotFound
}

func walkNode(h provider.Handle, parentID string, depth, index int, id string, action Action) (bool, error) {
	attrs := h.Attributes()
	nid := NodeID(attrs, depth, index, parentID)
	if nid == id {
		return true, action(h)
	}
	for i := 0; i < attrs.ChildCount; i++ {
		child := h.Child(i)
		if child == nil {
			continue
		}
		found, err := walkNode(child, nid, depth+1, i, id, action)
		child.Release()
		if found {
			return true, err
		}
	}
	return false, nil
}
