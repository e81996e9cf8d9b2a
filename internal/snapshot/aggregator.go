package snapshot

import (
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/provider"
)

// Build enumerates every on-screen window, parses each window's tree, and
// installs the accumulated handles as one new cache generation. All windows
// share a single handle map for the call, so a later window can never
// overwrite an earlier window's live handles in the cache.
//
// If enumeration yields no usable window, Build falls back to the provider's
// single active window and marks the snapshot degraded. Window enumeration
// resources are released on every exit path; node handles transfer to the
// cache and are released only by HandleCache.Clear.
func Build(p provider.Provider, cache *HandleCache) (*model.Snapshot, error) {
	if !p.IsReady() {
		return nil, ErrProviderUnavailable
	}

	handles := make(map[string]CachedHandle)
	snap := &model.Snapshot{}

	// An enumeration error is treated like an empty enumeration: a provider
	// that cannot list windows can often still serve the active one.
	windows, _ := p.Windows()
	defer func() {
		for _, w := range windows {
			w.Release()
		}
	}()

	for _, w := range windows {
		if win, ok := parseWindow(w, handles); ok {
			snap.Windows = append(snap.Windows, win)
		}
	}

	if len(snap.Windows) == 0 {
		active, err := p.ActiveWindow()
		if err == nil && active != nil {
			defer active.Release()
			if win, ok := parseWindow(active, handles); ok {
				snap.Windows = append(snap.Windows, win)
				snap.Degraded = true
			}
		}
	}

	if len(snap.Windows) == 0 {
		return nil, ErrEmptyResult
	}

	cache.Populate(handles)
	return snap, nil
}

func parseWindow(w provider.WindowHandle, handles map[string]CachedHandle) (model.Window, bool) {
	root := w.Root()
	if root == nil {
		return model.Window{}, false
	}
	info := w.Info()
	return model.Window{
		ID:       info.ID,
		Type:     info.Type,
		App:      info.App,
		Title:    info.Title,
		Activity: info.Activity,
		Layer:    info.Layer,
		Focused:  info.Focused,
		Root:     ParseTree(root, windowSeed(info), handles),
	}, true
}
