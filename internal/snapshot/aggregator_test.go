package snapshot

import (
	"errors"
	"testing"

	"github.com/uiprobe/uiprobe/internal/provider"
	"github.com/uiprobe/uiprobe/internal/provider/scene"
)

func demoWindow(id int, app string) *scene.Window {
	return &scene.Window{
		Info: provider.WindowInfo{ID: id, Type: "application", App: app, Layer: id, Focused: id == 1},
		Root: demoTree(),
	}
}

func TestBuild_MultiWindow(t *testing.T) {
	w1 := demoWindow(1, "com.example.mail")
	w2 := demoWindow(2, "com.example.keyboard")
	p := scene.NewProvider(w1, w2)
	cache := NewHandleCache()

	snap, err := Build(p, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(snap.Windows))
	}
	if snap.Degraded {
		t.Error("full enumeration must not be degraded")
	}
	if snap.Windows[0].App != "com.example.mail" || snap.Windows[1].App != "com.example.keyboard" {
		t.Error("expected windows in enumeration order")
	}

	// One shared map across windows: the cache holds every node of both
	// trees, 5 per demo tree.
	if cache.Size() != 10 {
		t.Errorf("expected 10 cached handles across both windows, got %d", cache.Size())
	}

	// Enumeration resources released, exactly once each.
	if w1.Releases() != 1 || w2.Releases() != 1 {
		t.Errorf("expected window handles released once, got %d and %d", w1.Releases(), w2.Releases())
	}
}

func TestBuild_NotReady(t *testing.T) {
	p := scene.NewProvider(demoWindow(1, "app"))
	p.SetReady(false)
	cache := NewHandleCache()

	_, err := Build(p, cache)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if cache.Size() != 0 {
		t.Error("cache must stay empty on failure")
	}
}

func TestBuild_DegradedFallback(t *testing.T) {
	p := scene.NewProvider() // no enumerable windows
	active := demoWindow(7, "com.example.active")
	p.SetActive(active)
	cache := NewHandleCache()

	snap, err := Build(p, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Degraded {
		t.Error("expected degraded snapshot")
	}
	if len(snap.Windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(snap.Windows))
	}
	if snap.Windows[0].ID != 7 {
		t.Errorf("expected active window, got id %d", snap.Windows[0].ID)
	}
	if cache.Size() != 5 {
		t.Errorf("expected fallback window's handles cached, got %d", cache.Size())
	}
	if active.Releases() != 1 {
		t.Errorf("expected active window handle released, got %d", active.Releases())
	}
}

func TestBuild_EnumerationErrorFallsBack(t *testing.T) {
	p := scene.NewProvider()
	p.FailWindows(errors.New("binder transaction failed"))
	p.SetActive(demoWindow(3, "com.example.active"))
	cache := NewHandleCache()

	snap, err := Build(p, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Degraded || len(snap.Windows) != 1 {
		t.Errorf("expected degraded single-window snapshot, got %d windows (degraded=%v)", len(snap.Windows), snap.Degraded)
	}
}

func TestBuild_Empty(t *testing.T) {
	p := scene.NewProvider()
	cache := NewHandleCache()

	_, err := Build(p, cache)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if cache.Size() != 0 {
		t.Error("cache must not be populated on empty result")
	}
}

func TestBuild_RootlessWindowsSkipped(t *testing.T) {
	rootless := &scene.Window{Info: provider.WindowInfo{ID: 2, Type: "system"}}
	w := demoWindow(1, "com.example.mail")
	p := scene.NewProvider(rootless, w)
	cache := NewHandleCache()

	snap, err := Build(p, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Windows) != 1 || snap.Windows[0].ID != 1 {
		t.Fatalf("expected only the rooted window, got %d windows", len(snap.Windows))
	}
	if rootless.Releases() != 1 {
		t.Error("rootless window's enumeration handle must still be released")
	}
}

func TestBuild_LaterWindowCannotEvictEarlierHandles(t *testing.T) {
	w1 := demoWindow(1, "a")
	w2 := demoWindow(2, "b")
	p := scene.NewProvider(w1, w2)
	cache := NewHandleCache()

	snap, err := Build(p, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every identifier from the first window's tree is still resolvable in
	// the cache after the second window was parsed.
	var ids []string
	collectIDs(snap.Windows[0].Root, &ids)
	for _, id := range ids {
		if _, ok := cache.Get(id); !ok {
			t.Errorf("first window's handle for %s missing from cache", id)
		}
	}
}
