package snapshot

import (
	"fmt"
	"sync"
	"testing"

	"github.com/uiprobe/uiprobe/internal/provider/scene"
)

func TestHandleCache_PopulateThenGet(t *testing.T) {
	cache := NewHandleCache()

	m := make(map[string]CachedHandle)
	nodes := make(map[string]*scene.Node)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("node-%d", i)
		n := scene.NewNode("button", id, [4]int{i, 0, 10, 10})
		nodes[id] = n
		m[id] = CachedHandle{Handle: n.Handle(), Depth: 1, Index: i, ParentID: "root"}
	}
	cache.Populate(m)

	if cache.Size() != 5 {
		t.Fatalf("expected size 5, got %d", cache.Size())
	}
	for id, want := range m {
		got, ok := cache.Get(id)
		if !ok {
			t.Fatalf("expected hit for %s", id)
		}
		if got != want {
			t.Errorf("entry for %s does not match populated value", id)
		}
	}
	if _, ok := cache.Get("absent"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestHandleCache_EmptyCacheMisses(t *testing.T) {
	cache := NewHandleCache()
	if cache.Size() != 0 {
		t.Errorf("expected empty cache, size %d", cache.Size())
	}
	if _, ok := cache.Get("anything"); ok {
		t.Error("expected miss on fresh cache")
	}
}

func TestHandleCache_PopulateReplacesWholesale(t *testing.T) {
	cache := NewHandleCache()

	a := scene.NewNode("button", "a", [4]int{0, 0, 1, 1})
	cache.Populate(map[string]CachedHandle{"a": {Handle: a.Handle()}})

	b := scene.NewNode("button", "b", [4]int{1, 0, 1, 1})
	cache.Populate(map[string]CachedHandle{"b": {Handle: b.Handle()}})

	if _, ok := cache.Get("a"); ok {
		t.Error("superseded generation must not be visible")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("expected entry from current generation")
	}
	// The superseded generation is not released by populate.
	if a.Releases() != 0 {
		t.Errorf("populate must not release superseded handles, got %d", a.Releases())
	}
}

func TestHandleCache_ClearReleasesEntries(t *testing.T) {
	cache := NewHandleCache()

	a := scene.NewNode("button", "a", [4]int{0, 0, 1, 1})
	b := scene.NewNode("button", "b", [4]int{1, 0, 1, 1})
	cache.Populate(map[string]CachedHandle{
		"a": {Handle: a.Handle()},
		"b": {Handle: b.Handle()},
	})

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("expected empty cache after clear, size %d", cache.Size())
	}
	if a.Releases() != 1 || b.Releases() != 1 {
		t.Errorf("expected each entry released exactly once, got %d and %d", a.Releases(), b.Releases())
	}
}

func TestHandleCache_ConcurrentGetAndPopulate(t *testing.T) {
	cache := NewHandleCache()
	n := scene.NewNode("button", "x", [4]int{0, 0, 1, 1})

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				cache.Populate(map[string]CachedHandle{"x": {Handle: n.Handle(), Index: i}})
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				// A reader sees a complete generation or nothing.
				if entry, ok := cache.Get("x"); ok && entry.Handle == nil {
					t.Error("observed torn cache entry")
					return
				}
			}
		}()
	}
	wg.Wait()
}
