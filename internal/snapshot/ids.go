package snapshot

import (
	"crypto/sha256"
	"fmt"

	"github.com/uiprobe/uiprobe/internal/provider"
)

// NodeID computes a node's deterministic identifier from its attributes and
// structural position. Re-parsing an unchanged tree yields identical
// identifiers; structurally identical nodes in different windows differ
// because the root's parent identifier is seeded per window.
//
// The same function verifies cached handles: the resolver recomputes the
// identifier from refreshed attributes plus the cached position metadata
// and treats any difference as identity drift.
func NodeID(a provider.Attributes, depth, index int, parentID string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%v|%d|%d|%d|%s", a.Type, a.Text, a.Bounds, a.ChildCount, depth, index, parentID)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// windowSeed is the window-scoped value used as the root node's parent
// identifier, keeping identifiers unique across windows.
func windowSeed(info provider.WindowInfo) string {
	return fmt.Sprintf("window/%d", info.ID)
}
