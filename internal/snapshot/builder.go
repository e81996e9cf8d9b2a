package snapshot

import (
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/provider"
)

// treeBuilder walks one externally-owned tree into an immutable Node tree.
// Handle ownership is decided once at construction: in capture mode every
// parsed handle (root included) is stored in the handle map and ownership
// transfers to the map's holder; otherwise the builder releases every
// non-root handle immediately after extracting its data. The root handle is
// never released here in either mode — its owner is the direct caller.
type treeBuilder struct {
	handles map[string]CachedHandle // nil disables capture
}

// ParseTree parses the tree under root into a Node tree. seed becomes the
// root's parent identifier and must be window-scoped so identical trees in
// different windows get distinct identifiers. If handles is non-nil, live
// handles are captured into it instead of being released.
func ParseTree(root provider.Handle, seed string, handles map[string]CachedHandle) model.Node {
	b := &treeBuilder{handles: handles}
	return b.parse(root, seed, 0, 0)
}

func (b *treeBuilder) parse(h provider.Handle, parentID string, depth, index int) model.Node {
	attrs := h.Attributes()
	id := NodeID(attrs, depth, index, parentID)

	n := model.Node{
		ID:            id,
		Type:          attrs.Type,
		Text:          attrs.Text,
		Description:   attrs.Description,
		Bounds:        attrs.Bounds,
		Clickable:     attrs.Clickable,
		LongClickable: attrs.LongClickable,
		Scrollable:    attrs.Scrollable,
		Editable:      attrs.Editable,
		Visible:       attrs.Visible,
	}
	if !attrs.Enabled {
		disabled := false
		n.Enabled = &disabled
	}

	for i := 0; i < attrs.ChildCount; i++ {
		child := h.Child(i)
		if child == nil {
			continue
		}
		n.Children = append(n.Children, b.parse(child, id, depth+1, i))
	}

	if b.handles != nil {
		b.handles[id] = CachedHandle{Handle: h, Depth: depth, Index: index, ParentID: parentID}
	} else if depth > 0 {
		h.Release()
	}

	return n
}
