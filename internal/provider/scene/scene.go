// Package scene provides an in-memory UI provider backed by a mutable
// element tree. Scenes can be built directly (tests) or loaded from a YAML
// file (the CLI's --scene flag), and mutated between calls to simulate
// content changes, list recycling, and element invalidation.
package scene

import "github.com/uiprobe/uiprobe/internal/provider"

// Node is one mutable element of a scene tree. Fields may be changed
// between provider calls; live handles observe the change on the next
// Attributes or Refresh call.
type Node struct {
	Type          string
	Text          string
	Description   string
	Bounds        [4]int
	Clickable     bool
	LongClickable bool
	Scrollable    bool
	Editable      bool
	Enabled       bool
	Visible       bool
	Children      []*Node // nil entries are permitted and skipped by parsers
	Gone          bool    // when true, Refresh on handles to this node fails

	releases  int
	refreshes int
}

// NewNode builds an enabled, visible node. Flags beyond that are set on the
// returned struct directly.
func NewNode(typ, text string, bounds [4]int, children ...*Node) *Node {
	return &Node{
		Type:     typ,
		Text:     text,
		Bounds:   bounds,
		Enabled:  true,
		Visible:  true,
		Children: children,
	}
}

// Releases returns how many distinct handles to this node have been released.
func (n *Node) Releases() int { return n.releases }

// Refreshes returns how many times a handle to this node has been refreshed.
func (n *Node) Refreshes() int { return n.refreshes }

// Handle acquires a fresh live handle to this node.
func (n *Node) Handle() provider.Handle {
	return &handle{n: n}
}

func (n *Node) attributes() provider.Attributes {
	return provider.Attributes{
		Type:          n.Type,
		Text:          n.Text,
		Description:   n.Description,
		Bounds:        n.Bounds,
		ChildCount:    len(n.Children),
		Clickable:     n.Clickable,
		LongClickable: n.LongClickable,
		Scrollable:    n.Scrollable,
		Editable:      n.Editable,
		Enabled:       n.Enabled,
		Visible:       n.Visible,
	}
}

// handle is one acquisition of a node. Each Child call hands out a new
// handle, mirroring remote-object protocols where every lookup returns a
// reference the caller must release.
type handle struct {
	n        *Node
	released bool
}

func (h *handle) Attributes() provider.Attributes {
	return h.n.attributes()
}

func (h *handle) Child(i int) provider.Handle {
	if i < 0 || i >= len(h.n.Children) || h.n.Children[i] == nil {
		return nil
	}
	return h.n.Children[i].Handle()
}

func (h *handle) Refresh() (provider.Attributes, bool) {
	h.n.refreshes++
	if h.n.Gone {
		return provider.Attributes{}, false
	}
	return h.n.attributes(), true
}

func (h *handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.n.releases++
}

// Window is one scene window.
type Window struct {
	Info provider.WindowInfo
	Root *Node

	releases int
}

// Releases returns how many enumeration handles to this window have been
// released.
func (w *Window) Releases() int { return w.releases }

type windowHandle struct {
	w        *Window
	released bool
}

func (h *windowHandle) Info() provider.WindowInfo { return h.w.Info }

func (h *windowHandle) Root() provider.Handle {
	if h.w.Root == nil {
		return nil
	}
	return h.w.Root.Handle()
}

func (h *windowHandle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.w.releases++
}

// Provider is an in-memory provider.Provider over a mutable scene.
type Provider struct {
	ready     bool
	windows   []*Window
	active    *Window
	windowErr error // returned from Windows when set
}

// NewProvider returns a ready provider over the given windows.
func NewProvider(windows ...*Window) *Provider {
	return &Provider{ready: true, windows: windows}
}

// SetReady toggles session liveness.
func (p *Provider) SetReady(ready bool) { p.ready = ready }

// SetActive sets the window returned by ActiveWindow.
func (p *Provider) SetActive(w *Window) { p.active = w }

// SetWindows replaces the enumerated window list.
func (p *Provider) SetWindows(windows ...*Window) { p.windows = windows }

// FailWindows makes Windows return err until reset with nil.
func (p *Provider) FailWindows(err error) { p.windowErr = err }

func (p *Provider) IsReady() bool { return p.ready }

func (p *Provider) Windows() ([]provider.WindowHandle, error) {
	if p.windowErr != nil {
		return nil, p.windowErr
	}
	handles := make([]provider.WindowHandle, 0, len(p.windows))
	for _, w := range p.windows {
		handles = append(handles, &windowHandle{w: w})
	}
	return handles, nil
}

func (p *Provider) ActiveWindow() (provider.WindowHandle, error) {
	if p.active == nil {
		return nil, nil
	}
	return &windowHandle{w: p.active}, nil
}
