// Package provider defines the boundary to the remote UI provider: the
// external collaborator that owns the live, mutable element tree. Handles
// returned by a provider may become invalid at any time outside this
// process's control; Refresh makes that staleness an explicit return value.
package provider

import "fmt"

// Attributes is an immutable snapshot-at-this-instant of one element's
// state, as read from its live handle.
type Attributes struct {
	Type          string
	Text          string
	Description   string
	Bounds        [4]int // [x, y, width, height] in screen coordinates
	ChildCount    int
	Clickable     bool
	LongClickable bool
	Scrollable    bool
	Editable      bool
	Enabled       bool
	Visible       bool
}

// WindowInfo describes one on-screen window.
type WindowInfo struct {
	ID       int
	Type     string // application, system, input-method
	App      string // owning package / application identifier
	Title    string
	Activity string // foreground activity identifier, if any
	Layer    int    // stacking layer
	Focused  bool
}

// Handle is a live reference to one element in the provider's tree.
//
// Handles are not thread-safe: every Attributes/Child/Refresh call on any
// handle from one provider must happen on the same logical execution
// context. Release must be safe to call zero or more times.
type Handle interface {
	// Attributes reads the element's current state.
	Attributes() Attributes
	// Child returns a live handle for the i'th child, or nil if the child
	// is unavailable. The caller owns the returned handle.
	Child(i int) Handle
	// Refresh re-synchronizes the handle with current remote state and
	// returns the refreshed attributes. ok is false if the underlying
	// element no longer exists.
	Refresh() (attrs Attributes, ok bool)
	// Release returns the handle to the provider. Idempotent.
	Release()
}

// WindowHandle is an enumeration-scoped reference to one window.
// Release frees only the enumeration resource, never the node handles
// obtained through Root.
type WindowHandle interface {
	Info() WindowInfo
	// Root returns a live handle for the window's root element, or nil if
	// the window has no tree. The caller owns the returned handle.
	Root() Handle
	Release()
}

// Provider is the remote UI provider session.
type Provider interface {
	// IsReady reports whether the session is live. A false result is fatal
	// for the current operation; there is no internal retry.
	IsReady() bool
	// Windows enumerates all on-screen windows in stacking order.
	Windows() ([]WindowHandle, error)
	// ActiveWindow returns the currently active window, used as a fallback
	// when full enumeration yields nothing usable.
	ActiveWindow() (WindowHandle, error)
}

// ErrNoBackend is returned when no live provider backend is registered.
var ErrNoBackend = fmt.Errorf("no UI provider backend registered; use --scene or build with a platform backend")

// NewProviderFunc is set by platform-specific packages via init() to
// register the live backend for the current OS.
var NewProviderFunc func() (Provider, error)

// New returns the registered live provider backend.
func New() (Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrNoBackend
	}
	return NewProviderFunc()
}
