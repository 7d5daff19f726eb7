package wm

import (
	"github.com/lixenwraith/cellterm/backend"
	"github.com/lixenwraith/cellterm/geom"
)

// Window is one member of the registry. Concrete widgets embed Base and
// override Place (compute the window rectangle from device dimensions),
// Draw (render into the shared buffer), and Input
type Window interface {
	// Place computes the window rectangle from current device dimensions.
	// Called on every window whenever the device geometry changed
	Place(devWidth, devHeight int)

	// Draw renders the window contents. Only called while visible
	Draw()

	// Input handles one key event. A returned command string (ok true)
	// signals the host loop to interpret it as a command line
	Input(ev backend.Event) (cmd string, ok bool)

	// PlaceCursor restores the window's cursor after a flush.
	// Only called on the focused window
	PlaceCursor()

	Rect() geom.Rect
	Visible() bool
	Show()
	Hide()
	CanFocus() bool
}

// Base carries the common window state: rectangle, visibility, and the
// focus capability fixed at construction. Show and Hide request a redraw
// pass from the owning registry
type Base struct {
	reg      *Registry
	rect     geom.Rect
	visible  bool
	canFocus bool
}

// NewBase creates base window state, visible by default
func NewBase(canFocus bool) Base {
	return Base{visible: true, canFocus: canFocus}
}

// Rect returns the window rectangle
func (b *Base) Rect() geom.Rect {
	return b.rect
}

// SetRect sets the window rectangle; typically called from Place
func (b *Base) SetRect(r geom.Rect) {
	b.rect = r
}

// Visible reports whether the window participates in drawing
func (b *Base) Visible() bool {
	return b.visible
}

// Show makes the window visible and requests a redraw pass
func (b *Base) Show() {
	if b.visible {
		return
	}
	b.visible = true
	if b.reg != nil {
		b.reg.RequestRedraw()
	}
}

// Hide makes the window invisible and requests a redraw pass
func (b *Base) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	if b.reg != nil {
		b.reg.RequestRedraw()
	}
}

// CanFocus reports whether focus cycling may stop on this window
func (b *Base) CanFocus() bool {
	return b.canFocus
}

// Registry returns the owning registry, nil before registration
func (b *Base) Registry() *Registry {
	return b.reg
}

// Place default: keep the current rectangle
func (b *Base) Place(devWidth, devHeight int) {}

// Draw default: nothing
func (b *Base) Draw() {}

// Input default: unhandled
func (b *Base) Input(ev backend.Event) (string, bool) {
	return "", false
}

// PlaceCursor default: no cursor
func (b *Base) PlaceCursor() {}

func (b *Base) setRegistry(r *Registry) {
	b.reg = r
}
