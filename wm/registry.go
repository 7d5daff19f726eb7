// Package wm is the window subsystem: an explicit registry owning all
// windows in creation order, a single focus index, and the
// invalidate-and-reposition redraw protocol driven by device resizes.
// All state lives in the registry; there is no process-global window
// list
package wm

import "github.com/lixenwraith/cellterm/backend"

// Device is the backend the registry polls for geometry changes
type Device interface {
	Size() (width, height int)
	DetectResize() bool
}

// Surface is the shared buffered backend windows draw into
type Surface interface {
	backend.Backend
	ForceRedraw() error
}

// Registry owns all live windows and the keyboard focus. Windows are
// registered once and live for the registry lifetime; the list is never
// pruned
type Registry struct {
	dev     Device
	surface Surface

	windows []Window
	focus   int // index into windows, -1 before any focusable window exists

	placementDirty bool
	redraw         bool
}

// New creates a registry over the device and the shared draw surface.
// The first redraw pass always places and paints everything
func New(dev Device, surface Surface) *Registry {
	return &Registry{
		dev:            dev,
		surface:        surface,
		focus:          -1,
		placementDirty: true,
		redraw:         true,
	}
}

// Surface returns the shared draw surface windows render into
func (r *Registry) Surface() Surface {
	return r.surface
}

// Add registers a window. Registration order is draw order. The first
// focusable window added receives initial focus
func (r *Registry) Add(w Window) {
	r.windows = append(r.windows, w)
	if s, ok := w.(interface{ setRegistry(*Registry) }); ok {
		s.setRegistry(r)
	}
	if r.focus < 0 && w.CanFocus() {
		r.focus = len(r.windows) - 1
	}
	r.placementDirty = true
	r.redraw = true
}

// Windows returns the registered windows in creation order
func (r *Registry) Windows() []Window {
	return r.windows
}

// Focused returns the window holding keyboard focus, nil if none
func (r *Registry) Focused() Window {
	if r.focus < 0 || r.focus >= len(r.windows) {
		return nil
	}
	return r.windows[r.focus]
}

// IsFocused reports whether w holds keyboard focus
func (r *Registry) IsFocused(w Window) bool {
	return r.Focused() == w
}

// FocusNext advances focus through the list, wrapping past the tail,
// until a focusable window is found. When no window is focusable the
// focus is left unchanged; cycling never loops forever
func (r *Registry) FocusNext() {
	n := len(r.windows)
	if n == 0 {
		return
	}
	i := r.focus
	if i < 0 {
		i = n - 1
	}
	for step := 0; step < n; step++ {
		i = (i + 1) % n
		if r.windows[i].CanFocus() {
			if i != r.focus {
				r.focus = i
				r.redraw = true
			}
			return
		}
	}
	// No focusable window exists: explicit no-op
}

// Dispatch feeds one key event to the focused window
func (r *Registry) Dispatch(ev backend.Event) (cmd string, ok bool) {
	f := r.Focused()
	if f == nil {
		return "", false
	}
	return f.Input(ev)
}

// RequestRedraw marks the next Redraw pass as non-idle
func (r *Registry) RequestRedraw() {
	r.redraw = true
}

// RequestPlacement forces window placement to rerun on the next pass
func (r *Registry) RequestPlacement() {
	r.placementDirty = true
}

// Redraw runs one iteration of the global redraw protocol:
//
//  1. Poll the device for a resize; a change dirties placement.
//  2. If placement is dirty, re-place every window from current device
//     dimensions, in list order.
//  3. If nothing requested drawing, skip entirely (idle optimization).
//  4. Draw every visible window in list order, flush the shared surface
//     (ForceRedraw when placement changed, differential commit
//     otherwise), and restore the focused window's cursor
func (r *Registry) Redraw() error {
	if r.dev.DetectResize() {
		r.placementDirty = true
	}

	if r.placementDirty {
		w, h := r.dev.Size()
		for _, win := range r.windows {
			win.Place(w, h)
		}
	}

	if !r.redraw && !r.placementDirty {
		return nil
	}

	for _, win := range r.windows {
		if win.Visible() {
			win.Draw()
		}
	}

	var err error
	if r.placementDirty {
		err = r.surface.ForceRedraw()
	} else {
		err = r.surface.Commit()
	}

	if f := r.Focused(); f != nil {
		f.PlaceCursor()
	}

	r.placementDirty = false
	r.redraw = false
	return err
}
