package backend

// Backend is the uniform character-cell grid contract.
// Concrete variants (buffered, console, tcell) are composed into a chain:
// each holds a reference to the next backend and forwards committed cells
// down until a device is reached.
//
// Optional capabilities (cell read, cursor control, event retrieval) fail
// with ErrUnsupported on backends that do not implement them.
type Backend interface {
	// Size returns current grid dimensions
	Size() (width, height int)

	// WriteCell sets one cell. Out-of-range coordinates are silently
	// ignored unless the backend is in strict mode
	WriteCell(x, y int, ch rune, attr Attr) error

	// ReadCell returns the current cell value.
	// Fails with ErrUnsupported on write-only backends
	ReadCell(x, y int) (rune, Attr, error)

	// Resize updates grid dimensions and forwards the new geometry
	// depth-first to an attached buffer
	Resize(width, height int)

	// Commit propagates pending changes to the next layer or device
	Commit() error

	// PollEvent blocks until the next input event.
	// Fails with ErrUnsupported on backends without an input source
	PollEvent() (Event, error)

	// Cursor control. Optional; ErrUnsupported when absent
	ShowCursor(x, y int) error
	HideCursor() error
	Cursor() (x, y int, visible bool)
}

// Attacher is implemented by backends that accept a shadow buffer mounted
// on top of them. At most one buffer may be attached
type Attacher interface {
	Attach(b *Buffer) error
}

// Grid is the embeddable base for concrete backends. It owns dimensions,
// the bounds-check policy, and the single attachment slot for a shadow
// buffer. Optional capabilities default to ErrUnsupported
type Grid struct {
	width, height int
	strict        bool
	attached      *Buffer
}

// Size returns current grid dimensions
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// SetStrict selects the out-of-range policy: strict surfaces
// ErrOutOfRange, non-strict (the default) silently drops the write
func (g *Grid) SetStrict(strict bool) {
	g.strict = strict
}

// InRange reports whether (x, y) lies in [0,w)x[0,h)
func (g *Grid) InRange(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Check validates a coordinate against the configured policy.
// ok is false when the operation must be skipped; err is non-nil only in
// strict mode
func (g *Grid) Check(x, y int) (ok bool, err error) {
	if g.InRange(x, y) {
		return true, nil
	}
	if g.strict {
		return false, ErrOutOfRange
	}
	return false, nil
}

// Attach mounts a shadow buffer on this backend so resizes propagate to it
func (g *Grid) Attach(b *Buffer) error {
	if g.attached != nil {
		return ErrDuplicateAttachment
	}
	g.attached = b
	return nil
}

// Resize updates stored dimensions, then forwards to the attached buffer.
// The outer grid always learns of a geometry change before its shadow
// buffer is asked to grow
func (g *Grid) Resize(width, height int) {
	g.width = width
	g.height = height
	if g.attached != nil {
		g.attached.Resize(width, height)
	}
}

// ReadCell default: write-only backend
func (g *Grid) ReadCell(x, y int) (rune, Attr, error) {
	return 0, AttrUnset, ErrUnsupported
}

// PollEvent default: no input source
func (g *Grid) PollEvent() (Event, error) {
	return Event{}, ErrUnsupported
}

// ShowCursor default: no cursor capability
func (g *Grid) ShowCursor(x, y int) error {
	return ErrUnsupported
}

// HideCursor default: no cursor capability
func (g *Grid) HideCursor() error {
	return ErrUnsupported
}

// Cursor default: no cursor capability
func (g *Grid) Cursor() (int, int, bool) {
	return 0, 0, false
}
