// Package tcelldriver adapts a tcell.Screen to the backend.Backend
// contract, as an alternative device to the raw ANSI console. tcell owns
// terminal setup, diffing against the physical screen, and input
// decoding; the driver translates cells, cursor state, and events
package tcelldriver

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cellterm/backend"
)

// Driver is a device backend over a tcell.Screen
type Driver struct {
	backend.Grid
	screen tcell.Screen

	curX, curY int
	visible    bool
}

// New creates a driver over a newly allocated platform screen.
// Init must be called before use
func New() (*Driver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps the provided screen (e.g. a SimulationScreen in
// tests)
func NewWithScreen(s tcell.Screen) *Driver {
	return &Driver{screen: s}
}

// Init initializes the screen and adopts its size
func (d *Driver) Init() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	w, h := d.screen.Size()
	d.Grid.Resize(w, h)
	d.screen.HideCursor()
	return nil
}

// Fini restores the terminal
func (d *Driver) Fini() {
	d.screen.Fini()
}

// WriteCell sets one screen cell
func (d *Driver) WriteCell(x, y int, ch rune, attr backend.Attr) error {
	ok, err := d.Check(x, y)
	if !ok {
		return err
	}
	d.screen.SetContent(x, y, ch, nil, styleFor(attr))
	return nil
}

// ReadCell returns the screen cell contents
func (d *Driver) ReadCell(x, y int) (rune, backend.Attr, error) {
	ok, err := d.Check(x, y)
	if !ok {
		return backend.BlankCell.Ch, backend.BlankCell.Attr, err
	}
	ch, _, style, _ := d.screen.GetContent(x, y)
	return ch, attrFor(style), nil
}

// Commit pushes pending screen updates to the terminal
func (d *Driver) Commit() error {
	d.screen.Show()
	return nil
}

// DetectResize compares remembered size against the live screen size;
// on mismatch the new geometry is adopted and propagated to an attached
// buffer
func (d *Driver) DetectResize() bool {
	w, h := d.screen.Size()
	cw, ch := d.Size()
	if w == cw && h == ch {
		return false
	}
	d.Resize(w, h)
	return true
}

// ShowCursor makes the device cursor visible at (x, y)
func (d *Driver) ShowCursor(x, y int) error {
	d.curX = x
	d.curY = y
	d.visible = true
	d.screen.ShowCursor(x, y)
	return nil
}

// HideCursor makes the device cursor invisible
func (d *Driver) HideCursor() error {
	d.visible = false
	d.screen.HideCursor()
	return nil
}

// Cursor returns the device cursor state
func (d *Driver) Cursor() (int, int, bool) {
	return d.curX, d.curY, d.visible
}

// PollEvent blocks until the next key or resize event
func (d *Driver) PollEvent() (backend.Event, error) {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return translateKey(ev), nil
		case *tcell.EventResize:
			w, h := ev.Size()
			return backend.Event{Type: backend.EventResize, Width: w, Height: h}, nil
		case nil:
			return backend.Event{Type: backend.EventClosed}, nil
		}
	}
}

// styleFor maps a packed color pair to a tcell style
func styleFor(a backend.Attr) tcell.Style {
	if !a.IsSet() {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(a.Fg()))).
		Background(tcell.PaletteColor(int(a.Bg())))
}

// attrFor recovers the packed color pair from a tcell style.
// Only styles produced by styleFor round-trip exactly
func attrFor(style tcell.Style) backend.Attr {
	fg, bg, _ := style.Decompose()
	if fg == tcell.ColorDefault && bg == tcell.ColorDefault {
		return backend.AttrUnset
	}
	return backend.NewAttr(paletteIndex(fg), paletteIndex(bg))
}

func paletteIndex(c tcell.Color) backend.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return backend.ColorBlack
	}
	return backend.Color(c & 0x0f)
}

// translateKey converts a tcell key event to a backend event
func translateKey(ev *tcell.EventKey) backend.Event {
	out := backend.Event{Type: backend.EventKey}

	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		out.Modifiers |= backend.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out.Modifiers |= backend.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out.Modifiers |= backend.ModCtrl
	}

	k := ev.Key()
	switch k {
	case tcell.KeyRune:
		out.Key = backend.KeyRune
		out.Rune = ev.Rune()
		return out
	case tcell.KeyEnter:
		out.Key = backend.KeyEnter
		return out
	case tcell.KeyTab:
		out.Key = backend.KeyTab
		return out
	case tcell.KeyBacktab:
		out.Key = backend.KeyBacktab
		return out
	case tcell.KeyEscape:
		out.Key = backend.KeyEscape
		return out
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = backend.KeyBackspace
		return out
	case tcell.KeyDelete:
		out.Key = backend.KeyDelete
		return out
	case tcell.KeyUp:
		out.Key = backend.KeyUp
		return out
	case tcell.KeyDown:
		out.Key = backend.KeyDown
		return out
	case tcell.KeyLeft:
		out.Key = backend.KeyLeft
		return out
	case tcell.KeyRight:
		out.Key = backend.KeyRight
		return out
	case tcell.KeyHome:
		out.Key = backend.KeyHome
		return out
	case tcell.KeyEnd:
		out.Key = backend.KeyEnd
		return out
	case tcell.KeyPgUp:
		out.Key = backend.KeyPageUp
		return out
	case tcell.KeyPgDn:
		out.Key = backend.KeyPageDown
		return out
	case tcell.KeyInsert:
		out.Key = backend.KeyInsert
		return out
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		out.Key = backend.KeyF1 + backend.Key(k-tcell.KeyF1)
		return out
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		out.Key = backend.KeyCtrlA + backend.Key(k-tcell.KeyCtrlA)
		return out
	}

	out.Key = backend.KeyNone
	return out
}
