package console

import (
	"bufio"
	"io"
	"os"

	"github.com/lixenwraith/cellterm/backend"
)

// cursorState stages device cursor visibility across batch writes so a
// visible cursor is hidden once before a flush and restored exactly once
// after, never flickering per individual cell
type cursorState uint8

const (
	cursorHidden cursorState = iota
	cursorVisible
	cursorSuppressed // visible, temporarily hidden during a flush
)

// Console is the concrete terminal device backend. Cell writes are
// run-length coalesced and emitted as ANSI escape sequences through a
// buffered writer; attribute and cursor-position directives are only
// sent when they actually change on the device
type Console struct {
	backend.Grid
	out *bufio.Writer
	run *backend.Coalescer

	tty      *tty
	input    *inputReader
	resizeCh chan backend.Event

	// Device state tracking
	lastAttr  backend.Attr
	attrValid bool

	devX, devY int
	posValid   bool

	cursor     cursorState
	curX, curY int

	initialized bool
	finalized   bool
}

// New creates a console backend over the process terminal.
// Init must be called before use
func New() (*Console, error) {
	t, err := openTTY()
	if err != nil {
		return nil, err
	}
	c := &Console{
		out:      bufio.NewWriterSize(t.out, 65536),
		tty:      t,
		resizeCh: make(chan backend.Event, 1),
	}
	c.run = backend.NewCoalescer(c)
	return c, nil
}

// NewWriter creates a console backend over an arbitrary writer with a
// fixed size. No raw mode, input, or resize detection is available;
// used for tests and piped output
func NewWriter(w io.Writer, width, height int) *Console {
	c := &Console{
		out:         bufio.NewWriterSize(w, 65536),
		initialized: true,
	}
	c.run = backend.NewCoalescer(c)
	c.Grid.Resize(width, height)
	return c
}

// Init enters raw mode, switches to the alternate screen, hides the
// cursor, and starts the input reader. Safe to call multiple times
func (c *Console) Init() error {
	if c.initialized {
		return nil
	}

	if err := c.tty.makeRaw(); err != nil {
		return err
	}

	w, h := c.tty.size()
	c.Grid.Resize(w, h)

	c.out.Write(csiAltScreenEnter)
	c.out.Write(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	c.out.Write(csiAutoWrapOff)
	c.out.Write(csiClear)
	c.out.Flush()

	c.cursor = cursorHidden
	c.attrValid = false
	c.posValid = false

	c.input = newInputReader(c.tty)
	c.input.start()
	c.tty.watchResize(func(w, h int) {
		ev := backend.Event{Type: backend.EventResize, Width: w, Height: h}
		// Non-blocking send, replace stale event so the latest size is pending
		select {
		case c.resizeCh <- ev:
		default:
			select {
			case <-c.resizeCh:
			default:
			}
			select {
			case c.resizeCh <- ev:
			default:
			}
		}
	})

	c.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (c *Console) Fini() {
	if !c.initialized || c.finalized || c.tty == nil {
		return
	}

	if c.input != nil {
		c.input.stop()
	}

	c.out.Write(csiCursorShow)
	c.out.Write(csiAltScreenExit)
	// Re-enable auto-wrap after exiting alt screen so the main buffer has wrap enabled
	c.out.Write(csiAutoWrapOn)
	c.out.Write(csiSGR0)
	c.out.Flush()

	c.tty.restore()
	c.finalized = true
}

// WriteCell validates the coordinate and feeds the coalescer
func (c *Console) WriteCell(x, y int, ch rune, attr backend.Attr) error {
	ok, err := c.Check(x, y)
	if !ok {
		return err
	}
	return c.run.WriteCell(x, y, ch, attr)
}

// WriteRun performs the actual device write for one coalesced run.
// Implements backend.RunSink
func (c *Console) WriteRun(x, y int, attr backend.Attr, text []rune) error {
	if c.cursor == cursorVisible {
		c.out.Write(csiCursorHide)
		c.cursor = cursorSuppressed
	}
	if !c.attrValid || attr != c.lastAttr {
		writeAttr(c.out, attr)
		c.lastAttr = attr
		c.attrValid = true
	}
	if !c.posValid || x != c.devX || y != c.devY {
		writeCursorPos(c.out, x, y)
	}
	for _, r := range text {
		if r < 0x80 {
			c.out.WriteByte(byte(r))
		} else {
			c.out.WriteRune(r)
		}
	}
	c.devX = x + len(text)
	c.devY = y
	c.posValid = true
	return nil
}

// Commit flushes the open run, restores a suppressed cursor, and drains
// the output buffer to the device
func (c *Console) Commit() error {
	if err := c.run.Flush(); err != nil {
		return err
	}
	if c.cursor == cursorSuppressed {
		writeCursorPos(c.out, c.curX, c.curY)
		c.out.Write(csiCursorShow)
		c.cursor = cursorVisible
		c.posValid = false
	}
	return c.out.Flush()
}

// ShowCursor makes the device cursor visible at (x, y), clamped to the
// grid
func (c *Console) ShowCursor(x, y int) error {
	if err := c.run.Flush(); err != nil {
		return err
	}
	w, h := c.Size()
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	c.curX = x
	c.curY = y
	writeCursorPos(c.out, x, y)
	if c.cursor == cursorHidden {
		c.out.Write(csiCursorShow)
	}
	c.cursor = cursorVisible
	c.posValid = false
	return nil
}

// HideCursor makes the device cursor invisible
func (c *Console) HideCursor() error {
	if err := c.run.Flush(); err != nil {
		return err
	}
	if c.cursor != cursorHidden {
		c.out.Write(csiCursorHide)
	}
	c.cursor = cursorHidden
	return nil
}

// Cursor returns the device cursor state
func (c *Console) Cursor() (int, int, bool) {
	return c.curX, c.curY, c.cursor != cursorHidden
}

// DetectResize compares the remembered size against the live device
// size. On mismatch it adopts the new geometry (propagating to an
// attached buffer) and returns true so global placement can rerun.
// Cheap enough to poll every redraw tick
func (c *Console) DetectResize() bool {
	if c.tty == nil {
		return false
	}
	w, h := c.tty.size()
	cw, ch := c.Size()
	if w == cw && h == ch {
		return false
	}
	c.Resize(w, h)
	c.attrValid = false
	c.posValid = false
	return true
}

// PollEvent blocks until the next key or resize event
func (c *Console) PollEvent() (backend.Event, error) {
	if c.input == nil {
		return backend.Event{}, backend.ErrUnsupported
	}
	select {
	case ev := <-c.input.events():
		return ev, nil
	case ev := <-c.resizeCh:
		return ev, nil
	}
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Fini cannot run normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	resetTerminalMode()
}
