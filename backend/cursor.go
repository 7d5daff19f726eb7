package backend

import "github.com/lixenwraith/cellterm/geom"

// CursorBuffer is a Buffer that renders a virtual cursor by swapping the
// color nibbles of one cell for exactly the duration of a flush pass.
// Stored cell state is never permanently altered: the toggle is applied
// before the diff runs and reverted after, which also means a moved or
// hidden cursor leaves a pending diff that cleans up the old cell on the
// next commit
type CursorBuffer struct {
	*Buffer
	curX, curY int
	visible    bool
}

// NewCursorBuffer creates a cursor-capable shadow buffer covering rect r
// of the wrapped backend
func NewCursorBuffer(next Backend, r geom.Rect) (*CursorBuffer, error) {
	b, err := NewBuffer(next, r)
	if err != nil {
		return nil, err
	}
	return &CursorBuffer{Buffer: b}, nil
}

// ShowCursor places the virtual cursor. An out-of-range request is
// recorded as hidden rather than failing the caller
func (c *CursorBuffer) ShowCursor(x, y int) error {
	if !c.InRange(x, y) {
		c.visible = false
		return nil
	}
	c.curX = x
	c.curY = y
	c.visible = true
	return nil
}

// HideCursor hides the virtual cursor
func (c *CursorBuffer) HideCursor() error {
	c.visible = false
	return nil
}

// Cursor returns the virtual cursor state
func (c *CursorBuffer) Cursor() (int, int, bool) {
	return c.curX, c.curY, c.visible
}

// Commit flushes with the cursor cell toggled for the duration of the
// diff pass
func (c *CursorBuffer) Commit() error {
	toggled := c.toggleCursorCell()
	err := c.Buffer.Commit()
	if toggled {
		c.toggleCursorCell()
	}
	return err
}

// ForceRedraw flushes every cell with the cursor cell toggled
func (c *CursorBuffer) ForceRedraw() error {
	toggled := c.toggleCursorCell()
	err := c.Buffer.ForceRedraw()
	if toggled {
		c.toggleCursorCell()
	}
	return err
}

// toggleCursorCell swaps the attribute nibbles of the cursor cell.
// Returns false when nothing was swapped: cursor hidden, out of range
// after a shrink, or the cell never written
func (c *CursorBuffer) toggleCursorCell() bool {
	if !c.visible || !c.InRange(c.curX, c.curY) {
		return false
	}
	p := &c.cells[c.curY*c.width+c.curX]
	if !p.cur.Attr.IsSet() {
		return false
	}
	p.cur.Attr = p.cur.Attr.Swap()
	return true
}
