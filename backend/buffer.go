package backend

import "github.com/lixenwraith/cellterm/geom"

// cellPair tracks the shadow state of one cell: the value written since
// the last commit and the value last forwarded to the wrapped backend
type cellPair struct {
	cur     Cell
	flushed Cell
}

var blankPair = cellPair{cur: BlankCell, flushed: BlankCell}

// Buffer is an in-memory shadow grid mounted at an offset on a wrapped
// backend. Writes land in the shadow only; Commit forwards exactly the
// cells whose value changed since the previous commit, so redraw cost is
// proportional to changed cells rather than grid area
type Buffer struct {
	Grid
	next             Backend
	offsetX, offsetY int
	cells            []cellPair
}

// NewBuffer creates a shadow buffer covering rect r of the wrapped
// backend and attaches it so resizes propagate. Fails with
// ErrDuplicateAttachment when the wrapped backend already holds a buffer
func NewBuffer(next Backend, r geom.Rect) (*Buffer, error) {
	b := &Buffer{next: next, offsetX: r.X, offsetY: r.Y}
	b.remap(0, 0, r.W, r.H)
	b.width, b.height = r.W, r.H
	if a, ok := next.(Attacher); ok {
		if err := a.Attach(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Offset returns where the buffer is mounted on the wrapped backend
func (b *Buffer) Offset() (x, y int) {
	return b.offsetX, b.offsetY
}

// Reposition mounts the buffer at a new rectangle. Shadow state for the
// moved region cannot be trusted afterwards; callers follow up with
// ForceRedraw
func (b *Buffer) Reposition(r geom.Rect) {
	b.offsetX = r.X
	b.offsetY = r.Y
	b.Resize(r.W, r.H)
}

// WriteCell updates the shadow state only; no I/O happens here.
// Overlapping writes to one cell before a commit cost O(1) each and only
// the final value is ever flushed
func (b *Buffer) WriteCell(x, y int, ch rune, attr Attr) error {
	ok, err := b.Check(x, y)
	if !ok {
		return err
	}
	b.cells[y*b.width+x].cur = Cell{Ch: ch, Attr: attr}
	return nil
}

// ReadCell returns the current shadow value
func (b *Buffer) ReadCell(x, y int) (rune, Attr, error) {
	ok, err := b.Check(x, y)
	if !ok {
		return BlankCell.Ch, BlankCell.Attr, err
	}
	c := b.cells[y*b.width+x].cur
	return c.Ch, c.Attr, nil
}

// Commit forwards changed cells to the wrapped backend at the mount
// offset, syncs shadow state, then commits the wrapped backend
func (b *Buffer) Commit() error {
	if err := b.flush(false); err != nil {
		return err
	}
	return b.next.Commit()
}

// ForceRedraw forwards every cell regardless of diff state. Used once per
// full-screen repaint where flushed state across a moved or resized
// region cannot be trusted
func (b *Buffer) ForceRedraw() error {
	if err := b.flush(true); err != nil {
		return err
	}
	return b.next.Commit()
}

func (b *Buffer) flush(force bool) error {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			p := &b.cells[row+x]
			if !force && p.cur == p.flushed {
				continue
			}
			if err := b.next.WriteCell(b.offsetX+x, b.offsetY+y, p.cur.Ch, p.cur.Attr); err != nil {
				return err
			}
			p.flushed = p.cur
		}
	}
	return nil
}

// Resize grows shadow storage per the doubling rule; shrinking never
// reallocates. Cells at unchanged coordinates are preserved, newly
// exposed cells start blank with the unset attribute on both halves so
// any real write to them is guaranteed to flush
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width != b.width || height != b.height {
		b.remap(b.width, b.height, width, height)
		b.width = width
		b.height = height
	}
	if b.attached != nil {
		b.attached.Resize(width, height)
	}
}

// remap rearranges row-major storage for new dimensions
func (b *Buffer) remap(oldW, oldH, newW, newH int) {
	need := newW * newH
	keepW := min(oldW, newW)
	keepH := min(oldH, newH)

	if need > cap(b.cells) {
		newCap := max(1, cap(b.cells))
		for newCap < need {
			newCap *= 2
		}
		fresh := make([]cellPair, need, newCap)
		for i := range fresh {
			fresh[i] = blankPair
		}
		for y := 0; y < keepH; y++ {
			copy(fresh[y*newW:y*newW+keepW], b.cells[y*oldW:y*oldW+keepW])
		}
		b.cells = fresh
		return
	}

	// Within capacity: remap rows in place
	cells := b.cells[:cap(b.cells)]
	if newW > oldW {
		// Rows move toward higher indices; walk from the last kept row so
		// a destination never clobbers a source row not yet moved
		for y := keepH - 1; y >= 0; y-- {
			copy(cells[y*newW:y*newW+keepW], cells[y*oldW:y*oldW+keepW])
		}
	} else if newW < oldW {
		for y := 0; y < keepH; y++ {
			copy(cells[y*newW:y*newW+keepW], cells[y*oldW:y*oldW+keepW])
		}
	}
	b.cells = cells[:need]

	// Blank newly exposed columns and rows
	for y := 0; y < keepH; y++ {
		for x := keepW; x < newW; x++ {
			b.cells[y*newW+x] = blankPair
		}
	}
	for i := keepH * newW; i < need; i++ {
		b.cells[i] = blankPair
	}
}

// PollEvent forwards to the wrapped backend
func (b *Buffer) PollEvent() (Event, error) {
	return b.next.PollEvent()
}

// ShowCursor forwards to the wrapped backend at the mount offset
func (b *Buffer) ShowCursor(x, y int) error {
	return b.next.ShowCursor(b.offsetX+x, b.offsetY+y)
}

// HideCursor forwards to the wrapped backend
func (b *Buffer) HideCursor() error {
	return b.next.HideCursor()
}

// Cursor returns the wrapped backend cursor in buffer coordinates
func (b *Buffer) Cursor() (int, int, bool) {
	x, y, visible := b.next.Cursor()
	return x - b.offsetX, y - b.offsetY, visible
}
