package frame

import (
	"github.com/lixenwraith/cellterm/backend"
	"github.com/lixenwraith/cellterm/geom"
)

// Align selects how WriteField fits text into its field width
type Align uint8

const (
	AlignLeft  Align = iota // pad right, truncate the right end
	AlignRight              // pad left, truncate the left end
)

// Frame is a positioned canvas with its own write cursor (current output
// column and row, distinct from any device cursor) and a default color
// attribute. Text written to a frame becomes backend cell writes at
// frame-relative coordinates.
//
// A frame borrows its backend reference; the longest holder owns it.
// No line wrapping is implied: callers that need a new line explicitly
// reset the column and advance the row
type Frame struct {
	b        backend.Backend
	rect     geom.Rect
	col, row int
	attr     backend.Attr
}

// New creates a frame over rect r of the borrowed backend
func New(b backend.Backend, r geom.Rect, attr backend.Attr) *Frame {
	return &Frame{b: b, rect: r, attr: attr}
}

// Rect returns the frame rectangle
func (f *Frame) Rect() geom.Rect {
	return f.rect
}

// SetRect repositions the frame and resets the write cursor
func (f *Frame) SetRect(r geom.Rect) {
	f.rect = r
	f.col = 0
	f.row = 0
}

// Attr returns the default attribute
func (f *Frame) Attr() backend.Attr {
	return f.attr
}

// SetAttr sets the default attribute for subsequent writes
func (f *Frame) SetAttr(attr backend.Attr) {
	f.attr = attr
}

// Goto moves the write cursor to a frame-relative position
func (f *Frame) Goto(col, row int) {
	f.col = col
	f.row = row
}

// Pos returns the write cursor position
func (f *Frame) Pos() (col, row int) {
	return f.col, f.row
}

// NewLine resets the column and advances the row
func (f *Frame) NewLine() {
	f.col = 0
	f.row++
}

// PutChar writes one character at the write cursor and advances it
func (f *Frame) PutChar(ch rune) {
	f.b.WriteCell(f.rect.X+f.col, f.rect.Y+f.row, ch, f.attr)
	f.col++
}

// Write emits text at the write cursor with the default attribute
func (f *Frame) Write(s string) {
	f.WriteAttr(s, f.attr)
}

// WriteAttr emits text at the write cursor with an explicit attribute,
// one cell write per character
func (f *Frame) WriteAttr(s string, attr backend.Attr) {
	for _, ch := range s {
		f.b.WriteCell(f.rect.X+f.col, f.rect.Y+f.row, ch, attr)
		f.col++
	}
}

// WriteField clips or pads text to a fixed field width, truncating from
// the end opposite the alignment, never wrapping. Used for labels that
// must not overflow a fixed-width column
func (f *Frame) WriteField(s string, width int, align Align) {
	f.WriteFieldAttr(s, width, align, f.attr)
}

// WriteFieldAttr is WriteField with an explicit attribute
func (f *Frame) WriteFieldAttr(s string, width int, align Align, attr backend.Attr) {
	if width <= 0 {
		return
	}
	if RuneLen(s) > width {
		if align == AlignRight {
			s = TruncateLeft(s, width)
		} else {
			s = Truncate(s, width)
		}
	} else if align == AlignRight {
		s = PadLeft(s, width)
	} else {
		s = PadRight(s, width)
	}
	f.WriteAttr(s, attr)
}

// Fill covers the whole frame with one character in the default
// attribute and resets the write cursor
func (f *Frame) Fill(ch rune) {
	for y := 0; y < f.rect.H; y++ {
		for x := 0; x < f.rect.W; x++ {
			f.b.WriteCell(f.rect.X+x, f.rect.Y+y, ch, f.attr)
		}
	}
	f.col = 0
	f.row = 0
}

// Clear fills the frame with spaces
func (f *Frame) Clear() {
	f.Fill(' ')
}
