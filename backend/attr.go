package backend

// Color is a 4-bit palette index (0-15)
type Color uint8

// Standard 16-color palette indices
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// Attr packs a 4-bit foreground and 4-bit background palette index.
// AttrUnset marks a cell that has never been written
type Attr int16

// AttrUnset is the sentinel for "no attribute assigned"
const AttrUnset Attr = -1

// NewAttr packs foreground and background indices into an attribute
func NewAttr(fg, bg Color) Attr {
	return Attr(bg&0x0f)<<4 | Attr(fg&0x0f)
}

// IsSet returns true unless the attribute is the unset sentinel
func (a Attr) IsSet() bool {
	return a >= 0
}

// Fg returns the foreground palette index
func (a Attr) Fg() Color {
	return Color(a & 0x0f)
}

// Bg returns the background palette index
func (a Attr) Bg() Color {
	return Color(a >> 4 & 0x0f)
}

// Swap exchanges the foreground and background nibbles.
// Used to render the virtual cursor for the duration of one flush
func (a Attr) Swap() Attr {
	if !a.IsSet() {
		return a
	}
	return NewAttr(a.Bg(), a.Fg())
}

// Cell is one character plus its packed color attribute
type Cell struct {
	Ch   rune
	Attr Attr
}

// BlankCell is the state of a never-written cell
var BlankCell = Cell{Ch: ' ', Attr: AttrUnset}
