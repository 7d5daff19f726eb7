package frame

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle LineType = iota // ┌─┐│└┘
	LineDouble                 // ╔═╗║╚╝
)

// Box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineSingle: {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble: {'╔', '═', '╗', '║', '╚', '╝'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Box draws a border around the frame edge in the default attribute
func (f *Frame) Box(line LineType) {
	r := f.rect
	if r.W < 2 || r.H < 2 {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	chars := boxChars[line]

	// Corners
	f.b.WriteCell(r.X, r.Y, chars[boxTL], f.attr)
	f.b.WriteCell(r.X+r.W-1, r.Y, chars[boxTR], f.attr)
	f.b.WriteCell(r.X, r.Y+r.H-1, chars[boxBL], f.attr)
	f.b.WriteCell(r.X+r.W-1, r.Y+r.H-1, chars[boxBR], f.attr)

	// Horizontal edges
	for x := 1; x < r.W-1; x++ {
		f.b.WriteCell(r.X+x, r.Y, chars[boxH], f.attr)
		f.b.WriteCell(r.X+x, r.Y+r.H-1, chars[boxH], f.attr)
	}

	// Vertical edges
	for y := 1; y < r.H-1; y++ {
		f.b.WriteCell(r.X, r.Y+y, chars[boxV], f.attr)
		f.b.WriteCell(r.X+r.W-1, r.Y+y, chars[boxV], f.attr)
	}
}

// Title writes a label centered on the top border row
func (f *Frame) Title(s string) {
	if f.rect.W <= 4 || s == "" {
		return
	}
	text := " " + s + " "
	if RuneLen(text) > f.rect.W-2 {
		text = Truncate(text, f.rect.W-2)
	}
	f.Goto((f.rect.W-RuneLen(text))/2, 0)
	f.Write(text)
}
