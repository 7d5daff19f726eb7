package frame

import (
	"testing"

	"github.com/lixenwraith/cellterm/backend"
	"github.com/lixenwraith/cellterm/geom"
)

// gridBackend is an in-memory cell store for asserting rendered output
type gridBackend struct {
	backend.Grid
	cells map[[2]int]backend.Cell
}

func newGridBackend(w, h int) *gridBackend {
	g := &gridBackend{cells: make(map[[2]int]backend.Cell)}
	g.Grid.Resize(w, h)
	return g
}

func (g *gridBackend) WriteCell(x, y int, ch rune, attr backend.Attr) error {
	ok, err := g.Check(x, y)
	if !ok {
		return err
	}
	g.cells[[2]int{x, y}] = backend.Cell{Ch: ch, Attr: attr}
	return nil
}

func (g *gridBackend) Commit() error {
	return nil
}

// row renders columns [x0, x1) of row y as a string, blanks for
// unwritten cells
func (g *gridBackend) row(y, x0, x1 int) string {
	out := make([]rune, 0, x1-x0)
	for x := x0; x < x1; x++ {
		if c, ok := g.cells[[2]int{x, y}]; ok {
			out = append(out, c.Ch)
		} else {
			out = append(out, ' ')
		}
	}
	return string(out)
}

var testAttr = backend.NewAttr(backend.ColorWhite, backend.ColorBlack)

func TestFrameWriteTranslatesCoordinates(t *testing.T) {
	g := newGridBackend(20, 10)
	f := New(g, geom.New(2, 3, 10, 5), testAttr)

	f.Goto(1, 1)
	f.Write("hi")

	if got := g.row(4, 3, 5); got != "hi" {
		t.Errorf("Expected %q at device row 4, got %q", "hi", got)
	}
	col, row := f.Pos()
	if col != 3 || row != 1 {
		t.Errorf("Expected write cursor at (3, 1), got (%d, %d)", col, row)
	}
}

func TestFrameWriteAttr(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 10, 5), testAttr)
	hot := backend.NewAttr(backend.ColorRed, backend.ColorBlack)

	f.WriteAttr("x", hot)
	if c := g.cells[[2]int{0, 0}]; c.Attr != hot {
		t.Errorf("Expected explicit attr %d, got %d", hot, c.Attr)
	}

	// Default attribute is untouched
	f.Write("y")
	if c := g.cells[[2]int{1, 0}]; c.Attr != testAttr {
		t.Errorf("Expected default attr %d, got %d", testAttr, c.Attr)
	}
}

func TestFrameNewLine(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 10, 5), testAttr)

	f.Write("ab")
	f.NewLine()
	f.Write("cd")

	if got := g.row(0, 0, 2); got != "ab" {
		t.Errorf("Expected row 0 %q, got %q", "ab", got)
	}
	if got := g.row(1, 0, 2); got != "cd" {
		t.Errorf("Expected row 1 %q, got %q", "cd", got)
	}
}

func TestFramePutChar(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 10, 5), testAttr)

	f.PutChar('A')
	f.PutChar('B')
	if got := g.row(0, 0, 2); got != "AB" {
		t.Errorf("Expected %q, got %q", "AB", got)
	}
}

func TestFrameWriteField(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		align Align
		want  string
	}{
		{"left pad", "ab", 5, AlignLeft, "ab   "},
		{"right pad", "ab", 5, AlignRight, "   ab"},
		{"left truncate", "abcdef", 4, AlignLeft, "abc…"},
		{"right truncate", "abcdef", 4, AlignRight, "…def"},
		{"exact fit", "abcd", 4, AlignLeft, "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGridBackend(10, 3)
			f := New(g, geom.New(0, 0, 10, 3), testAttr)
			f.WriteField(tt.s, tt.width, tt.align)
			if got := g.row(0, 0, tt.width); got != tt.want {
				t.Errorf("Expected field %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFrameWriteFieldZeroWidth(t *testing.T) {
	g := newGridBackend(10, 3)
	f := New(g, geom.New(0, 0, 10, 3), testAttr)
	f.WriteField("x", 0, AlignLeft)
	if len(g.cells) != 0 {
		t.Errorf("Expected no writes for zero-width field, got %d", len(g.cells))
	}
}

func TestFrameFillAndClear(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(1, 1, 3, 2), testAttr)

	f.Fill('#')
	if got := g.row(1, 1, 4); got != "###" {
		t.Errorf("Expected filled row %q, got %q", "###", got)
	}
	if got := g.row(2, 1, 4); got != "###" {
		t.Errorf("Expected filled row %q, got %q", "###", got)
	}
	// Outside the frame stays untouched
	if _, ok := g.cells[[2]int{0, 1}]; ok {
		t.Error("Expected cell left of frame to stay unwritten")
	}
	if _, ok := g.cells[[2]int{4, 1}]; ok {
		t.Error("Expected cell right of frame to stay unwritten")
	}

	f.Clear()
	if got := g.row(1, 1, 4); got != "   " {
		t.Errorf("Expected cleared row, got %q", got)
	}
}

func TestFrameBox(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 5, 3), testAttr)

	f.Box(LineSingle)
	if got := g.row(0, 0, 5); got != "┌───┐" {
		t.Errorf("Expected top border %q, got %q", "┌───┐", got)
	}
	if got := g.row(1, 0, 5); got != "│   │" {
		t.Errorf("Expected middle border %q, got %q", "│   │", got)
	}
	if got := g.row(2, 0, 5); got != "└───┘" {
		t.Errorf("Expected bottom border %q, got %q", "└───┘", got)
	}
}

func TestFrameBoxDouble(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 4, 3), testAttr)

	f.Box(LineDouble)
	if got := g.row(0, 0, 4); got != "╔══╗" {
		t.Errorf("Expected top border %q, got %q", "╔══╗", got)
	}
	if got := g.row(2, 0, 4); got != "╚══╝" {
		t.Errorf("Expected bottom border %q, got %q", "╚══╝", got)
	}
}

func TestFrameBoxTooSmall(t *testing.T) {
	g := newGridBackend(10, 5)
	f := New(g, geom.New(0, 0, 1, 1), testAttr)
	f.Box(LineSingle)
	if len(g.cells) != 0 {
		t.Errorf("Expected no writes for degenerate box, got %d", len(g.cells))
	}
}

func TestFrameTitle(t *testing.T) {
	g := newGridBackend(12, 5)
	f := New(g, geom.New(0, 0, 10, 3), testAttr)

	f.Box(LineSingle)
	f.Title("log")
	if got := g.row(0, 0, 10); got != "┌─ log ──┐" {
		t.Errorf("Expected titled border %q, got %q", "┌─ log ──┐", got)
	}
}

func TestFrameTitleTruncated(t *testing.T) {
	g := newGridBackend(12, 5)
	f := New(g, geom.New(0, 0, 7, 3), testAttr)

	f.Title("longtitle")
	// " longtitle " clipped to the inner width of 5
	if got := g.row(0, 1, 6); got != " lon…" {
		t.Errorf("Expected truncated title %q, got %q", " lon…", got)
	}
}

func TestTextHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"truncate short", Truncate("ab", 5), "ab"},
		{"truncate long", Truncate("abcdef", 3), "ab…"},
		{"truncate to one", Truncate("abc", 1), "…"},
		{"truncate left long", TruncateLeft("abcdef", 3), "…ef"},
		{"pad right", PadRight("ab", 4), "ab  "},
		{"pad left", PadLeft("ab", 4), "  ab"},
		{"pad no-op", PadRight("abcd", 2), "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestRuneLen(t *testing.T) {
	if n := RuneLen("héllo"); n != 5 {
		t.Errorf("Expected rune length 5, got %d", n)
	}
}
