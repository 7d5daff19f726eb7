package console

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/cellterm/backend"
)

func writeString(t *testing.T, c *Console, x, y int, s string, attr backend.Attr) {
	t.Helper()
	for i, r := range []rune(s) {
		if err := c.WriteCell(x+i, y, r, attr); err != nil {
			t.Fatalf("WriteCell failed: %v", err)
		}
	}
}

func TestConsoleRunEmission(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)
	attr := backend.NewAttr(backend.ColorWhite, backend.ColorBlue)

	writeString(t, c, 2, 1, "HI", attr)
	if err := c.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	want := "\x1b[0;37;44m\x1b[2;3HHI"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}
}

func TestConsoleAttrEmittedOncePerChange(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)
	attr := backend.NewAttr(backend.ColorWhite, backend.ColorBlue)

	// Two runs on different rows, same attribute: one SGR, two positions
	writeString(t, c, 0, 0, "AA", attr)
	writeString(t, c, 0, 1, "BB", attr)
	c.Commit()

	want := "\x1b[0;37;44m\x1b[1;1HAA\x1b[2;1HBB"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}
}

func TestConsoleContiguousRunSkipsReposition(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)
	attr := backend.NewAttr(backend.ColorWhite, backend.ColorBlue)

	writeString(t, c, 0, 0, "AB", attr)
	c.Commit()
	out.Reset()

	// Device cursor already sits at column 2 with the same attribute:
	// the run body is all that goes out
	writeString(t, c, 2, 0, "C", attr)
	c.Commit()
	if got := out.String(); got != "C" {
		t.Errorf("Expected bare run body %q, got %q", "C", got)
	}
}

func TestConsoleAttrChangeEmitsSGR(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)
	a1 := backend.NewAttr(backend.ColorWhite, backend.ColorBlue)
	a2 := backend.NewAttr(backend.ColorBrightYellow, backend.ColorBrightBlack)

	writeString(t, c, 0, 0, "A", a1)
	writeString(t, c, 1, 0, "B", a2)
	c.Commit()

	want := "\x1b[0;37;44m\x1b[1;1HA\x1b[0;93;100mB"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}
}

func TestConsoleUnsetAttrRendersReset(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)

	writeString(t, c, 0, 0, "X", backend.AttrUnset)
	c.Commit()

	want := "\x1b[0m\x1b[1;1HX"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}
}

func TestConsoleOutOfRangeDropped(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 10, 5)

	if err := c.WriteCell(50, 50, 'X', 0); err != nil {
		t.Fatalf("Expected silent drop, got %v", err)
	}
	c.Commit()
	if out.Len() != 0 {
		t.Errorf("Expected no output for dropped write, got %q", out.String())
	}
}

func TestConsoleCursorShow(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)

	if err := c.ShowCursor(3, 2); err != nil {
		t.Fatalf("ShowCursor failed: %v", err)
	}
	c.Commit()

	want := "\x1b[3;4H\x1b[?25h"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}

	x, y, visible := c.Cursor()
	if x != 3 || y != 2 || !visible {
		t.Errorf("Expected visible cursor at (3, 2), got (%d, %d) visible %v", x, y, visible)
	}
}

func TestConsoleCursorClamped(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 10, 5)

	c.ShowCursor(50, 50)
	x, y, _ := c.Cursor()
	if x != 9 || y != 4 {
		t.Errorf("Expected cursor clamped to (9, 4), got (%d, %d)", x, y)
	}
}

func TestConsoleCursorStagedAcrossWrites(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)
	attr := backend.NewAttr(backend.ColorWhite, backend.ColorBlue)

	c.ShowCursor(5, 5)
	c.Commit()
	out.Reset()

	// A batch write hides the visible cursor once, and Commit restores it
	// at its staged position exactly once
	writeString(t, c, 0, 0, "AB", attr)
	c.Commit()

	want := "\x1b[?25l\x1b[0;37;44m\x1b[1;1HAB\x1b[6;6H\x1b[?25h"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}

	_, _, visible := c.Cursor()
	if !visible {
		t.Error("Expected cursor to remain logically visible")
	}
}

func TestConsoleHideCursor(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 80, 24)

	c.ShowCursor(1, 1)
	c.Commit()
	out.Reset()

	c.HideCursor()
	c.Commit()
	if got := out.String(); got != "\x1b[?25l" {
		t.Errorf("Expected hide sequence, got %q", got)
	}

	// Hiding a hidden cursor emits nothing
	out.Reset()
	c.HideCursor()
	c.Commit()
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestConsoleLargeCoordinates(t *testing.T) {
	var out bytes.Buffer
	c := NewWriter(&out, 200, 60)
	attr := backend.NewAttr(backend.ColorGreen, backend.ColorBlack)

	writeString(t, c, 119, 49, "*", attr)
	c.Commit()

	want := "\x1b[0;32;40m\x1b[50;120H*"
	if got := out.String(); got != want {
		t.Errorf("Expected output %q, got %q", want, got)
	}
}
