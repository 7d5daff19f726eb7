package backend

import "testing"

type runRecord struct {
	x, y int
	attr Attr
	text string
}

type recordingSink struct {
	runs []runRecord
}

func (s *recordingSink) WriteRun(x, y int, attr Attr, text []rune) error {
	s.runs = append(s.runs, runRecord{x, y, attr, string(text)})
	return nil
}

func TestCoalesceContiguousRun(t *testing.T) {
	sink := &recordingSink{}
	c := NewCoalescer(sink)
	attr := NewAttr(ColorWhite, ColorBlack)

	c.WriteCell(3, 1, 'A', attr)
	c.WriteCell(4, 1, 'B', attr)
	c.WriteCell(5, 1, 'C', attr)
	c.Flush()

	if len(sink.runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(sink.runs))
	}
	r := sink.runs[0]
	if r.x != 3 || r.y != 1 || r.text != "ABC" {
		t.Errorf("Expected run ABC at (3, 1), got %q at (%d, %d)", r.text, r.x, r.y)
	}
}

func TestCoalesceBreaks(t *testing.T) {
	attr := NewAttr(ColorWhite, ColorBlack)
	other := NewAttr(ColorRed, ColorBlack)

	tests := []struct {
		name   string
		second writeOp
		want   []runRecord
	}{
		{
			"column gap",
			writeOp{5, 1, 'B', attr},
			[]runRecord{{3, 1, attr, "A"}, {5, 1, attr, "B"}},
		},
		{
			"row change",
			writeOp{4, 2, 'B', attr},
			[]runRecord{{3, 1, attr, "A"}, {4, 2, attr, "B"}},
		},
		{
			"attribute change",
			writeOp{4, 1, 'B', other},
			[]runRecord{{3, 1, attr, "A"}, {4, 1, other, "B"}},
		},
		{
			"backwards write",
			writeOp{2, 1, 'B', attr},
			[]runRecord{{3, 1, attr, "A"}, {2, 1, attr, "B"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			c := NewCoalescer(sink)
			c.WriteCell(3, 1, 'A', attr)
			c.WriteCell(tt.second.x, tt.second.y, tt.second.ch, tt.second.attr)
			c.Flush()

			if len(sink.runs) != len(tt.want) {
				t.Fatalf("Expected %d runs, got %d", len(tt.want), len(sink.runs))
			}
			for i, w := range tt.want {
				if sink.runs[i] != w {
					t.Errorf("Expected run %d to be %+v, got %+v", i, w, sink.runs[i])
				}
			}
		})
	}
}

func TestCoalesceFlushEmpty(t *testing.T) {
	sink := &recordingSink{}
	c := NewCoalescer(sink)
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(sink.runs) != 0 {
		t.Errorf("Expected no runs from empty flush, got %d", len(sink.runs))
	}
}

func TestCoalesceFlushClearsRun(t *testing.T) {
	sink := &recordingSink{}
	c := NewCoalescer(sink)
	attr := NewAttr(ColorWhite, ColorBlack)

	c.WriteCell(0, 0, 'X', attr)
	c.Flush()
	c.Flush()
	if len(sink.runs) != 1 {
		t.Errorf("Expected repeated flush to emit once, got %d runs", len(sink.runs))
	}

	// A write contiguous with the flushed run still starts a new run
	c.WriteCell(1, 0, 'Y', attr)
	c.Flush()
	if len(sink.runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(sink.runs))
	}
	if sink.runs[1].text != "Y" || sink.runs[1].x != 1 {
		t.Errorf("Expected run Y at column 1, got %q at %d", sink.runs[1].text, sink.runs[1].x)
	}
}
