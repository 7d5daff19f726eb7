package backend

// RunSink receives coalesced horizontal runs: maximal sequences of
// adjacent same-row, same-attribute cells collapsed into one device write
type RunSink interface {
	WriteRun(x, y int, attr Attr, text []rune) error
}

// Coalescer batches consecutive cell writes into runs before handing them
// to a sink. Device writes have high fixed latency per call; since text
// is predominantly written left-to-right in same-colored spans (labels,
// borders), coalescing collapses O(cells) device calls into O(runs)
type Coalescer struct {
	sink RunSink

	startX, row int
	attr        Attr
	pending     []rune
	open        bool
}

// NewCoalescer creates a coalescer feeding the given sink
func NewCoalescer(sink RunSink) *Coalescer {
	return &Coalescer{
		sink:    sink,
		pending: make([]rune, 0, 128),
	}
}

// WriteCell appends to the open run when (x, y) is exactly the next
// column on the same row with the same attribute; any contiguity break
// flushes the previous run and starts a new one-cell run
func (c *Coalescer) WriteCell(x, y int, ch rune, attr Attr) error {
	if c.open && y == c.row && x == c.startX+len(c.pending) && attr == c.attr {
		c.pending = append(c.pending, ch)
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}
	c.open = true
	c.startX = x
	c.row = y
	c.attr = attr
	c.pending = append(c.pending[:0], ch)
	return nil
}

// Flush emits the open run, if any, and clears it
func (c *Coalescer) Flush() error {
	if !c.open {
		return nil
	}
	err := c.sink.WriteRun(c.startX, c.row, c.attr, c.pending)
	c.open = false
	c.pending = c.pending[:0]
	return err
}
