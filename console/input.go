package console

import (
	"unicode/utf8"

	"github.com/lixenwraith/cellterm/backend"
)

// escapeSequence maps a CSI sequence tail to a key
// Key: sequence after ESC [ (e.g., "A" for up arrow)
type escapeSequence struct {
	seq string
	key backend.Key
	mod backend.Modifier
}

// Known escape sequences (CSI sequences: ESC [ ...)
var csiSequences = []escapeSequence{
	// Arrow keys
	{"A", backend.KeyUp, backend.ModNone},
	{"B", backend.KeyDown, backend.ModNone},
	{"C", backend.KeyRight, backend.ModNone},
	{"D", backend.KeyLeft, backend.ModNone},
	{"Z", backend.KeyBacktab, backend.ModShift}, // Shift+Tab

	// Arrow keys with modifiers (xterm style: ESC [ 1 ; mod X)
	{"1;2A", backend.KeyUp, backend.ModShift},
	{"1;2B", backend.KeyDown, backend.ModShift},
	{"1;2C", backend.KeyRight, backend.ModShift},
	{"1;2D", backend.KeyLeft, backend.ModShift},
	{"1;5A", backend.KeyUp, backend.ModCtrl},
	{"1;5B", backend.KeyDown, backend.ModCtrl},
	{"1;5C", backend.KeyRight, backend.ModCtrl},
	{"1;5D", backend.KeyLeft, backend.ModCtrl},

	// Navigation
	{"H", backend.KeyHome, backend.ModNone},
	{"F", backend.KeyEnd, backend.ModNone},
	{"1~", backend.KeyHome, backend.ModNone},
	{"4~", backend.KeyEnd, backend.ModNone},
	{"5~", backend.KeyPageUp, backend.ModNone},
	{"6~", backend.KeyPageDown, backend.ModNone},
	{"2~", backend.KeyInsert, backend.ModNone},
	{"3~", backend.KeyDelete, backend.ModNone},
	{"7~", backend.KeyHome, backend.ModNone},
	{"8~", backend.KeyEnd, backend.ModNone},

	// Function keys (xterm)
	{"11~", backend.KeyF1, backend.ModNone},
	{"12~", backend.KeyF2, backend.ModNone},
	{"13~", backend.KeyF3, backend.ModNone},
	{"14~", backend.KeyF4, backend.ModNone},
	{"15~", backend.KeyF5, backend.ModNone},
	{"17~", backend.KeyF6, backend.ModNone},
	{"18~", backend.KeyF7, backend.ModNone},
	{"19~", backend.KeyF8, backend.ModNone},
	{"20~", backend.KeyF9, backend.ModNone},
	{"21~", backend.KeyF10, backend.ModNone},
	{"23~", backend.KeyF11, backend.ModNone},
	{"24~", backend.KeyF12, backend.ModNone},
}

// inputReader handles raw stdin parsing
type inputReader struct {
	t       *tty
	eventCh chan backend.Event
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Persistent buffer for stream assembly; partial escape and UTF-8
	// sequences survive read boundaries
	buf []byte
}

func newInputReader(t *tty) *inputReader {
	return &inputReader{
		t:       t,
		eventCh: make(chan backend.Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	go r.readLoop()
}

func (r *inputReader) stop() {
	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) events() <-chan backend.Event {
	return r.eventCh
}

func (r *inputReader) sendEvent(ev backend.Event) {
	select {
	case r.eventCh <- ev:
	case <-r.stopCh:
	}
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	for {
		data, err := r.t.read(r.stopCh)
		if err != nil {
			r.sendEvent(backend.Event{Type: backend.EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Timeout or EOF; a pending lone ESC is a standalone escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.sendEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				r.sendEvent(backend.Event{Type: backend.EventClosed})
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parseInput parses raw bytes into events and returns bytes consumed
// (stops on an incomplete sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Key != backend.KeyNone {
				r.sendEvent(ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != backend.KeyNone {
				r.sendEvent(ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			r.sendEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			// Invalid start byte, skip
			i++
			continue
		}
		if i+seqLen > n {
			return i // Incomplete UTF-8, wait for more data
		}
		rn, size := utf8.DecodeRune(data[i:])
		r.sendEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: rn})
		i += size
	}
	return i
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// parseControl maps a C0 control byte to a key event
func parseControl(b byte) backend.Event {
	switch b {
	case 0x0d, 0x0a:
		return backend.Event{Type: backend.EventKey, Key: backend.KeyEnter}
	case 0x09:
		return backend.Event{Type: backend.EventKey, Key: backend.KeyTab}
	case 0x08:
		return backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace}
	}
	if b >= 0x01 && b <= 0x1a {
		return backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlA + backend.Key(b-1)}
	}
	return backend.Event{}
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, backend.Event) {
	if len(data) < 2 {
		return 0, backend.Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, backend.Event{Type: backend.EventKey, Key: backend.KeyEscape, Modifiers: backend.ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= backend.ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: rune(data[1]), Modifiers: backend.ModAlt}
	}

	return 2, backend.Event{}
}

// parseCSI parses a CSI sequence without allocation
func parseCSI(data []byte) (int, backend.Event) {
	if len(data) < 3 {
		return 0, backend.Event{}
	}

	end := 2
	final := false
	maxScan := min(len(data), 16)
	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			final = true
			break
		}
		if b < 0x20 || b > 0x7e {
			// Garbage inside sequence; swallow what we scanned
			return end + 1, backend.Event{}
		}
		end++
	}
	if !final {
		if len(data) < 16 {
			return 0, backend.Event{} // Incomplete, wait for more
		}
		return end, backend.Event{} // Oversized unknown sequence, swallow
	}

	tail := string(data[2:end])
	for _, s := range csiSequences {
		if s.seq == tail {
			return end, backend.Event{Type: backend.EventKey, Key: s.key, Modifiers: s.mod}
		}
	}
	// Unknown sequence, swallow
	return end, backend.Event{}
}

// parseSS3 parses ESC O sequences (application mode keys)
func parseSS3(data []byte) (int, backend.Event) {
	if len(data) < 3 {
		return 0, backend.Event{}
	}
	switch data[2] {
	case 'P':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyF1}
	case 'Q':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyF2}
	case 'R':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyF3}
	case 'S':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyF4}
	case 'H':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyHome}
	case 'F':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyEnd}
	case 'A':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyUp}
	case 'B':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyDown}
	case 'C':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyRight}
	case 'D':
		return 3, backend.Event{Type: backend.EventKey, Key: backend.KeyLeft}
	}
	return 3, backend.Event{}
}
