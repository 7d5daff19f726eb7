package bell

import (
	"bytes"
	"testing"
)

func TestSilentBellWritesBEL(t *testing.T) {
	var out bytes.Buffer
	b := NewSilent(&out)
	defer b.Close()

	b.Ring()
	if got := out.Bytes(); len(got) != 1 || got[0] != 0x07 {
		t.Errorf("Expected single BEL byte, got %v", got)
	}

	b.Ring()
	if out.Len() != 2 {
		t.Errorf("Expected one BEL per ring, got %d bytes", out.Len())
	}
}

func TestSilentBellNilWriter(t *testing.T) {
	b := NewSilent(nil)
	defer b.Close()
	// Must not panic
	b.Ring()
}
