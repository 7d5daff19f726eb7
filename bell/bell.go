// Package bell produces the audible bell a host application rings on
// rejected input. When an audio device is available the bell is a short
// synthesized tone; otherwise it degrades to the terminal BEL byte
package bell

import (
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	toneHz       = 880
	toneDuration = 60 * time.Millisecond
)

// Bell rings either through the speaker or the fallback writer
type Bell struct {
	out   io.Writer
	sr    beep.SampleRate
	audio bool
}

// New creates a bell, attempting to initialize the audio device.
// Failure is non-fatal; the bell falls back to writing BEL to out
func New(out io.Writer) *Bell {
	b := &Bell{out: out, sr: beep.SampleRate(44100)}
	if err := speaker.Init(b.sr, b.sr.N(time.Second/10)); err == nil {
		b.audio = true
	}
	return b
}

// NewSilent creates a bell that never touches the audio device;
// it only writes BEL to out
func NewSilent(out io.Writer) *Bell {
	return &Bell{out: out, sr: beep.SampleRate(44100)}
}

// Ring sounds the bell
func (b *Bell) Ring() {
	if b.audio {
		if sine, err := generators.SineTone(b.sr, toneHz); err == nil {
			speaker.Play(beep.Take(b.sr.N(toneDuration), sine))
			return
		}
	}
	if b.out != nil {
		b.out.Write([]byte{0x07})
	}
}

// Close releases the audio device
func (b *Bell) Close() {
	if b.audio {
		speaker.Close()
		b.audio = false
	}
}
