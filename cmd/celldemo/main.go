// Command celldemo drives the full rendering chain: a device backend
// (raw ANSI console by default, tcell with -tcell), a cursor-capable
// shadow buffer, and a window registry with two framed panels plus a
// status bar. Tab cycles focus, arrows move the selection, Enter emits
// a command line, q or Ctrl+C quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/cellterm/backend"
	"github.com/lixenwraith/cellterm/bell"
	"github.com/lixenwraith/cellterm/console"
	"github.com/lixenwraith/cellterm/frame"
	"github.com/lixenwraith/cellterm/geom"
	"github.com/lixenwraith/cellterm/tcelldriver"
	"github.com/lixenwraith/cellterm/wm"
)

// Palette
var (
	panelAttr  = backend.NewAttr(backend.ColorWhite, backend.ColorBlue)
	borderAttr = backend.NewAttr(backend.ColorBrightCyan, backend.ColorBlue)
	selAttr    = backend.NewAttr(backend.ColorBlack, backend.ColorCyan)
	statusAttr = backend.NewAttr(backend.ColorBlack, backend.ColorWhite)
)

// device combines the grid contract with the lifecycle and resize
// capabilities both concrete devices share
type device interface {
	backend.Backend
	Init() error
	Fini()
	DetectResize() bool
}

// panelWindow is a framed, focusable list panel filling one half of the
// screen
type panelWindow struct {
	wm.Base
	title string
	right bool
	items []string
	sel   int
	top   int
}

func (p *panelWindow) Place(devWidth, devHeight int) {
	half := devWidth / 2
	x, w := 0, half
	if p.right {
		x, w = half, devWidth-half
	}
	p.SetRect(geom.New(x, 0, w, max(devHeight-1, 0)))
}

func (p *panelWindow) Draw() {
	r := p.Rect()
	if r.W < 3 || r.H < 3 {
		return
	}
	surface := p.Registry().Surface()
	focused := p.Registry().IsFocused(p)

	f := frame.New(surface, r, panelAttr)
	f.Clear()
	f.SetAttr(borderAttr)
	if focused {
		f.Box(frame.LineDouble)
	} else {
		f.Box(frame.LineSingle)
	}
	f.Title(p.title)

	rows := r.H - 2
	p.scrollTo(rows)
	for i := 0; i < rows && p.top+i < len(p.items); i++ {
		item := p.items[p.top+i]
		attr := panelAttr
		if focused && p.top+i == p.sel {
			attr = selAttr
		}
		f.Goto(1, 1+i)
		f.WriteFieldAttr(" "+item, r.W-2, frame.AlignLeft, attr)
	}
}

// scrollTo keeps the selection inside the visible rows
func (p *panelWindow) scrollTo(rows int) {
	if rows <= 0 {
		return
	}
	if p.sel < p.top {
		p.top = p.sel
	}
	if p.sel >= p.top+rows {
		p.top = p.sel - rows + 1
	}
}

func (p *panelWindow) Input(ev backend.Event) (string, bool) {
	if ev.Type != backend.EventKey {
		return "", false
	}
	switch ev.Key {
	case backend.KeyUp:
		if p.sel > 0 {
			p.sel--
			p.Registry().RequestRedraw()
		}
		return "", false
	case backend.KeyDown:
		if p.sel < len(p.items)-1 {
			p.sel++
			p.Registry().RequestRedraw()
		}
		return "", false
	case backend.KeyHome:
		p.sel = 0
		p.Registry().RequestRedraw()
		return "", false
	case backend.KeyEnd:
		p.sel = max(len(p.items)-1, 0)
		p.Registry().RequestRedraw()
		return "", false
	case backend.KeyEnter:
		if p.sel < len(p.items) {
			return fmt.Sprintf("open %s", p.items[p.sel]), true
		}
	}
	return "", false
}

func (p *panelWindow) PlaceCursor() {
	r := p.Rect()
	if r.W < 3 || r.H < 3 {
		return
	}
	p.Registry().Surface().ShowCursor(r.X+1, r.Y+1+p.sel-p.top)
}

// statusWindow is the non-focusable bottom bar echoing the last command
type statusWindow struct {
	wm.Base
	message string
}

func (s *statusWindow) Place(devWidth, devHeight int) {
	s.SetRect(geom.New(0, max(devHeight-1, 0), devWidth, 1))
}

func (s *statusWindow) Draw() {
	r := s.Rect()
	if r.Empty() {
		return
	}
	f := frame.New(s.Registry().Surface(), r, statusAttr)
	f.Clear()

	hints := " Tab switch · Enter open · q quit "
	msg := s.message
	if msg == "" {
		msg = "ready"
	}
	f.Goto(0, 0)
	f.WriteField(" "+msg, max(r.W-frame.RuneLen(hints), 0), frame.AlignLeft)
	f.WriteField(hints, min(frame.RuneLen(hints), r.W), frame.AlignRight)
}

func main() {
	useTcell := flag.Bool("tcell", false, "render through the tcell device")
	flag.Parse()

	if err := run(*useTcell); err != nil {
		log.Fatal(err)
	}
}

func run(useTcell bool) error {
	var dev device
	if useTcell {
		d, err := tcelldriver.New()
		if err != nil {
			return err
		}
		dev = d
	} else {
		c, err := console.New()
		if err != nil {
			return err
		}
		dev = c
	}

	if err := dev.Init(); err != nil {
		return err
	}
	defer dev.Fini()

	w, h := dev.Size()
	buf, err := backend.NewCursorBuffer(dev, geom.New(0, 0, w, h))
	if err != nil {
		return err
	}

	ring := bell.New(os.Stdout)
	defer ring.Close()

	reg := wm.New(dev, buf)
	left := &panelWindow{Base: wm.NewBase(true), title: "alpha", items: sampleItems("alpha", 14)}
	right := &panelWindow{Base: wm.NewBase(true), title: "beta", right: true, items: sampleItems("beta", 9)}
	status := &statusWindow{Base: wm.NewBase(false)}
	reg.Add(left)
	reg.Add(right)
	reg.Add(status)

	for {
		if err := reg.Redraw(); err != nil {
			return err
		}

		ev, err := buf.PollEvent()
		if err != nil {
			return err
		}

		switch ev.Type {
		case backend.EventResize:
			// Geometry is adopted by DetectResize on the next pass
			continue
		case backend.EventError:
			return ev.Err
		case backend.EventClosed:
			return nil
		case backend.EventKey:
			switch {
			case ev.Key == backend.KeyCtrlC,
				ev.Key == backend.KeyRune && ev.Rune == 'q':
				return nil
			case ev.Key == backend.KeyTab, ev.Key == backend.KeyBacktab:
				reg.FocusNext()
			default:
				if cmd, ok := reg.Dispatch(ev); ok {
					status.message = cmd
					reg.RequestRedraw()
				} else if ev.Key == backend.KeyRune {
					ring.Ring()
				}
			}
		}
	}
}

func sampleItems(prefix string, n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("%s-%02d", prefix, i+1)
	}
	return items
}
