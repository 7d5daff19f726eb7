//go:build unix

package console

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// tty wraps the process terminal: raw mode lifecycle, size queries,
// polled reads, and SIGWINCH delivery
type tty struct {
	in, out     *os.File
	inFd, outFd int
	saved       *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func openTTY() (*tty, error) {
	return &tty{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}, nil
}

func (t *tty) makeRaw() error {
	if !term.IsTerminal(t.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return err
	}
	t.saved = old
	return nil
}

func (t *tty) restore() {
	if t.resizeStopCh != nil {
		close(t.resizeStopCh)
		<-t.resizeDoneCh
		t.resizeStopCh = nil
	}
	if t.saved != nil {
		term.Restore(t.inFd, t.saved)
		t.saved = nil
	}
}

func (t *tty) size() (int, int) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// read blocks until input arrives, the stop channel closes, or an error
// occurs. A nil slice with nil error signals a poll timeout or EOF
func (t *tty) read(stopCh <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		// Poll with timeout to allow checking stopCh
		fds := []unix.PollFd{
			{Fd: int32(t.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			return nil, nil // Timeout
		}

		rn, err := unix.Read(t.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}

		if rn == 0 {
			// EOF
			return nil, nil
		}

		ret := make([]byte, rn)
		copy(ret, buf[:rn])
		return ret, nil
	}
}

func (t *tty) watchResize(handler func(width, height int)) {
	t.resizeStopCh = make(chan struct{})
	t.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(t.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-t.resizeStopCh:
				return
			case <-sigCh:
				w, h := t.size()
				if w > 0 && h > 0 {
					handler(w, h)
				}
			}
		}
	}()
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer f.Close()
		fd := int(f.Fd())
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
