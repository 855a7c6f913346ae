//go:build !windows

package terminal

import (
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixTerminal struct {
	prior       *term.State
	lastTimeout time.Duration
}

func New() Terminal {
	return &unixTerminal{}
}

func (t *unixTerminal) EnableRawMode() error {
	st, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	t.prior = st
	t.lastTimeout = -1
	return nil
}

func (t *unixTerminal) DisableRawMode() error {
	if t.prior == nil {
		return nil
	}
	err := term.Restore(int(os.Stdin.Fd()), t.prior)
	t.prior = nil
	return err
}

func (t *unixTerminal) GetWindowSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func (t *unixTerminal) Stdout() io.Writer {
	return os.Stdout
}

func (t *unixTerminal) Close() error {
	return t.DisableRawMode()
}

func (t *unixTerminal) ReadKey(timeout time.Duration) (Key, error) {
	if err := t.setReadTimeout(timeout); err != nil {
		return Key{}, err
	}
	first := true
	return decodeKey(func() (byte, bool, error) {
		if first {
			first = false
			return t.nextByte()
		}
		return t.nextTailByte()
	})
}

// setReadTimeout switches the tty to VMIN=0/VTIME polling so that a
// read returns empty once the timer expires. VTIME counts in tenths
// of a second; sub-100ms timeouts round up to one tick.
func (t *unixTerminal) setReadTimeout(timeout time.Duration) error {
	if timeout == t.lastTimeout {
		return nil
	}
	fd := int(os.Stdin.Fd())
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	deci := int64(timeout / (100 * time.Millisecond))
	if deci < 1 {
		deci = 1
	}
	if deci > 255 {
		deci = 255
	}
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = uint8(deci)
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, tio); err != nil {
		return err
	}
	t.lastTimeout = timeout
	return nil
}

// nextTailByte reads the remainder of an escape sequence, waiting at
// most escTimeout. VTIME granularity is a tenth of a second, too
// coarse to distinguish a bare ESC quickly, so the short wait is done
// with poll before the read.
func (t *unixTerminal) nextTailByte() (byte, bool, error) {
	fd := int32(os.Stdin.Fd())
	for {
		fds := []unix.PollFd{{Fd: fd, Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(escTimeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		return t.nextByte()
	}
}

func (t *unixTerminal) nextByte() (byte, bool, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(int(os.Stdin.Fd()), buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		return buf[0], true, nil
	}
}
