// Package terminal owns the raw-mode tty: enabling and restoring the
// console state, reporting the window size, and turning raw input
// bytes into decoded key events. The editor never touches escape
// sequences or console modes directly.
package terminal

import (
	"errors"
	"io"
	"time"
)

// KeyKind enumerates the events the editor understands. Anything the
// decoder cannot map becomes KeyUnknown, which the editor ignores.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyQuit
	KeySave
	KeyOpen
	KeyUnknown
)

// Key is one decoded input event. Rune is set only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// ErrNoInput is returned by ReadKey when the timeout elapses with no
// byte available. The caller treats it as a render-only tick.
var ErrNoInput = errors.New("terminal: no input")

// escTimeout bounds the wait for the tail bytes of an escape
// sequence once an ESC has been read, so a bare Escape press
// registers without waiting out the full read timeout.
const escTimeout = 25 * time.Millisecond

type Terminal interface {
	EnableRawMode() error
	DisableRawMode() error
	GetWindowSize() (width, height int, err error)

	// ReadKey blocks up to timeout for the next key event and
	// returns ErrNoInput once the timeout expires.
	ReadKey(timeout time.Duration) (Key, error)

	Stdout() io.Writer
	Close() error
}
