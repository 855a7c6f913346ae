package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

type windowsTerminal struct {
	originalState *winState
	stdinFile     *os.File
}

type winState [2]uint32

func New() Terminal {
	conInHandle, err := windows.CreateFile(
		windows.StringToUTF16Ptr("CONIN$"),
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return &windowsTerminal{stdinFile: os.Stdin}
	}

	return &windowsTerminal{
		stdinFile: os.NewFile(uintptr(conInHandle), "CONIN$"),
	}
}

func (t *windowsTerminal) Close() error {
	if t.stdinFile != nil && t.stdinFile != os.Stdin {
		return t.stdinFile.Close()
	}
	return nil
}

func (t *windowsTerminal) Stdout() io.Writer {
	return os.Stdout
}

// EnableRawMode disables line buffering and echo on the console and
// turns on VT processing, so input arrives as the same escape
// sequences the decoder expects on Unix.
func (t *windowsTerminal) EnableRawMode() error {
	inHandle := windows.Handle(t.stdinFile.Fd())
	outHandle := windows.Handle(os.Stdout.Fd())

	if inHandle == windows.InvalidHandle || outHandle == windows.InvalidHandle {
		return fmt.Errorf("invalid std handles")
	}

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(inHandle, &inMode); err != nil {
		return fmt.Errorf("failed to get stdin console mode: %w", err)
	}
	if err := windows.GetConsoleMode(outHandle, &outMode); err != nil {
		return fmt.Errorf("failed to get stdout console mode: %w", err)
	}

	t.originalState = &winState{inMode, outMode}

	newInMode := inMode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	newInMode |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT

	newOutMode := outMode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING

	if err := windows.SetConsoleMode(inHandle, newInMode); err != nil {
		return fmt.Errorf("failed to set stdin console mode: %w", err)
	}
	if err := windows.SetConsoleMode(outHandle, newOutMode); err != nil {
		windows.SetConsoleMode(inHandle, inMode)
		return fmt.Errorf("failed to set stdout console mode: %w", err)
	}

	return nil
}

func (t *windowsTerminal) DisableRawMode() error {
	if t.originalState == nil {
		return nil
	}

	inHandle := windows.Handle(t.stdinFile.Fd())
	outHandle := windows.Handle(os.Stdout.Fd())

	if inHandle == windows.InvalidHandle || outHandle == windows.InvalidHandle {
		return fmt.Errorf("invalid std handles")
	}

	windows.SetConsoleMode(inHandle, t.originalState[0])
	windows.SetConsoleMode(outHandle, t.originalState[1])
	t.originalState = nil

	return nil
}

func (t *windowsTerminal) GetWindowSize() (width, height int, err error) {
	handle, err := windows.CreateFile(
		windows.StringToUTF16Ptr("CONOUT$"),
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get CONOUT$: %w", err)
	}
	defer windows.CloseHandle(handle)

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &info); err != nil {
		return 0, 0, fmt.Errorf("failed to get console screen buffer info: %w", err)
	}
	width = int(info.Window.Right - info.Window.Left + 1)
	height = int(info.Window.Bottom - info.Window.Top + 1)
	return width, height, nil
}

func (t *windowsTerminal) ReadKey(timeout time.Duration) (Key, error) {
	first := true
	return decodeKey(func() (byte, bool, error) {
		wait := escTimeout
		if first {
			wait = timeout
			first = false
		}
		return t.nextByte(wait)
	})
}

func (t *windowsTerminal) nextByte(timeout time.Duration) (byte, bool, error) {
	handle := windows.Handle(t.stdinFile.Fd())
	ev, err := windows.WaitForSingleObject(handle, uint32(timeout.Milliseconds()))
	if err != nil {
		return 0, false, err
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return 0, false, nil
	}

	var buf [1]byte
	var done uint32
	if err := windows.ReadFile(handle, buf[:], &done, nil); err != nil {
		return 0, false, err
	}
	if done == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}
