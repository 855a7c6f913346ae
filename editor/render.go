package editor

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// ANSI escape codes
const (
	ansiHideCursor     = "\x1b[?25l"
	ansiShowCursor     = "\x1b[?25h"
	ansiMoveToHome     = "\x1b[H"
	ansiClearLine      = "\x1b[K"
	ansiReset          = "\x1b[m"
	ansiInvert         = "\x1b[7m"
	ansiEnterAltScreen = "\x1b[?1049h"
	ansiExitAltScreen  = "\x1b[?1049l"
)

// reservedRows is the screen real estate below the text area: the
// status bar plus the message/prompt line.
const reservedRows = 2

// statusTimeout is how long a transient status message stays visible.
const statusTimeout = 5 * time.Second

// textArea returns the dimensions of the buffer window for the
// current screen size.
func (e *Editor) textArea() (height, width int) {
	height = e.termHeight - reservedRows
	if height < 1 {
		height = 1
	}
	width = e.termWidth - 1
	if width < 1 {
		width = 1
	}
	return height, width
}

// render composes the whole frame off-screen and writes it in one
// syscall: text window, status bar, message/prompt line, cursor.
func (e *Editor) render() {
	textHeight, textWidth := e.textArea()
	e.buffer.Clamp()
	e.buffer.ScrollIntoView(textHeight, textWidth)

	var ab bytes.Buffer
	ab.WriteString(ansiHideCursor)
	ab.WriteString(ansiMoveToHome)

	for _, row := range e.buffer.Window(textHeight, textWidth) {
		ab.WriteString(row)
		ab.WriteString(ansiClearLine)
		ab.WriteString("\r\n")
	}
	e.drawStatusBar(&ab)
	e.drawMessageBar(&ab)

	row, col := e.cursorScreenPosition()
	fmt.Fprintf(&ab, "\x1b[%d;%dH", row, col)
	ab.WriteString(ansiShowCursor)

	e.term.Stdout().Write(ab.Bytes())
}

// cursorScreenPosition maps the logical cursor to 1-based screen
// coordinates. While prompting, the cursor parks after the typed
// filename on the message line.
func (e *Editor) cursorScreenPosition() (row, col int) {
	if e.mode == modePrompting {
		col = runewidth.StringWidth(e.prompt) + runewidth.StringWidth(e.promptInput) + 1
		if col > e.termWidth {
			col = e.termWidth
		}
		return e.termHeight, col
	}

	cx, cy := e.buffer.Cursor()
	rowOff, colOff := e.buffer.Offsets()
	row = cy - rowOff + 1
	col = cx - colOff + 1

	textHeight, _ := e.textArea()
	if row < 1 {
		row = 1
	}
	if row > textHeight {
		row = textHeight
	}
	if col < 1 {
		col = 1
	}
	if col > e.termWidth {
		col = e.termWidth
	}
	return row, col
}

func (e *Editor) drawStatusBar(ab *bytes.Buffer) {
	ab.WriteString(ansiInvert)

	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	state := "(SAVED)"
	if e.buffer.Dirty() {
		state = "(UNSAVED)"
	}
	left := fmt.Sprintf(" mino  %s %s", runewidth.Truncate(name, 24, "..."), state)

	cx, cy := e.buffer.Cursor()
	right := fmt.Sprintf("Ln %d, Col %d  %s ", cy+1, cx+1, time.Now().Format("15:04:05"))

	padding := e.termWidth - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 0 {
		padding = 0
	}
	bar := runewidth.Truncate(left+strings.Repeat(" ", padding)+right, e.termWidth, "")
	ab.WriteString(bar)

	ab.WriteString(ansiReset)
	ab.WriteString("\r\n")
}

// drawMessageBar fills the bottom line: the live prompt while one is
// open, otherwise the status message inside its display window.
func (e *Editor) drawMessageBar(ab *bytes.Buffer) {
	ab.WriteString(ansiClearLine)
	if e.mode == modePrompting {
		ab.WriteString(runewidth.Truncate(e.prompt+e.promptInput, e.termWidth, ""))
		return
	}
	if time.Since(e.statusTime) < statusTimeout {
		ab.WriteString(runewidth.Truncate(e.statusMessage, e.termWidth, ""))
	}
}
