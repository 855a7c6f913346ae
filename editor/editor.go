// Package editor drives a single editing session: it owns the text
// buffer, the input mode state machine, and the render loop, talking
// to the screen through terminal.Terminal and to the disk through
// Filesystem.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"mino/buffer"
	"mino/config"
	"mino/terminal"
)

// inputMode selects who interprets keys: the buffer (editing) or the
// transient filename prompt. Exactly one is active at a time.
type inputMode int

const (
	modeEditing inputMode = iota
	modePrompting
)

// pendingAction is what a committed prompt will do with its filename.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionSave
	actionOpen
)

type Editor struct {
	term   terminal.Terminal
	fs     Filesystem
	config config.Config

	buffer   *buffer.Buffer
	filename string

	mode        inputMode
	prompt      string
	promptInput string
	pending     pendingAction

	statusMessage string
	statusTime    time.Time

	termWidth  int
	termHeight int

	quit bool
}

// NewEditor builds a session around term. A nil fsys means the real
// disk. A filename argument is opened eagerly; a file that does not
// exist yet is not an error, the name is just kept for the first save.
func NewEditor(term terminal.Terminal, fsys Filesystem, cfg config.Config, filename string) (*Editor, error) {
	if fsys == nil {
		fsys = osFilesystem{}
	}
	e := &Editor{
		term:   term,
		fs:     fsys,
		config: cfg,
		buffer: buffer.New(),
	}

	if filename != "" {
		content, err := fsys.ReadText(filename)
		switch {
		case err == nil:
			e.buffer.Load(splitLines(content))
			e.filename = filename
		case errors.Is(err, fs.ErrNotExist):
			e.filename = filename
			e.setStatusMessage("%s (new file)", filename)
		default:
			return nil, fmt.Errorf("failed to load file %s: %w", filename, err)
		}
	}

	e.refreshSize()
	return e, nil
}

// Run enables raw mode and processes one key per iteration until the
// quit key. A tick with no input still redraws, which keeps the
// status-bar clock moving.
func (e *Editor) Run() error {
	if err := e.term.EnableRawMode(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	if e.config.AltScreen {
		fmt.Fprint(e.term.Stdout(), ansiEnterAltScreen)
	}
	defer func() {
		if e.config.AltScreen {
			fmt.Fprint(e.term.Stdout(), ansiExitAltScreen)
		}
		e.term.DisableRawMode()
	}()

	e.setStatusMessage("^S save | ^O open | ^Q quit")

	tick := time.Duration(e.config.TickMillis) * time.Millisecond
	for !e.quit {
		e.checkResize()
		e.render()

		key, err := e.term.ReadKey(tick)
		if err != nil {
			if errors.Is(err, terminal.ErrNoInput) {
				continue
			}
			return fmt.Errorf("read key: %w", err)
		}
		e.HandleKey(key)
	}
	log.Printf("session ended, file=%q dirty=%v", e.filename, e.buffer.Dirty())
	return nil
}

func (e *Editor) refreshSize() {
	w, h, err := e.term.GetWindowSize()
	if err != nil {
		e.termWidth = 80
		e.termHeight = 24
		return
	}
	e.termWidth = w
	e.termHeight = h
	if e.termHeight < reservedRows+1 {
		e.termHeight = reservedRows + 1
	}
}

func (e *Editor) checkResize() {
	w, h, err := e.term.GetWindowSize()
	if err != nil {
		return
	}
	if w == e.termWidth && h == e.termHeight {
		return
	}
	e.refreshSize()
}

func (e *Editor) setStatusMessage(f string, a ...any) {
	e.statusMessage = fmt.Sprintf(f, a...)
	e.statusTime = time.Now()
}

// saveAs writes the buffer to name. Only a successful write records
// the filename and clears the dirty flag.
func (e *Editor) saveAs(name string) {
	content := e.buffer.Contents()
	if err := e.fs.WriteText(name, content); err != nil {
		e.setStatusMessage("Can't save %s: %v", name, err)
		return
	}
	e.filename = name
	e.buffer.MarkSaved()
	e.setStatusMessage("Wrote %s (%d bytes)", name, len(content))
}

// open replaces the buffer with the contents of name. On failure the
// current buffer and filename stay exactly as they were.
func (e *Editor) open(name string) {
	content, err := e.fs.ReadText(name)
	if err != nil {
		e.setStatusMessage("Can't open %s: %v", name, err)
		return
	}
	e.buffer.Load(splitLines(content))
	e.filename = name
	e.setStatusMessage("Opened %s (%d lines)", name, e.buffer.LineCount())
}

// splitLines is the inverse of Buffer.Contents: an empty file is one
// empty line, and a trailing newline survives as a trailing empty
// line so save/load round-trips byte for byte.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
