package editor

import (
	"strings"

	"mino/terminal"
)

// outcome is what an editing-mode keystroke asks the session to do
// next. Mutations and cursor moves resolve inside the buffer and
// yield outcomeContinue; the loop-level decisions travel up as values
// instead of unwinding through errors.
type outcome int

const (
	outcomeContinue outcome = iota
	outcomeQuit
	outcomeSave
	outcomeOpen
)

// HandleKey is the single dispatch entry point. It routes the key to
// the active mode; unrecognized keys never error and never change
// state.
func (e *Editor) HandleKey(k terminal.Key) {
	if e.mode == modePrompting {
		e.handlePromptKey(k)
		return
	}

	switch e.dispatchEdit(k) {
	case outcomeQuit:
		// Unconditional: unsaved changes are dropped.
		e.quit = true
	case outcomeSave:
		e.requestSave()
	case outcomeOpen:
		e.requestOpen()
	}
}

func (e *Editor) dispatchEdit(k terminal.Key) outcome {
	switch k.Kind {
	case terminal.KeyQuit:
		return outcomeQuit
	case terminal.KeySave:
		return outcomeSave
	case terminal.KeyOpen:
		return outcomeOpen

	case terminal.KeyRune:
		e.buffer.InsertChar(k.Rune)
	case terminal.KeyEnter:
		e.buffer.InsertNewline()
	case terminal.KeyBackspace:
		e.buffer.Backspace()
	case terminal.KeyDelete:
		e.buffer.DeleteForward()

	case terminal.KeyArrowLeft:
		e.buffer.MoveLeft()
	case terminal.KeyArrowRight:
		e.buffer.MoveRight()
	case terminal.KeyArrowUp:
		e.buffer.MoveUp()
	case terminal.KeyArrowDown:
		e.buffer.MoveDown()
	case terminal.KeyHome:
		e.buffer.MoveLineStart()
	case terminal.KeyEnd:
		e.buffer.MoveLineEnd()
	}
	// KeyEscape and KeyUnknown fall through: ignored.
	return outcomeContinue
}

// requestSave saves in place when the buffer already has a name,
// otherwise collects one through the prompt.
func (e *Editor) requestSave() {
	if e.filename != "" {
		e.saveAs(e.filename)
		return
	}
	e.startPrompt("Save as: ", actionSave)
}

func (e *Editor) requestOpen() {
	e.startPrompt("Open: ", actionOpen)
}

func (e *Editor) startPrompt(prompt string, act pendingAction) {
	e.mode = modePrompting
	e.prompt = prompt
	e.promptInput = ""
	e.pending = act
}

func (e *Editor) endPrompt() {
	e.mode = modeEditing
	e.prompt = ""
	e.promptInput = ""
	e.pending = actionNone
}

// handlePromptKey collects the filename for the pending action.
// Enter commits (an all-whitespace name cancels), Escape aborts, and
// every other non-printable key is swallowed.
func (e *Editor) handlePromptKey(k terminal.Key) {
	switch k.Kind {
	case terminal.KeyRune:
		e.promptInput += string(k.Rune)

	case terminal.KeyBackspace:
		if e.promptInput != "" {
			runes := []rune(e.promptInput)
			e.promptInput = string(runes[:len(runes)-1])
		}

	case terminal.KeyEscape:
		act := e.pending
		e.endPrompt()
		e.setStatusMessage("%s cancelled", actionName(act))

	case terminal.KeyEnter:
		name := strings.TrimSpace(e.promptInput)
		act := e.pending
		e.endPrompt()
		if name == "" {
			e.setStatusMessage("%s cancelled", actionName(act))
			return
		}
		switch act {
		case actionSave:
			e.saveAs(name)
		case actionOpen:
			e.open(name)
		}
	}
}

func actionName(act pendingAction) string {
	switch act {
	case actionSave:
		return "Save"
	case actionOpen:
		return "Open"
	}
	return "Prompt"
}
