// Package buffer implements the text engine: an ordered sequence of
// lines plus the cursor and scroll offsets that address into it. It
// performs no I/O; the editor package feeds it keys and reads back
// the visible window.
package buffer

import (
	"slices"
	"strings"
)

// Buffer holds the document as a line slice. The slice is never
// empty: an empty document is a single empty line. All mutating
// operations are total; out-of-range cursors are corrected by Clamp
// rather than reported as errors.
type Buffer struct {
	lines  []string
	cx, cy int
	rowOff int
	colOff int
	dirty  bool
}

func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// Line returns the content of a single line, or "" when out of bounds.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= len(b.lines) {
		return ""
	}
	return b.lines[y]
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the column and row of the insertion point.
func (b *Buffer) Cursor() (x, y int) {
	return b.cx, b.cy
}

// SetCursor positions the insertion point, clamping it into range.
func (b *Buffer) SetCursor(x, y int) {
	b.cx, b.cy = x, y
	b.Clamp()
}

// Offsets returns the first visible row and column.
func (b *Buffer) Offsets() (rowOff, colOff int) {
	return b.rowOff, b.colOff
}

// Dirty reports whether the content differs from the last load/save.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkSaved clears the dirty flag after a successful write.
func (b *Buffer) MarkSaved() {
	b.dirty = false
}

// Clamp forces the cursor back into range: 0 <= cy < line count and
// 0 <= cx <= length of the current line (cx may sit one past the last
// character). Idempotent; the sole defense against any caller leaving
// an out-of-range cursor behind.
func (b *Buffer) Clamp() {
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	if b.cy < 0 {
		b.cy = 0
	}
	if b.cy >= len(b.lines) {
		b.cy = len(b.lines) - 1
	}
	lineLen := len([]rune(b.lines[b.cy]))
	if b.cx < 0 {
		b.cx = 0
	}
	if b.cx > lineLen {
		b.cx = lineLen
	}
}

// InsertChar splices r into the current line at the cursor and
// advances the cursor one column.
func (b *Buffer) InsertChar(r rune) {
	b.Clamp()
	line := []rune(b.lines[b.cy])
	b.lines[b.cy] = string(line[:b.cx]) + string(r) + string(line[b.cx:])
	b.cx++
	b.dirty = true
}

// InsertNewline splits the current line at the cursor; the text after
// the cursor becomes a new line below, and the cursor lands at its
// start.
func (b *Buffer) InsertNewline() {
	b.Clamp()
	line := []rune(b.lines[b.cy])
	left, right := string(line[:b.cx]), string(line[b.cx:])
	b.lines[b.cy] = left
	b.lines = slices.Insert(b.lines, b.cy+1, right)
	b.cy++
	b.cx = 0
	b.dirty = true
}

// Backspace removes the character before the cursor, joining the
// current line onto the previous one at column zero. A no-op at the
// very start of the buffer, and a no-op leaves the dirty flag alone.
func (b *Buffer) Backspace() {
	b.Clamp()
	switch {
	case b.cx > 0:
		line := []rune(b.lines[b.cy])
		b.lines[b.cy] = string(line[:b.cx-1]) + string(line[b.cx:])
		b.cx--
		b.dirty = true
	case b.cy > 0:
		prev := b.lines[b.cy-1]
		b.cx = len([]rune(prev))
		b.lines[b.cy-1] = prev + b.lines[b.cy]
		b.lines = slices.Delete(b.lines, b.cy, b.cy+1)
		b.cy--
		b.dirty = true
	}
}

// DeleteForward removes the character under the cursor, merging the
// next line up when the cursor sits at end of line. A no-op at the
// very end of the buffer.
func (b *Buffer) DeleteForward() {
	b.Clamp()
	line := []rune(b.lines[b.cy])
	switch {
	case b.cx < len(line):
		b.lines[b.cy] = string(line[:b.cx]) + string(line[b.cx+1:])
		b.dirty = true
	case b.cy < len(b.lines)-1:
		b.lines[b.cy] = string(line) + b.lines[b.cy+1]
		b.lines = slices.Delete(b.lines, b.cy+1, b.cy+2)
		b.dirty = true
	}
}

// MoveLeft steps one column back, wrapping to the end of the previous
// line at column zero.
func (b *Buffer) MoveLeft() {
	b.Clamp()
	if b.cx > 0 {
		b.cx--
	} else if b.cy > 0 {
		b.cy--
		b.cx = len([]rune(b.lines[b.cy]))
	}
}

// MoveRight steps one column forward, wrapping to the start of the
// next line at end of line.
func (b *Buffer) MoveRight() {
	b.Clamp()
	if b.cx < len([]rune(b.lines[b.cy])) {
		b.cx++
	} else if b.cy < len(b.lines)-1 {
		b.cy++
		b.cx = 0
	}
}

// MoveUp and MoveDown keep the column as-is; landing on a shorter
// line leaves cx past the end until the next Clamp truncates it.
// There is no remembered column across vertical moves.
func (b *Buffer) MoveUp() {
	if b.cy > 0 {
		b.cy--
	}
}

func (b *Buffer) MoveDown() {
	if b.cy < len(b.lines)-1 {
		b.cy++
	}
}

func (b *Buffer) MoveLineStart() {
	b.cx = 0
}

func (b *Buffer) MoveLineEnd() {
	b.Clamp()
	b.cx = len([]rune(b.lines[b.cy]))
}

// ScrollIntoView updates the scroll offsets with the minimal-scroll
// rule: move only far enough that the cursor re-enters the visible
// window of textHeight rows by textWidth columns.
func (b *Buffer) ScrollIntoView(textHeight, textWidth int) {
	if textHeight < 1 {
		textHeight = 1
	}
	if textWidth < 1 {
		textWidth = 1
	}
	b.Clamp()

	if b.cy < b.rowOff {
		b.rowOff = b.cy
	}
	if b.cy >= b.rowOff+textHeight {
		b.rowOff = b.cy - textHeight + 1
	}

	if b.cx < b.colOff {
		b.colOff = b.cx
	}
	if b.cx >= b.colOff+textWidth {
		b.colOff = b.cx - textWidth + 1
	}
}

// Window produces exactly textHeight display rows for the current
// offsets: each buffer line cut at colOff and truncated to textWidth
// characters, with "~" filling rows past the end of the buffer.
func (b *Buffer) Window(textHeight, textWidth int) []string {
	if textHeight < 1 {
		textHeight = 1
	}
	if textWidth < 1 {
		textWidth = 1
	}
	rows := make([]string, textHeight)
	for i := range rows {
		y := b.rowOff + i
		if y >= len(b.lines) {
			rows[i] = "~"
			continue
		}
		line := []rune(b.lines[y])
		if b.colOff >= len(line) {
			rows[i] = ""
			continue
		}
		visible := line[b.colOff:]
		if len(visible) > textWidth {
			visible = visible[:textWidth]
		}
		rows[i] = string(visible)
	}
	return rows
}

// Load replaces the whole document. An empty slice loads as a single
// empty line. Cursor and offsets reset to the origin and the buffer
// is clean afterwards.
func (b *Buffer) Load(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = slices.Clone(lines)
	b.cx, b.cy = 0, 0
	b.rowOff, b.colOff = 0, 0
	b.dirty = false
}

// Contents serializes the document: lines joined with a single "\n",
// no terminator added beyond what the lines themselves carry.
func (b *Buffer) Contents() string {
	return strings.Join(b.lines, "\n")
}
