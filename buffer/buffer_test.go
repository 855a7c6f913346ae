package buffer

import (
	"slices"
	"strings"
	"testing"
)

func bufferWith(lines []string, cx, cy int) *Buffer {
	b := New()
	b.Load(lines)
	b.cx, b.cy = cx, cy
	return b
}

func assertState(t *testing.T, b *Buffer, lines []string, cx, cy int) {
	t.Helper()
	if !slices.Equal(b.lines, lines) {
		t.Errorf("lines = %q, want %q", b.lines, lines)
	}
	if b.cx != cx || b.cy != cy {
		t.Errorf("cursor = (%d,%d), want (%d,%d)", b.cx, b.cy, cx, cy)
	}
}

func TestNew(t *testing.T) {
	b := New()
	assertState(t, b, []string{""}, 0, 0)
	if b.Dirty() {
		t.Error("new buffer should be clean")
	}
}

func TestInsertChar(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		cx, cy    int
		r         rune
		wantLines []string
		wantCx    int
	}{
		{"into empty line", []string{""}, 0, 0, 'a', []string{"a"}, 1},
		{"at line start", []string{"bc"}, 0, 0, 'a', []string{"abc"}, 1},
		{"mid line", []string{"ac"}, 1, 0, 'b', []string{"abc"}, 2},
		{"at line end", []string{"ab"}, 2, 0, 'c', []string{"abc"}, 3},
		{"unicode", []string{"héllo"}, 2, 0, 'x', []string{"héxllo"}, 3},
		{"second line", []string{"ab", "cd"}, 1, 1, 'X', []string{"ab", "cXd"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bufferWith(tt.lines, tt.cx, tt.cy)
			b.InsertChar(tt.r)
			assertState(t, b, tt.wantLines, tt.wantCx, tt.cy)
			if !b.Dirty() {
				t.Error("insert should mark the buffer dirty")
			}
		})
	}
}

func TestInsertNewline(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		cx, cy    int
		wantLines []string
	}{
		{"mid line", []string{"hello"}, 2, 0, []string{"he", "llo"}},
		{"at line start", []string{"hello"}, 0, 0, []string{"", "hello"}},
		{"at line end", []string{"hello"}, 5, 0, []string{"hello", ""}},
		{"empty buffer", []string{""}, 0, 0, []string{"", ""}},
		{"between lines", []string{"ab", "cd"}, 1, 0, []string{"a", "b", "cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bufferWith(tt.lines, tt.cx, tt.cy)
			b.InsertNewline()
			assertState(t, b, tt.wantLines, 0, tt.cy+1)
			if !b.Dirty() {
				t.Error("newline should mark the buffer dirty")
			}
		})
	}
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		cx, cy    int
		wantLines []string
		wantCx    int
		wantCy    int
		wantDirty bool
	}{
		{"end of line", []string{"abc"}, 3, 0, []string{"ab"}, 2, 0, true},
		{"mid line", []string{"abc"}, 2, 0, []string{"ac"}, 1, 0, true},
		{"join with previous", []string{"ab", "cd"}, 0, 1, []string{"abcd"}, 2, 0, true},
		{"join empty onto full", []string{"ab", ""}, 0, 1, []string{"ab"}, 2, 0, true},
		{"buffer start no-op", []string{"abc"}, 0, 0, []string{"abc"}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bufferWith(tt.lines, tt.cx, tt.cy)
			b.Backspace()
			assertState(t, b, tt.wantLines, tt.wantCx, tt.wantCy)
			if b.Dirty() != tt.wantDirty {
				t.Errorf("dirty = %v, want %v", b.Dirty(), tt.wantDirty)
			}
		})
	}
}

func TestDeleteForward(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		cx, cy    int
		wantLines []string
		wantDirty bool
	}{
		{"under cursor", []string{"abc"}, 1, 0, []string{"ac"}, true},
		{"at line start", []string{"abc"}, 0, 0, []string{"bc"}, true},
		{"merge next line", []string{"ab", "cd"}, 2, 0, []string{"abcd"}, true},
		{"merge empty next", []string{"ab", ""}, 2, 0, []string{"ab"}, true},
		{"buffer end no-op", []string{"ab"}, 2, 0, []string{"ab"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bufferWith(tt.lines, tt.cx, tt.cy)
			b.DeleteForward()
			// Delete-forward never moves the cursor.
			assertState(t, b, tt.wantLines, tt.cx, tt.cy)
			if b.Dirty() != tt.wantDirty {
				t.Errorf("dirty = %v, want %v", b.Dirty(), tt.wantDirty)
			}
		})
	}
}

func TestBoundaryNoOpsKeepClean(t *testing.T) {
	b := bufferWith([]string{"abc"}, 0, 0)
	b.Backspace()
	b.SetCursor(3, 0)
	b.DeleteForward()
	if b.Dirty() {
		t.Error("boundary no-ops must not mark the buffer dirty")
	}
}

func TestMoveWrapsAcrossLines(t *testing.T) {
	b := bufferWith([]string{"ab", "cd"}, 0, 1)
	b.MoveLeft()
	assertState(t, b, []string{"ab", "cd"}, 2, 0)

	b.MoveRight()
	assertState(t, b, []string{"ab", "cd"}, 0, 1)
}

func TestMoveAtBufferEdges(t *testing.T) {
	b := bufferWith([]string{"ab"}, 0, 0)
	b.MoveLeft()
	assertState(t, b, []string{"ab"}, 0, 0)

	b.SetCursor(2, 0)
	b.MoveRight()
	assertState(t, b, []string{"ab"}, 2, 0)

	b.MoveUp()
	if _, cy := b.Cursor(); cy != 0 {
		t.Errorf("cy = %d after MoveUp on first line", cy)
	}
	b.MoveDown()
	if _, cy := b.Cursor(); cy != 0 {
		t.Errorf("cy = %d after MoveDown on last line", cy)
	}
}

func TestVerticalMoveClampsToShorterLine(t *testing.T) {
	b := bufferWith([]string{"hello", "hi"}, 5, 0)
	b.MoveDown()
	b.Clamp()
	assertState(t, b, []string{"hello", "hi"}, 2, 1)
}

func TestHomeEnd(t *testing.T) {
	b := bufferWith([]string{"hello"}, 3, 0)
	b.MoveLineStart()
	assertState(t, b, []string{"hello"}, 0, 0)
	b.MoveLineEnd()
	assertState(t, b, []string{"hello"}, 5, 0)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		cx, cy int
		wantCx int
		wantCy int
	}{
		{"in range", []string{"abc"}, 2, 0, 2, 0},
		{"cx past line end", []string{"abc"}, 10, 0, 3, 0},
		{"cy past last line", []string{"abc", "d"}, 0, 5, 0, 1},
		{"both past", []string{"abc", "d"}, 9, 9, 1, 1},
		{"negative", []string{"abc"}, -2, -3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bufferWith(tt.lines, tt.cx, tt.cy)
			b.Clamp()
			assertState(t, b, tt.lines, tt.wantCx, tt.wantCy)

			// Idempotence: a second clamp changes nothing.
			b.Clamp()
			assertState(t, b, tt.lines, tt.wantCx, tt.wantCy)
		})
	}
}

func TestClampInvariantHolds(t *testing.T) {
	b := New()
	ops := []func(){
		func() { b.InsertChar('x') },
		func() { b.InsertNewline() },
		func() { b.Backspace() },
		func() { b.DeleteForward() },
		func() { b.MoveUp() },
		func() { b.MoveDown() },
		func() { b.MoveLeft() },
		func() { b.MoveRight() },
	}
	for i := 0; i < 200; i++ {
		ops[i*7%len(ops)]()
		b.Clamp()
		cx, cy := b.Cursor()
		if cy < 0 || cy >= b.LineCount() {
			t.Fatalf("step %d: cy=%d out of range (%d lines)", i, cy, b.LineCount())
		}
		if cx < 0 || cx > len([]rune(b.Line(cy))) {
			t.Fatalf("step %d: cx=%d out of range for line %q", i, cx, b.Line(cy))
		}
		if b.LineCount() < 1 {
			t.Fatalf("step %d: buffer lost its last line", i)
		}
	}
}

func TestNeverEmpty(t *testing.T) {
	b := bufferWith([]string{"a"}, 1, 0)
	for i := 0; i < 10; i++ {
		b.Backspace()
		b.DeleteForward()
	}
	if b.LineCount() < 1 {
		t.Fatal("buffer must always keep at least one line")
	}
	assertState(t, b, []string{""}, 0, 0)
}

func TestInsertBackspaceInverse(t *testing.T) {
	b := bufferWith([]string{"hello", "world"}, 3, 1)
	before := slices.Clone(b.lines)
	b.InsertChar('Z')
	b.Backspace()
	assertState(t, b, before, 3, 1)
}

func TestLoadAndContentsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line", "hello"},
		{"multi line", "line1\nline2\nline3"},
		{"trailing newline", "a\nb\n"},
		{"blank lines", "\n\n"},
		{"unicode", "héllo\n世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Load(strings.Split(tt.text, "\n"))
			if got := b.Contents(); got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
			if cx, cy := b.Cursor(); cx != 0 || cy != 0 {
				t.Errorf("cursor after load = (%d,%d), want origin", cx, cy)
			}
			if b.Dirty() {
				t.Error("load should leave the buffer clean")
			}
		})
	}
}

func TestLoadEmptySlice(t *testing.T) {
	b := bufferWith([]string{"old"}, 1, 0)
	b.Load(nil)
	assertState(t, b, []string{""}, 0, 0)
}

func TestScrollIntoView(t *testing.T) {
	tests := []struct {
		name                   string
		cx, cy                 int
		rowOff, colOff         int
		height, width          int
		wantRowOff, wantColOff int
	}{
		{"cursor inside window", 2, 2, 0, 0, 8, 19, 0, 0},
		{"cursor below window", 0, 50, 0, 0, 8, 19, 43, 0},
		{"cursor above window", 0, 3, 10, 0, 8, 19, 3, 0},
		{"cursor right of window", 30, 0, 0, 0, 8, 19, 0, 12},
		{"cursor left of window", 2, 0, 0, 10, 8, 19, 0, 2},
		{"exactly at bottom edge", 0, 7, 0, 0, 8, 19, 0, 0},
		{"one past bottom edge", 0, 8, 0, 0, 8, 19, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]string, 60)
			for i := range lines {
				lines[i] = strings.Repeat("x", 40)
			}
			b := bufferWith(lines, tt.cx, tt.cy)
			b.rowOff, b.colOff = tt.rowOff, tt.colOff

			b.ScrollIntoView(tt.height, tt.width)
			rowOff, colOff := b.Offsets()
			if rowOff != tt.wantRowOff || colOff != tt.wantColOff {
				t.Errorf("offsets = (%d,%d), want (%d,%d)",
					rowOff, colOff, tt.wantRowOff, tt.wantColOff)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	b := bufferWith([]string{"abcdefgh", "short", "x"}, 0, 0)

	rows := b.Window(5, 4)
	want := []string{"abcd", "shor", "x", "~", "~"}
	if !slices.Equal(rows, want) {
		t.Errorf("window = %q, want %q", rows, want)
	}
}

func TestWindowHorizontalScroll(t *testing.T) {
	b := bufferWith([]string{"abcdefgh", "ab"}, 0, 0)
	b.colOff = 4

	rows := b.Window(2, 4)
	want := []string{"efgh", ""}
	if !slices.Equal(rows, want) {
		t.Errorf("window = %q, want %q", rows, want)
	}
}
