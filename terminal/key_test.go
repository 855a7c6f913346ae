package terminal

import "testing"

// sliceReader feeds decodeKey from a fixed byte sequence; exhaustion
// behaves like an expired read timeout.
func sliceReader(input []byte) byteReader {
	i := 0
	return func() (byte, bool, error) {
		if i >= len(input) {
			return 0, false, nil
		}
		b := input[i]
		i++
		return b, true, nil
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"printable ascii", "a", Key{Kind: KeyRune, Rune: 'a'}},
		{"space", " ", Key{Kind: KeyRune, Rune: ' '}},
		{"utf8 rune", "é", Key{Kind: KeyRune, Rune: 'é'}},
		{"utf8 cjk", "界", Key{Kind: KeyRune, Rune: '界'}},
		{"enter cr", "\r", Key{Kind: KeyEnter}},
		{"enter lf", "\n", Key{Kind: KeyEnter}},
		{"backspace del", "\x7f", Key{Kind: KeyBackspace}},
		{"backspace bs", "\b", Key{Kind: KeyBackspace}},
		{"ctrl-q quit", "\x11", Key{Kind: KeyQuit}},
		{"ctrl-s save", "\x13", Key{Kind: KeySave}},
		{"ctrl-o open", "\x0f", Key{Kind: KeyOpen}},
		{"bare escape", "\x1b", Key{Kind: KeyEscape}},
		{"arrow up", "\x1b[A", Key{Kind: KeyArrowUp}},
		{"arrow down", "\x1b[B", Key{Kind: KeyArrowDown}},
		{"arrow right", "\x1b[C", Key{Kind: KeyArrowRight}},
		{"arrow left", "\x1b[D", Key{Kind: KeyArrowLeft}},
		{"home csi", "\x1b[H", Key{Kind: KeyHome}},
		{"end csi", "\x1b[F", Key{Kind: KeyEnd}},
		{"home tilde", "\x1b[1~", Key{Kind: KeyHome}},
		{"home tilde alt", "\x1b[7~", Key{Kind: KeyHome}},
		{"end tilde", "\x1b[4~", Key{Kind: KeyEnd}},
		{"end tilde alt", "\x1b[8~", Key{Kind: KeyEnd}},
		{"delete tilde", "\x1b[3~", Key{Kind: KeyDelete}},
		{"home ss3", "\x1bOH", Key{Kind: KeyHome}},
		{"end ss3", "\x1bOF", Key{Kind: KeyEnd}},
		{"unmapped csi", "\x1b[Z", Key{Kind: KeyUnknown}},
		{"unmapped tilde", "\x1b[5~", Key{Kind: KeyUnknown}},
		{"unmapped control", "\x02", Key{Kind: KeyUnknown}},
		{"truncated escape seq", "\x1b[", Key{Kind: KeyEscape}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeKey(sliceReader([]byte(tt.input)))
			if err != nil {
				t.Fatalf("decodeKey: %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeKey(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeKeyNoInput(t *testing.T) {
	_, err := decodeKey(sliceReader(nil))
	if err != ErrNoInput {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}
