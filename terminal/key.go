package terminal

import "unicode/utf8"

// Control bytes with a dedicated meaning. Everything else below 32 is
// an unmapped control chord and decodes to KeyUnknown.
const (
	ctrlO     = 0x0f
	ctrlQ     = 0x11
	ctrlS     = 0x13
	escByte   = 0x1b
	backspace = 0x7f
)

// byteReader yields the next raw input byte. ok is false when no byte
// arrived before the deadline, which is how a lone ESC is told apart
// from the head of an escape sequence.
type byteReader func() (b byte, ok bool, err error)

// decodeKey consumes one key event from next. It understands the
// common xterm-style sequences (CSI arrows, home/end variants, the
// delete tilde codes, SS3 home/end) and multi-byte UTF-8 input.
func decodeKey(next byteReader) (Key, error) {
	c, ok, err := next()
	if err != nil {
		return Key{}, err
	}
	if !ok {
		return Key{}, ErrNoInput
	}

	switch c {
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	case backspace, '\b':
		return Key{Kind: KeyBackspace}, nil
	case ctrlQ:
		return Key{Kind: KeyQuit}, nil
	case ctrlS:
		return Key{Kind: KeySave}, nil
	case ctrlO:
		return Key{Kind: KeyOpen}, nil
	case escByte:
		return decodeEscape(next)
	}

	if c < 32 {
		return Key{Kind: KeyUnknown}, nil
	}
	if c < utf8.RuneSelf {
		return Key{Kind: KeyRune, Rune: rune(c)}, nil
	}
	return decodeRune(c, next)
}

func decodeEscape(next byteReader) (Key, error) {
	c0, ok, err := next()
	if err != nil {
		return Key{}, err
	}
	if !ok {
		// Bare escape key.
		return Key{Kind: KeyEscape}, nil
	}
	c1, ok, err := next()
	if err != nil {
		return Key{}, err
	}
	if !ok {
		return Key{Kind: KeyEscape}, nil
	}

	switch c0 {
	case '[':
		if c1 >= '0' && c1 <= '9' {
			c2, ok, err := next()
			if err != nil {
				return Key{}, err
			}
			if !ok || c2 != '~' {
				return Key{Kind: KeyUnknown}, nil
			}
			switch c1 {
			case '1', '7':
				return Key{Kind: KeyHome}, nil
			case '3':
				return Key{Kind: KeyDelete}, nil
			case '4', '8':
				return Key{Kind: KeyEnd}, nil
			}
			return Key{Kind: KeyUnknown}, nil
		}
		switch c1 {
		case 'A':
			return Key{Kind: KeyArrowUp}, nil
		case 'B':
			return Key{Kind: KeyArrowDown}, nil
		case 'C':
			return Key{Kind: KeyArrowRight}, nil
		case 'D':
			return Key{Kind: KeyArrowLeft}, nil
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		}
	case 'O':
		switch c1 {
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		}
	}
	return Key{Kind: KeyUnknown}, nil
}

// decodeRune finishes a multi-byte UTF-8 sequence whose first byte is
// already in hand.
func decodeRune(first byte, next byteReader) (Key, error) {
	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = first
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		c, ok, err := next()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			break
		}
		buf = append(buf, c)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Kind: KeyUnknown}, nil
	}
	return Key{Kind: KeyRune, Rune: r}, nil
}
