package escape

import (
	"fmt"
	"strings"
)

// Key is a named virtual key.
type Key string

const (
	Enter     Key = "Enter"
	Escape    Key = "Esc"
	Tab       Key = "Tab"
	Backspace Key = "BS"
	Up        Key = "Up"
	Down      Key = "Down"
	Right     Key = "Right"
	Left      Key = "Left"
	Space     Key = "Space"
)

var keyBytes = map[Key]string{
	Enter:     "\r",
	Escape:    "\x1b",
	Tab:       "\t",
	Backspace: "\x7f",
	Up:        "\x1b[A",
	Down:      "\x1b[B",
	Right:     "\x1b[C",
	Left:      "\x1b[D",
	Space:     " ",
}

// Bytes returns what a terminal sends for k.
func (k Key) Bytes() ([]byte, error) {
	s, ok := keyBytes[k]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", string(k))
	}
	return []byte(s), nil
}

// Ctrl returns the control code for Ctrl+letter (A-Z, either case).
func Ctrl(letter byte) (byte, error) {
	upper := letter
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	if upper < 'A' || upper > 'Z' {
		return 0, fmt.Errorf("ctrl needs a letter A-Z, got %q", letter)
	}
	return upper - 64, nil
}

// lookupKey resolves the name inside <...>: a Key name (case-insensitive,
// "Return" and "Escape" accepted) or C-x for Ctrl+x.
func lookupKey(name string) (string, bool) {
	if len(name) == 3 && (name[:2] == "C-" || name[:2] == "c-") {
		code, err := Ctrl(name[2])
		if err != nil {
			return "", false
		}
		return string([]byte{code}), true
	}
	switch strings.ToLower(name) {
	case "return", "cr":
		return keyBytes[Enter], true
	case "escape":
		return keyBytes[Escape], true
	}
	for k, s := range keyBytes {
		if strings.EqualFold(string(k), name) {
			return s, true
		}
	}
	return "", false
}
