// Package escape turns typed key descriptions into the bytes a terminal
// would send.
package escape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var simpleEscapes = map[byte]byte{
	'n': '\n',
	'r': '\r',
	't': '\t',
	'e': 0x1b,
	'0': 0x00,
}

// Interpret expands escapes and key names in s:
//
//	\n \r \t \e \0   newline, return, tab, escape, NUL
//	\xHH             one byte in hex (\x03 is Ctrl+C)
//	\\ \<            literal backslash or <
//	<Enter> <Up>     a named Key (case-insensitive)
//	<C-k>            Ctrl+letter
//
// A backslash before any other character yields that character. A <...>
// that names no key is kept as typed.
func Interpret(s string) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			n, err := expandBackslash(&out, s, i)
			if err != nil {
				return "", err
			}
			i += n
		case '<':
			i += expandKey(&out, s[i:])
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String(), nil
}

// expandBackslash writes the escape starting at s[i] and returns its length.
func expandBackslash(out *strings.Builder, s string, i int) (int, error) {
	if i+1 >= len(s) {
		return 0, fmt.Errorf("incomplete escape sequence at end of string")
	}
	c := s[i+1]
	if b, ok := simpleEscapes[c]; ok {
		out.WriteByte(b)
		return 2, nil
	}
	if c == 'x' {
		if i+4 > len(s) {
			return 0, fmt.Errorf("incomplete hex escape sequence at position %d", i)
		}
		v, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex escape \\x%s at position %d", s[i+2:i+4], i)
		}
		out.WriteByte(byte(v))
		return 4, nil
	}
	r, size := utf8.DecodeRuneInString(s[i+1:])
	out.WriteRune(r)
	return 1 + size, nil
}

// expandKey writes the key named by a leading <...> in s, or a literal <,
// and returns how much of s it used.
func expandKey(out *strings.Builder, s string) int {
	if end := strings.IndexByte(s, '>'); end > 1 {
		if seq, ok := lookupKey(s[1:end]); ok {
			out.WriteString(seq)
			return end + 1
		}
	}
	out.WriteByte('<')
	return 1
}
