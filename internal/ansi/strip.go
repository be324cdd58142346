package ansi

import "strings"

// Strip removes escape sequences and control bytes from s using the same
// classification as Decoder, keeping arrival order instead of screen
// position. Printable runes, newlines and tabs are kept; carriage returns,
// backspaces and every escape sequence are dropped, as is an unterminated
// sequence at the end of s.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	newParser(textHandler{&b}).feed([]byte(s))
	return b.String()
}

type textHandler struct {
	b *strings.Builder
}

func (h textHandler) print(r rune) {
	h.b.WriteRune(r)
}

func (h textHandler) execute(c byte) {
	if c == '\n' || c == '\t' {
		h.b.WriteByte(c)
	}
}

func (h textHandler) dispatchCSI([]byte, byte) {}
