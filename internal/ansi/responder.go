package ansi

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// CursorFunc reports the zero-based cursor position used to answer
// cursor position reports.
type CursorFunc func() (row, col int)

// TerminalResponder answers terminal capability queries found in program
// output by writing replies to w (the PTY master, so they arrive as the
// program's input). Programs that block until a query is answered keep
// running under test this way.
type TerminalResponder struct {
	mu     sync.Mutex
	w      io.Writer
	cursor CursorFunc
	cols   int
	rows   int

	// pending holds a trailing query prefix until the next Process call.
	pending []byte
}

// NewTerminalResponder creates a responder writing to w. cursor may be nil,
// in which case position reports answer 1;1.
func NewTerminalResponder(w io.Writer, cursor CursorFunc, cols, rows int) *TerminalResponder {
	return &TerminalResponder{w: w, cursor: cursor, cols: cols, rows: rows}
}

// SetSize updates the dimensions reported for text area size queries.
func (r *TerminalResponder) SetSize(cols, rows int) {
	r.mu.Lock()
	r.cols = cols
	r.rows = rows
	r.mu.Unlock()
}

// Process answers every query in data and returns data with the queries
// removed. A trailing unfinished query is held back and completed by the
// next call; if it turns out not to be a query it is returned then.
func (r *TerminalResponder) Process(data []byte) []byte {
	if len(r.pending) > 0 {
		data = append(r.pending, data...)
		r.pending = nil
	} else if bytes.IndexByte(data, esc) < 0 {
		return data
	}

	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if data[i] != esc {
			result = append(result, data[i])
			i++
			continue
		}

		consumed, response := r.matchQuery(data, i)
		if consumed > 0 {
			if response != "" {
				r.respond(response)
			}
			i += consumed
			continue
		}
		if couldStartQuery(data[i:]) {
			r.pending = append([]byte{}, data[i:]...)
			break
		}

		result = append(result, data[i])
		i++
	}
	return result
}

var fixedQueries = []string{
	"\x1b[c", "\x1b[0c", "\x1b[>c", "\x1b[>0c", "\x1b[6n", "\x1b[18t", "\x1b[?u",
}

// maxQueryLen bounds how much of an unfinished DECRQM is held back.
const maxQueryLen = 32

// couldStartQuery reports whether tail is an unfinished query that the
// next chunk may complete.
func couldStartQuery(tail []byte) bool {
	if len(tail) > maxQueryLen {
		return false
	}
	for _, q := range fixedQueries {
		if len(tail) < len(q) && strings.HasPrefix(q, string(tail)) {
			return true
		}
	}
	if !hasPrefix(tail, "\x1b[?") {
		return false
	}
	j := 3
	for j < len(tail) && tail[j] >= '0' && tail[j] <= '9' {
		j++
	}
	return j == len(tail) || (j > 3 && j == len(tail)-1 && tail[j] == '$')
}

const (
	da1Response = "\x1b[?62;1;2;6;7;8;9;15;22c"
	da2Response = "\x1b[>1;1;0c"
)

// matchQuery returns the length of the query at data[pos] and its reply.
// Zero length means no query starts there.
func (r *TerminalResponder) matchQuery(data []byte, pos int) (int, string) {
	rest := data[pos:]
	if len(rest) < 3 || rest[1] != '[' {
		return 0, ""
	}

	switch {
	case hasPrefix(rest, "\x1b[c"):
		return 3, da1Response
	case hasPrefix(rest, "\x1b[0c"):
		return 4, da1Response
	case hasPrefix(rest, "\x1b[>c"):
		return 4, da2Response
	case hasPrefix(rest, "\x1b[>0c"):
		return 5, da2Response
	case hasPrefix(rest, "\x1b[6n"):
		return 4, r.cursorReport()
	case hasPrefix(rest, "\x1b[18t"):
		return 5, r.sizeReport()
	case hasPrefix(rest, "\x1b[?u"):
		return 4, "\x1b[?0u"
	}

	// DECRQM: ESC[?{digits}$p
	if rest[2] == '?' {
		j := 3
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j > 3 && j+1 < len(rest) && rest[j] == '$' && rest[j+1] == 'p' {
			return j + 2, fmt.Sprintf("\x1b[?%s;0$y", rest[3:j])
		}
	}

	return 0, ""
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

func (r *TerminalResponder) cursorReport() string {
	row, col := 0, 0
	if r.cursor != nil {
		row, col = r.cursor()
	}
	return fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)
}

func (r *TerminalResponder) sizeReport() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("\x1b[8;%d;%dt", r.rows, r.cols)
}

func (r *TerminalResponder) respond(response string) {
	r.mu.Lock()
	w := r.w
	r.mu.Unlock()

	if w != nil {
		io.WriteString(w, response)
	}
}
