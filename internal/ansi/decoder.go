package ansi

import (
	"strconv"

	"github.com/schovi/ptyprobe/internal/grid"
)

// Decoder turns a terminal output stream into Grid mutations. It accepts
// input in arbitrary chunks; an escape sequence or UTF-8 rune split across
// two writes is applied once the second write completes it.
//
// Malformed input never fails: unknown sequences are consumed without
// effect and stray bytes are dropped.
type Decoder struct {
	grid    *grid.Grid
	parser  *parser
	version uint64
}

func NewDecoder(g *grid.Grid) *Decoder {
	d := &Decoder{grid: g}
	d.parser = newParser(gridHandler{g})
	return d
}

// Write feeds p to the decoder. It always consumes all of p.
func (d *Decoder) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	d.parser.feed(p)
	d.version++
	return len(p), nil
}

func (d *Decoder) Grid() *grid.Grid {
	return d.grid
}

func (d *Decoder) Render() string {
	return d.grid.Render()
}

func (d *Decoder) Cursor() (row, col int) {
	return d.grid.Cursor()
}

// Version increases with every non-empty Write.
func (d *Decoder) Version() uint64 {
	return d.version
}

// pending returns the buffered bytes of a sequence that has not been
// terminated yet.
func (d *Decoder) pending() []byte {
	return d.parser.pending()
}

type gridHandler struct {
	g *grid.Grid
}

func (h gridHandler) print(r rune) {
	h.g.PutChar(r)
}

func (h gridHandler) execute(b byte) {
	switch b {
	case '\r':
		h.g.CarriageReturn()
	case '\n':
		h.g.LineFeed()
	case '\b':
		h.g.Backspace()
	case '\t':
		h.g.Tab()
	}
}

func (h gridHandler) dispatchCSI(raw []byte, final byte) {
	params := parseParams(raw)

	switch final {
	case 'H', 'f':
		h.g.MoveCursor(param(params, 0, 1)-1, param(params, 1, 1)-1)
	case 'A':
		h.g.MoveCursorRelative(grid.Up, param(params, 0, 1))
	case 'B':
		h.g.MoveCursorRelative(grid.Down, param(params, 0, 1))
	case 'C':
		h.g.MoveCursorRelative(grid.Forward, param(params, 0, 1))
	case 'D':
		h.g.MoveCursorRelative(grid.Back, param(params, 0, 1))
	case 'J':
		if param(params, 0, 0) == 2 {
			h.g.Clear()
		}
	case 'K':
		row, _ := h.g.Cursor()
		switch param(params, 0, 0) {
		case 0:
			h.g.ClearLine(row, grid.FromCursor)
		case 2:
			h.g.ClearLine(row, grid.WholeLine)
		}
	}
}

// maxParam caps numeric CSI parameters; no screen is larger.
const maxParam = 65535

// parseParams splits a CSI parameter string on ';'. Empty or non-numeric
// fields become 0 and values above maxParam are capped.
func parseParams(raw []byte) []int {
	if len(raw) == 0 {
		return nil
	}
	params := make([]int, 0, 4)
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i < len(raw) && raw[i] != ';' {
			continue
		}
		n, err := strconv.Atoi(string(raw[start:i]))
		switch {
		case err != nil && len(raw[start:i]) > 0 && allDigits(raw[start:i]):
			n = maxParam
		case err != nil || n < 0:
			n = 0
		}
		n = min(n, maxParam)
		params = append(params, n)
		start = i + 1
	}
	return params
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// param returns params[i], or def when it is absent or zero.
func param(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}
