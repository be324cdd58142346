package grid

import "strings"

// LineMode selects how much of a row ClearLine erases.
type LineMode int

const (
	FromCursor LineMode = iota
	WholeLine
)

// Direction is a relative cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Forward
	Back
)

const tabWidth = 8

// Grid is a fixed-size character buffer with a cursor. It holds what a
// terminal of the same size would currently show, minus colors and
// attributes. The cursor is always inside the grid.
//
// There is no scrolling: writing past the last row overwrites the bottom
// row in place.
type Grid struct {
	width     int
	height    int
	cells     [][]rune
	cursorRow int
	cursorCol int
}

// New returns a blank grid. Non-positive dimensions are raised to 1.
func New(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([][]rune, height),
	}
	for r := range g.cells {
		g.cells[r] = blankRow(width)
	}
	return g
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// Cell returns the rune at (row, col), or a space when out of range.
func (g *Grid) Cell(row, col int) rune {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return ' '
	}
	return g.cells[row][col]
}

// Line returns a row with trailing spaces trimmed.
func (g *Grid) Line(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	return strings.TrimRight(string(g.cells[row]), " ")
}

func (g *Grid) Clear() {
	for r := range g.cells {
		fill(g.cells[r], 0)
	}
	g.cursorRow, g.cursorCol = 0, 0
}

func (g *Grid) ClearLine(row int, mode LineMode) {
	if row < 0 || row >= g.height {
		return
	}
	switch mode {
	case FromCursor:
		fill(g.cells[row], g.cursorCol)
	case WholeLine:
		fill(g.cells[row], 0)
	}
}

func fill(row []rune, from int) {
	for c := from; c < len(row); c++ {
		row[c] = ' '
	}
}

func (g *Grid) PutChar(ch rune) {
	g.cells[g.cursorRow][g.cursorCol] = ch
	g.cursorCol++
	if g.cursorCol >= g.width {
		g.cursorCol = 0
		g.cursorRow = min(g.height-1, g.cursorRow+1)
	}
}

func (g *Grid) MoveCursor(row, col int) {
	g.cursorRow = clamp(row, 0, g.height-1)
	g.cursorCol = clamp(col, 0, g.width-1)
}

// MoveCursorRelative moves the cursor n cells in dir. n <= 0 moves one cell.
func (g *Grid) MoveCursorRelative(dir Direction, n int) {
	if n <= 0 {
		n = 1
	}
	switch dir {
	case Up:
		g.cursorRow -= min(n, g.cursorRow)
	case Down:
		g.cursorRow += min(n, g.height-1-g.cursorRow)
	case Forward:
		g.cursorCol += min(n, g.width-1-g.cursorCol)
	case Back:
		g.cursorCol -= min(n, g.cursorCol)
	}
}

func (g *Grid) CarriageReturn() {
	g.cursorCol = 0
}

func (g *Grid) LineFeed() {
	g.cursorRow = min(g.height-1, g.cursorRow+1)
	g.cursorCol = 0
}

func (g *Grid) Backspace() {
	g.cursorCol = max(0, g.cursorCol-1)
}

func (g *Grid) Tab() {
	next := (g.cursorCol/tabWidth + 1) * tabWidth
	g.cursorCol = min(g.width-1, next)
}

// Render returns the visible screen: rows joined by newlines, each row
// right-trimmed, with trailing blank rows dropped.
func (g *Grid) Render() string {
	lines := make([]string, g.height)
	last := -1
	for r := range g.cells {
		lines[r] = strings.TrimRight(string(g.cells[r]), " ")
		if lines[r] != "" {
			last = r
		}
	}
	return strings.Join(lines[:last+1], "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
