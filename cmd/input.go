package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/schovi/ptyprobe/internal/region"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

// readInput reads the named file, or stdin when no file (or "-") is given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// terminalSize returns the size of the invoking terminal, or 80x24 when
// stdout is not a terminal. Explicit flag values win.
func terminalSize(cols, rows int) (int, int) {
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	tc, tr, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || tc <= 0 || tr <= 0 {
		tc, tr = fallbackCols, fallbackRows
	}
	if cols <= 0 {
		cols = tc
	}
	if rows <= 0 {
		rows = tr
	}
	return cols, rows
}

// parseRegionSelector accepts "largest" or a zero-based index.
func parseRegionSelector(s string) (int, error) {
	if strings.EqualFold(s, "largest") {
		return region.Largest, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid region %q: want \"largest\" or an index", s)
	}
	return n, nil
}
