package session

import (
	"fmt"
	"io"

	"github.com/schovi/ptyprobe/internal/ansi"
	"github.com/schovi/ptyprobe/internal/grid"
	"github.com/schovi/ptyprobe/internal/vterm"
)

// Emulator turns terminal output into a screen.
type Emulator interface {
	io.Writer
	Render() string
	Cursor() (row, col int)
	Version() uint64
}

type resizer interface {
	Resize(cols, rows int)
}

// NewEmulator returns the named screen model. replies receives the vt
// emulator's answers to terminal queries; the grid model ignores it.
func NewEmulator(name string, cols, rows int, replies io.Writer) (Emulator, error) {
	if err := checkEmulator(name); err != nil {
		return nil, err
	}
	if name == EmulatorVT {
		return vterm.New(cols, rows, replies), nil
	}
	return ansi.NewDecoder(grid.New(cols, rows)), nil
}

func checkEmulator(name string) error {
	switch name {
	case "", EmulatorGrid, EmulatorVT:
		return nil
	}
	return fmt.Errorf("unknown emulator %q (want %s or %s)", name, EmulatorGrid, EmulatorVT)
}

func closeEmulator(emu Emulator) {
	if c, ok := emu.(io.Closer); ok {
		c.Close()
	}
}
