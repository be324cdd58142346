package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/schovi/ptyprobe/internal/session"
	"github.com/schovi/ptyprobe/internal/vterm"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Replay raw terminal output and print the resulting screen",
	Long: `Feed raw terminal output (a --record transcript, a script(1) log) through
the screen model and print the final screen. Reads stdin without a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderColsFlag     int
	renderRowsFlag     int
	renderEmulatorFlag string
	renderJsonFlag     bool
	renderStyledFlag   bool
)

func init() {
	renderCmd.Flags().IntVar(&renderColsFlag, "cols", 0, "Screen columns (default: current terminal or 80)")
	renderCmd.Flags().IntVar(&renderRowsFlag, "rows", 0, "Screen rows (default: current terminal or 24)")
	renderCmd.Flags().StringVar(&renderEmulatorFlag, "emulator", session.EmulatorGrid, "Screen model: grid or vt")
	renderCmd.Flags().BoolVar(&renderJsonFlag, "json", false, "Output as JSON")
	renderCmd.Flags().BoolVar(&renderStyledFlag, "styled", false, "Keep colors and attributes (vt emulator only)")
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	if renderStyledFlag && renderEmulatorFlag != session.EmulatorVT {
		return fmt.Errorf("--styled requires --emulator %s", session.EmulatorVT)
	}
	cols, rows := terminalSize(renderColsFlag, renderRowsFlag)

	emu, err := session.NewEmulator(renderEmulatorFlag, cols, rows, nil)
	if err != nil {
		return err
	}
	if c, ok := emu.(io.Closer); ok {
		defer c.Close()
	}
	emu.Write(data)

	screen := emu.Render()
	if vt, ok := emu.(*vterm.Screen); ok && renderStyledFlag {
		screen = vt.Styled()
	}
	if renderJsonFlag {
		row, col := emu.Cursor()
		out := map[string]interface{}{
			"screen": screen,
			"cursor": []int{row, col},
			"cols":   cols,
			"rows":   rows,
		}
		encoded, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(encoded))
		return nil
	}
	fmt.Println(screen)
	return nil
}
